package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetActiveByUserID(ctx context.Context, userID int32) (*domain.Cart, error) {
	c := &domain.Cart{}
	var updatedOn time.Time
	query := `SELECT id, user_id, total_cents, checkout, updated_on FROM carts WHERE user_id = $1 AND checkout = FALSE`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.TotalCents, &c.Checkout, &updatedOn)
	if err != nil {
		return nil, err
	}
	c.UpdatedOn = updatedOn.Format(time.RFC3339)

	items, err := r.loadItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}

func (r *cartRepository) loadItems(ctx context.Context, cartID int32) ([]domain.CartItem, error) {
	query := `SELECT i.tool_id, i.quantity, i.price_cents, i.rental_days, i.insurance,
	                 t.id, t.owner_id, t.name, t.category, t.price_cents, t.image_url
	          FROM cart_items i JOIN tools t ON t.id = i.tool_id
	          WHERE i.cart_id = $1 ORDER BY i.id`
	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		tool := &domain.Tool{}
		if err := rows.Scan(&it.ToolID, &it.Quantity, &it.PriceCents, &it.RentalDays, &it.Insurance,
			&tool.ID, &tool.OwnerID, &tool.Name, &tool.Category, &tool.PriceCents, &tool.ImageURL); err != nil {
			return nil, err
		}
		it.Tool = tool
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *cartRepository) Create(ctx context.Context, c *domain.Cart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO carts (user_id, total_cents, checkout, updated_on) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, c.UserID, c.TotalCents, c.Checkout, time.Now()).Scan(&c.ID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, c.ID, c.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *cartRepository) Update(ctx context.Context, c *domain.Cart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE carts SET total_cents=$1, updated_on=$2 WHERE id=$3`, c.TotalCents, time.Now(), c.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, c.ID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, c.ID, c.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sql.Tx, cartID int32, items []domain.CartItem) error {
	query := `INSERT INTO cart_items (cart_id, tool_id, quantity, price_cents, rental_days, insurance)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, query, cartID, it.ToolID, it.Quantity, it.PriceCents, it.RentalDays, it.Insurance); err != nil {
			return err
		}
	}
	return nil
}
