package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) repository.ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) Create(ctx context.Context, t *domain.Tool) error {
	query := `INSERT INTO tools (owner_id, name, category, description, price_cents, image_url, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, t.OwnerID, t.Name, t.Category, t.Description, t.PriceCents, t.ImageURL, time.Now()).Scan(&t.ID)
}

func (r *toolRepository) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	t := &domain.Tool{}
	var createdOn time.Time
	query := `SELECT t.id, t.owner_id, t.name, t.category, t.description, t.price_cents, t.image_url, t.created_on,
	                 u.id, u.name, u.email
	          FROM tools t JOIN users u ON u.id = t.owner_id WHERE t.id = $1`
	owner := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.OwnerID, &t.Name, &t.Category, &t.Description, &t.PriceCents, &t.ImageURL, &createdOn,
		&owner.ID, &owner.Name, &owner.Email)
	if err != nil {
		return nil, err
	}
	t.CreatedOn = createdOn.Format(time.RFC3339)
	t.Owner = owner
	return t, nil
}

func (r *toolRepository) List(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Tool, int32, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if query != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	if category != "" {
		where += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}
	return r.list(ctx, where, args, argIdx, page, pageSize)
}

func (r *toolRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Tool, int32, error) {
	return r.list(ctx, ` WHERE owner_id = $1`, []interface{}{ownerID}, 2, page, pageSize)
}

func (r *toolRepository) list(ctx context.Context, where string, args []interface{}, argIdx int, page, pageSize int32) ([]domain.Tool, int32, error) {
	var count int32
	countSQL := `SELECT count(*) FROM tools` + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	listSQL := `SELECT id, owner_id, name, category, description, price_cents, image_url, created_on FROM tools` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tools []domain.Tool
	for rows.Next() {
		var t domain.Tool
		var createdOn time.Time
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Category, &t.Description, &t.PriceCents, &t.ImageURL, &createdOn); err != nil {
			return nil, 0, err
		}
		t.CreatedOn = createdOn.Format(time.RFC3339)
		tools = append(tools, t)
	}
	return tools, count, rows.Err()
}
