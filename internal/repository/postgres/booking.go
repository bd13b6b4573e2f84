package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (tool_id, owner_id, renter_id, booking_date, return_date, price_cents, location, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.ToolID, b.OwnerID, b.RenterID, b.BookingDate, b.ReturnDate, b.PriceCents, b.Location, b.Status, time.Now(), time.Now()).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	var createdOn, updatedOn time.Time
	query := `SELECT id, tool_id, owner_id, renter_id, booking_date, return_date, price_cents, location, status, created_on, updated_on
	          FROM bookings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.ToolID, &b.OwnerID, &b.RenterID, &b.BookingDate, &b.ReturnDate, &b.PriceCents, &b.Location, &b.Status, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	b.CreatedOn = createdOn.Format(time.RFC3339)
	b.UpdatedOn = updatedOn.Format(time.RFC3339)
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, b.Status, time.Now(), b.ID)
	return err
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, roleColumn string, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	where := fmt.Sprintf(" WHERE b.%s = $1", roleColumn)
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		where += fmt.Sprintf(" AND b.status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countSQL := `SELECT count(*) FROM bookings b` + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	listSQL := `SELECT b.id, b.tool_id, b.owner_id, b.renter_id, b.booking_date, b.return_date, b.price_cents, b.location, b.status, b.created_on, b.updated_on,
	                   t.id, t.owner_id, t.name, t.category, t.price_cents, t.image_url
	            FROM bookings b JOIN tools t ON t.id = b.tool_id` + where +
		fmt.Sprintf(" ORDER BY b.created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var createdOn, updatedOn time.Time
		tool := &domain.Tool{}
		if err := rows.Scan(&b.ID, &b.ToolID, &b.OwnerID, &b.RenterID, &b.BookingDate, &b.ReturnDate, &b.PriceCents, &b.Location, &b.Status, &createdOn, &updatedOn,
			&tool.ID, &tool.OwnerID, &tool.Name, &tool.Category, &tool.PriceCents, &tool.ImageURL); err != nil {
			return nil, 0, err
		}
		b.CreatedOn = createdOn.Format(time.RFC3339)
		b.UpdatedOn = updatedOn.Format(time.RFC3339)
		b.Tool = tool
		bookings = append(bookings, b)
	}
	return bookings, count, rows.Err()
}
