package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	items, err := json.Marshal(p.Items)
	if err != nil {
		return err
	}
	query := `INSERT INTO payments (user_id, cart_id, order_id, payment_id, signature, subtotal_cents, service_fee_cents, amount_cents, delivery_address, items, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.UserID, p.CartID, p.OrderID, p.PaymentID, p.Signature,
		p.SubtotalCents, p.ServiceFeeCents, p.AmountCents, p.DeliveryAddress, items, p.Status, now, now).Scan(&p.ID)
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	p := &domain.Payment{}
	var items []byte
	var createdOn, updatedOn time.Time
	query := `SELECT id, user_id, cart_id, order_id, payment_id, signature, subtotal_cents, service_fee_cents, amount_cents, delivery_address, items, status, created_on, updated_on
	          FROM payments WHERE order_id = $1`
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&p.ID, &p.UserID, &p.CartID, &p.OrderID, &p.PaymentID, &p.Signature,
		&p.SubtotalCents, &p.ServiceFeeCents, &p.AmountCents, &p.DeliveryAddress, &items, &p.Status, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &p.Items); err != nil {
			return nil, err
		}
	}
	p.CreatedOn = createdOn.Format(time.RFC3339)
	p.UpdatedOn = updatedOn.Format(time.RFC3339)
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET payment_id=$1, signature=$2, status=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, p.PaymentID, p.Signature, p.Status, time.Now(), p.ID)
	return err
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payments WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, user_id, cart_id, order_id, payment_id, signature, subtotal_cents, service_fee_cents, amount_cents, delivery_address, items, status, created_on, updated_on
	          FROM payments WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	payments, err := scanPayments(rows)
	if err != nil {
		return nil, 0, err
	}
	return payments, count, nil
}

func (r *paymentRepository) ListPaid(ctx context.Context) ([]domain.Payment, error) {
	query := `SELECT id, user_id, cart_id, order_id, payment_id, signature, subtotal_cents, service_fee_cents, amount_cents, delivery_address, items, status, created_on, updated_on
	          FROM payments WHERE status = $1`
	rows, err := r.db.QueryContext(ctx, query, domain.PaymentStatusPaid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func scanPayments(rows *sql.Rows) ([]domain.Payment, error) {
	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var items []byte
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&p.ID, &p.UserID, &p.CartID, &p.OrderID, &p.PaymentID, &p.Signature,
			&p.SubtotalCents, &p.ServiceFeeCents, &p.AmountCents, &p.DeliveryAddress, &items, &p.Status, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &p.Items); err != nil {
				return nil, err
			}
		}
		p.CreatedOn = createdOn.Format(time.RFC3339)
		p.UpdatedOn = updatedOn.Format(time.RFC3339)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
