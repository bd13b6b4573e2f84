package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"toolshare-backend/internal/domain"
)

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	booking := &domain.Booking{
		ToolID:      2,
		OwnerID:     4,
		RenterID:    3,
		BookingDate: "2026-09-01",
		ReturnDate:  "2026-09-04",
		PriceCents:  1500,
		Location:    "Garage",
		Status:      domain.BookingStatusPending,
	}

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(booking.ToolID, booking.OwnerID, booking.RenterID, booking.BookingDate, booking.ReturnDate, booking.PriceCents, booking.Location, booking.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err = repo.Create(ctx, booking)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "tool_id", "owner_id", "renter_id", "booking_date", "return_date", "price_cents", "location", "status", "created_on", "updated_on"}).
		AddRow(5, 2, 4, 3, "2026-09-01", "2026-09-04", 1500, "Garage", "CONFIRMED", time.Now(), time.Now())

	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int32(5)).
		WillReturnRows(rows)

	booking, err := repo.GetByID(ctx, 5)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), booking.ID)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, int32(1500), booking.PriceCents)
}

func TestBookingRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	booking := &domain.Booking{ID: 5, Status: domain.BookingStatusCompleted}

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(booking.Status, sqlmock.AnyArg(), booking.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(ctx, booking)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListByRenterFiltersStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM bookings b`).
		WithArgs(int32(3), "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{
		"id", "tool_id", "owner_id", "renter_id", "booking_date", "return_date", "price_cents", "location", "status", "created_on", "updated_on",
		"t_id", "t_owner_id", "t_name", "t_category", "t_price_cents", "t_image_url"}).
		AddRow(5, 2, 4, 3, "2026-09-01", "2026-09-04", 1500, "Garage", "PENDING", time.Now(), time.Now(),
			2, 4, "Drill", "power", 500, "")

	mock.ExpectQuery("FROM bookings b JOIN tools t").
		WithArgs(int32(3), "PENDING", int32(20), int32(0)).
		WillReturnRows(rows)

	bookings, total, err := repo.ListByRenter(ctx, 3, "PENDING", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, bookings, 1)
	assert.Equal(t, "Drill", bookings[0].Tool.Name)
}
