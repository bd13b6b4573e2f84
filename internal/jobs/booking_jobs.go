package jobs

import (
	"context"
	"fmt"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
)

// SendReturnReminders notifies renters whose confirmed bookings are due
// back within a day.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		query := `
			SELECT b.id, b.renter_id, t.name, b.return_date
			FROM bookings b
			JOIN tools t ON t.id = b.tool_id
			WHERE b.status = 'CONFIRMED'
			  AND b.return_date <= $1
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().AddDate(0, 0, 1).Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to query due bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				bookingID  int32
				renterID   int32
				toolName   string
				returnDate string
			)
			if err := rows.Scan(&bookingID, &renterID, &toolName, &returnDate); err != nil {
				logger.Error("Failed to scan due booking", "error", err)
				continue
			}

			err := jr.services.Notification.Notify(ctx, renterID, domain.NotificationTypeSystem,
				"Return Reminder",
				fmt.Sprintf("Your rental of %s is due back on %s", toolName, returnDate),
				fmt.Sprintf("%d", bookingID))
			if err != nil {
				logger.Error("Failed to send return reminder", "booking_id", bookingID, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating due bookings", "error", err)
			return
		}

		logger.Info("Sent return reminders", "count", count)
	})
}

// SendPendingReminders nudges owners about booking requests that have
// sat unanswered for more than two days.
func (jr *JobRunner) SendPendingReminders() {
	jr.runWithRecovery("SendPendingReminders", func() {
		ctx := context.Background()

		query := `
			SELECT b.id, b.owner_id, t.name
			FROM bookings b
			JOIN tools t ON t.id = b.tool_id
			WHERE b.status = 'PENDING'
			  AND b.created_on < NOW() - INTERVAL '48 hours'
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query stale pending bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				bookingID int32
				ownerID   int32
				toolName  string
			)
			if err := rows.Scan(&bookingID, &ownerID, &toolName); err != nil {
				logger.Error("Failed to scan pending booking", "error", err)
				continue
			}

			err := jr.services.Notification.Notify(ctx, ownerID, domain.NotificationTypeSystem,
				"Pending Booking Request",
				fmt.Sprintf("A request for %s is still waiting for your response", toolName),
				fmt.Sprintf("%d", bookingID))
			if err != nil {
				logger.Error("Failed to send pending reminder", "booking_id", bookingID, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating pending bookings", "error", err)
			return
		}

		logger.Info("Sent pending booking reminders", "count", count)
	})
}
