package service

import (
	"context"
	"fmt"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	logger.ExternalServiceCall("sendgrid", "send", "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *sendGridEmailService) SendPaymentReceipt(ctx context.Context, email, name string, p *domain.Payment) error {
	subject := fmt.Sprintf("Payment Receipt - Order %s", p.OrderID)
	plainText := fmt.Sprintf(
		"Hi %s,\n\nWe received your payment of %s for order %s.\nSubtotal: %s\nService fee: %s\n\nThank you for renting with ToolShare!",
		name, formatCents(p.AmountCents), p.OrderID, formatCents(p.SubtotalCents), formatCents(p.ServiceFeeCents))

	lines := ""
	for _, item := range p.Items {
		lines += fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%d days</td><td>%s</td></tr>",
			item.ToolName, item.Quantity, item.RentalDays, formatCents(item.LineTotalCents))
	}
	htmlContent := fmt.Sprintf(`<html><body>
		<h2>Payment received</h2>
		<p>Hi %s, we received your payment of <strong>%s</strong> for order %s.</p>
		<table border="1" cellpadding="4"><tr><th>Tool</th><th>Qty</th><th>Duration</th><th>Total</th></tr>%s</table>
		<p>Subtotal: %s<br>Service fee: %s</p>
		</body></html>`,
		name, formatCents(p.AmountCents), p.OrderID, lines, formatCents(p.SubtotalCents), formatCents(p.ServiceFeeCents))

	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendOwnerItemNotice(ctx context.Context, email, ownerName, buyerName string, item domain.PaymentItem) error {
	subject := fmt.Sprintf("Your tool was rented: %s", item.ToolName)
	plainText := fmt.Sprintf(
		"Hi %s,\n\n%s rented your %s (x%d, %d days). You earned %s.\n\nToolShare",
		ownerName, buyerName, item.ToolName, item.Quantity, item.RentalDays, formatCents(item.LineTotalCents))
	htmlContent := fmt.Sprintf(`<html><body>
		<p>Hi %s,</p>
		<p><strong>%s</strong> rented your <strong>%s</strong> (x%d, %d days).</p>
		<p>You earned %s.</p>
		</body></html>`,
		ownerName, buyerName, item.ToolName, item.Quantity, item.RentalDays, formatCents(item.LineTotalCents))

	return s.send(ctx, email, ownerName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, toolName string) error {
	subject := fmt.Sprintf("New booking request: %s", toolName)
	plainText := fmt.Sprintf("%s wants to rent your %s. Open the app to confirm or reject the request.", renterName, toolName)
	htmlContent := fmt.Sprintf(`<html><body>
		<p><strong>%s</strong> wants to rent your <strong>%s</strong>.</p>
		<p>Open the app to confirm or reject the request.</p>
		</body></html>`, renterName, toolName)

	return s.send(ctx, ownerEmail, "", subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendBookingStatusNotification(ctx context.Context, email, toolName string, status domain.BookingStatus) error {
	subject := fmt.Sprintf("Booking update: %s", toolName)
	plainText := fmt.Sprintf("Your booking for %s is now %s.", toolName, status)
	htmlContent := fmt.Sprintf(`<html><body>
		<p>Your booking for <strong>%s</strong> is now <strong>%s</strong>.</p>
		</body></html>`, toolName, status)

	return s.send(ctx, email, "", subject, plainText, htmlContent)
}

func formatCents(cents int32) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
