package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/payment"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrEmptyOrder       = errors.New("order has no items")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidSignature = errors.New("payment signature verification failed")
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	cartRepo    repository.CartRepository
	toolRepo    repository.ToolRepository
	userRepo    repository.UserRepository
	gateway     payment.Gateway
	keySecret   string
	emailSvc    EmailService
	notifier    NotificationService
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	cartRepo repository.CartRepository,
	toolRepo repository.ToolRepository,
	userRepo repository.UserRepository,
	gateway payment.Gateway,
	keySecret string,
	emailSvc EmailService,
	notifier NotificationService,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		cartRepo:    cartRepo,
		toolRepo:    toolRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		keySecret:   keySecret,
		emailSvc:    emailSvc,
		notifier:    notifier,
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, userID int32, items []CheckoutItem, deliveryAddress string) (*domain.Payment, *payment.Order, error) {
	logger.EnterMethod("PaymentService.CreateOrder", "user_id", userID, "items", len(items))

	if len(items) == 0 {
		return nil, nil, ErrEmptyOrder
	}

	// Every line is re-priced from the catalog; the client only names
	// tools and quantities.
	snapshot := make([]domain.PaymentItem, 0, len(items))
	cartItems := make([]domain.CartItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, nil, errors.New("quantity must be at least 1")
		}
		tool, err := s.toolRepo.GetByID(ctx, it.ToolID)
		if err != nil {
			return nil, nil, err
		}
		days := it.RentalDays
		if days < 1 {
			days = 1
		}
		line := domain.CartItem{
			ToolID:     tool.ID,
			Quantity:   it.Quantity,
			PriceCents: tool.PriceCents,
			RentalDays: days,
			Insurance:  it.Insurance,
		}
		cartItems = append(cartItems, line)
		snapshot = append(snapshot, domain.PaymentItem{
			ToolID:         tool.ID,
			ToolName:       tool.Name,
			OwnerID:        tool.OwnerID,
			Quantity:       it.Quantity,
			RentalDays:     days,
			PriceCents:     tool.PriceCents,
			LineTotalCents: utils.RentalLineTotalCents(line),
		})
	}

	subtotal := utils.CheckoutSubtotalCents(cartItems)
	fee := utils.ServiceFeeCents(subtotal)
	amount := subtotal + fee

	// Freeze the order lines as a checkout cart so later edits to the
	// live cart cannot change what was paid for.
	checkoutCart := &domain.Cart{
		UserID:     userID,
		Items:      cartItems,
		TotalCents: subtotal,
		Checkout:   true,
	}
	if err := s.cartRepo.Create(ctx, checkoutCart); err != nil {
		return nil, nil, err
	}

	receipt := uuid.NewString()
	order, err := s.gateway.CreateOrder(ctx, amount, receipt)
	if err != nil {
		return nil, nil, fmt.Errorf("payment gateway: %w", err)
	}

	p := &domain.Payment{
		UserID:          userID,
		CartID:          checkoutCart.ID,
		OrderID:         order.ID,
		SubtotalCents:   subtotal,
		ServiceFeeCents: fee,
		AmountCents:     amount,
		DeliveryAddress: deliveryAddress,
		Items:           snapshot,
		Status:          domain.PaymentStatusCreated,
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, nil, err
	}

	logger.ExitMethod("PaymentService.CreateOrder", "order_id", order.ID, "amount_cents", amount)
	return p, order, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, userID int32, orderID, paymentID, signature string) (*domain.Payment, *FanoutReport, error) {
	logger.EnterMethod("PaymentService.VerifyPayment", "user_id", userID, "order_id", orderID)

	p, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}
	if p.UserID != userID {
		return nil, nil, ErrForbidden
	}
	if p.Status == domain.PaymentStatusPaid {
		// Retried verification of a settled order is a no-op.
		return p, &FanoutReport{}, nil
	}

	if !payment.VerifySignature(s.keySecret, orderID, paymentID, signature) {
		return nil, nil, ErrInvalidSignature
	}

	p.PaymentID = paymentID
	p.Signature = signature
	p.Status = domain.PaymentStatusPaid
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, nil, err
	}

	report := s.fanout(ctx, p)
	if report.Failed() {
		logger.Warn("Payment fan-out completed with failures", "order_id", orderID, "failures", report.Failures)
	}

	logger.ExitMethod("PaymentService.VerifyPayment", "order_id", orderID)
	return p, report, nil
}

// fanout runs the post-payment side effects. The payment is already
// settled; each step here is best-effort.
func (s *paymentService) fanout(ctx context.Context, p *domain.Payment) *FanoutReport {
	report := &FanoutReport{}

	buyer, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		report.add("load buyer", err)
		return report
	}

	report.add("notify buyer", s.notifier.Notify(ctx, buyer.ID, domain.NotificationTypePayment,
		"Payment Successful",
		fmt.Sprintf("Your payment of %d was received", p.AmountCents),
		p.OrderID))

	report.add("receipt email", s.emailSvc.SendPaymentReceipt(ctx, buyer.Email, buyer.Name, p))

	for _, item := range p.Items {
		owner, err := s.userRepo.GetByID(ctx, item.OwnerID)
		if err != nil {
			report.add(fmt.Sprintf("load owner %d", item.OwnerID), err)
			continue
		}
		report.add(fmt.Sprintf("notify owner %d", owner.ID), s.notifier.Notify(ctx, owner.ID, domain.NotificationTypeOrder,
			"Tool Rented",
			fmt.Sprintf("%s rented %s", buyer.Name, item.ToolName),
			p.OrderID))
		report.add(fmt.Sprintf("owner email %d", owner.ID), s.emailSvc.SendOwnerItemNotice(ctx, owner.Email, owner.Name, buyer.Name, item))
	}

	// Empty the live cart now that its contents are paid for.
	cart, err := s.cartRepo.GetActiveByUserID(ctx, p.UserID)
	if err == nil {
		cart.Items = nil
		cart.TotalCents = 0
		report.add("clear cart", s.cartRepo.Update(ctx, cart))
	} else if !errors.Is(err, sql.ErrNoRows) {
		report.add("load cart", err)
	}

	return report
}

func (s *paymentService) ListMyPayments(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.paymentRepo.ListByUser(ctx, userID, page, pageSize)
}
