package http

import (
	"errors"
	"net/http"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/payment"
	"toolshare-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

type createOrderRequest struct {
	Items           []service.CheckoutItem `json:"items"`
	DeliveryAddress string                 `json:"delivery_address"`
}

type createOrderResponse struct {
	Payment *domain.Payment `json:"payment"`
	Order   *payment.Order  `json:"order"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, order, err := h.paymentSvc.CreateOrder(r.Context(), user.ID, req.Items, req.DeliveryAddress)
	if err != nil {
		if errors.Is(err, service.ErrEmptyOrder) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "failed to create order")
		return
	}

	respondJSON(w, http.StatusCreated, createOrderResponse{Payment: p, Order: order})
}

func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req verifyPaymentRequest
	if err := decodeJSON(r, &req); err != nil || req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		respondError(w, http.StatusBadRequest, "order_id, payment_id and signature are required")
		return
	}

	p, _, err := h.paymentSvc.VerifyPayment(r.Context(), user.ID, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			respondError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidSignature):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to verify payment")
		}
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)

	payments, total, err := h.paymentSvc.ListMyPayments(r.Context(), user.ID, page, pageSize)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: payments, Total: total, Page: page})
}
