package http

import (
	"database/sql"
	"errors"
	"net/http"

	"toolshare-backend/internal/service"
)

type CartHandler struct {
	cartSvc service.CartService
}

func NewCartHandler(cartSvc service.CartService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

type cartItemRequest struct {
	ToolID     int32 `json:"tool_id"`
	Quantity   int32 `json:"quantity"`
	RentalDays int32 `json:"rental_days"`
	Insurance  bool  `json:"insurance"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	cart, err := h.cartSvc.GetCart(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartSvc.AddItem(r.Context(), user.ID, req.ToolID, req.Quantity, req.RentalDays, req.Insurance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "tool not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	toolID, err := pathID(r, "toolId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tool id")
		return
	}

	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartSvc.UpdateItem(r.Context(), user.ID, toolID, req.Quantity, req.RentalDays, req.Insurance)
	if err != nil {
		if errors.Is(err, service.ErrItemNotInCart) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	toolID, err := pathID(r, "toolId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tool id")
		return
	}

	cart, err := h.cartSvc.RemoveItem(r.Context(), user.ID, toolID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotInCart) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	cart, err := h.cartSvc.ClearCart(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}
	respondJSON(w, http.StatusOK, cart)
}
