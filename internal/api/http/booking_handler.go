package http

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingRequest struct {
	ToolID      int32  `json:"tool_id"`
	BookingDate string `json:"booking_date"`
	ReturnDate  string `json:"return_date"`
	Location    string `json:"location"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), user.ID, req.ToolID, req.BookingDate, req.ReturnDate, req.Location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "tool not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req updateBookingStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := domain.BookingStatus(strings.ToUpper(req.Status))
	booking, err := h.bookingSvc.UpdateStatus(r.Context(), user.ID, id, status)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := h.bookingSvc.CancelBooking(r.Context(), user.ID, id)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		respondError(w, http.StatusNotFound, "booking not found")
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "failed to update booking")
	}
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)
	status := strings.ToUpper(r.URL.Query().Get("status"))

	bookings, total, err := h.bookingSvc.ListMyBookings(r.Context(), user.ID, status, page, pageSize)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: bookings, Total: total, Page: page})
}

func (h *BookingHandler) ListOwner(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)
	status := strings.ToUpper(r.URL.Query().Get("status"))

	bookings, total, err := h.bookingSvc.ListOwnerBookings(r.Context(), user.ID, status, page, pageSize)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: bookings, Total: total, Page: page})
}
