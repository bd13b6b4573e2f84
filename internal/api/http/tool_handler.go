package http

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

type ToolHandler struct {
	toolSvc service.ToolService
}

func NewToolHandler(toolSvc service.ToolService) *ToolHandler {
	return &ToolHandler{toolSvc: toolSvc}
}

type createToolRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PriceCents  int32  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
	Page  int32       `json:"page"`
}

func (h *ToolHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req createToolRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tool := &domain.Tool{
		OwnerID:     user.ID,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
	}
	if err := h.toolSvc.AddTool(r.Context(), tool); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, tool)
}

func (h *ToolHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tool id")
		return
	}

	tool, err := h.toolSvc.GetTool(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "tool not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load tool")
		return
	}

	respondJSON(w, http.StatusOK, tool)
}

func (h *ToolHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	tools, total, err := h.toolSvc.ListTools(r.Context(), query, category, page, pageSize)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list tools")
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Items: tools, Total: total, Page: page})
}

func (h *ToolHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)

	tools, total, err := h.toolSvc.ListMyTools(r.Context(), user.ID, page, pageSize)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list tools")
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Items: tools, Total: total, Page: page})
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page = 1
	pageSize = 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = int32(v)
	}
	return page, pageSize
}
