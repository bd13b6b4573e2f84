package http

import (
	"net/http"

	"github.com/gorilla/websocket"

	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/realtime"
	"toolshare-backend/internal/security"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Token auth replaces origin checks; browsers cannot forge the token.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades authenticated connections into hub clients.
// Browsers cannot set headers on websocket dials, so the access token
// rides in the query string.
type WSHandler struct {
	hub    *realtime.Hub
	tokens security.TokenManager
}

func NewWSHandler(hub *realtime.Hub, tokens security.TokenManager) *WSHandler {
	return &WSHandler{hub: hub, tokens: tokens}
}

func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = extractBearerToken(r)
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "authorization token required")
		return
	}

	claims, err := h.tokens.ValidateAccessToken(token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", "user_id", claims.UserID, "error", err)
		return
	}

	realtime.NewClient(h.hub, conn, claims.UserID)
}
