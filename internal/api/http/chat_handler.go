package http

import (
	"database/sql"
	"errors"
	"net/http"

	"toolshare-backend/internal/service"
)

type ChatHandler struct {
	chatSvc service.ChatService
}

func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

type sendMessageRequest struct {
	To        int32  `json:"to"`
	Message   string `json:"message"`
	MessageID string `json:"message_id"`
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.chatSvc.SendMessage(r.Context(), user.ID, req.To, req.MessageID, req.Message)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "recipient not found")
			return
		}
		if errors.Is(err, service.ErrEmptyMessage) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	otherID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	messages, err := h.chatSvc.GetRoomMessages(r.Context(), user.ID, otherID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

func (h *ChatHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	conversations, err := h.chatSvc.ListConversations(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load conversations")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"conversations": conversations})
}
