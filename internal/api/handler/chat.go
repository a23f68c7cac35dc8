package handler

import (
	"encoding/json"
	"net/http"

	"github.com/geosense/geosense/internal/api/models"
	"github.com/geosense/geosense/internal/api/response"
	"github.com/geosense/geosense/internal/chat"
)

// ChatHandler handles the eco-assistant endpoint.
type ChatHandler struct {
	responder *chat.Responder
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(responder *chat.Responder) *ChatHandler {
	return &ChatHandler{responder: responder}
}

// Chat handles POST /v1/chat - answer a user message.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var input models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	reply := h.responder.Reply(r.Context(), input.Message)

	response.JSON(w, r, http.StatusOK, models.ChatResponse{Reply: reply})
}
