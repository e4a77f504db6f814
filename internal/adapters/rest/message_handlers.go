package rest

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/port"
	"addisnest-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/google/uuid"
)

// MessageHandlers - переписка покупателей с владельцами объявлений
type MessageHandlers struct {
	sendUC          usecases_port.SendMessageUseCasePort
	conversationsUC usecases_port.ListConversationsUseCasePort
	threadUC        usecases_port.GetThreadUseCasePort
	markReadUC      usecases_port.MarkThreadReadUseCasePort
	validator       *requestValidator
}

func NewMessageHandlers(
	sendUC usecases_port.SendMessageUseCasePort,
	conversationsUC usecases_port.ListConversationsUseCasePort,
	threadUC usecases_port.GetThreadUseCasePort,
	markReadUC usecases_port.MarkThreadReadUseCasePort,
) *MessageHandlers {
	return &MessageHandlers{
		sendUC:          sendUC,
		conversationsUC: conversationsUC,
		threadUC:        threadUC,
		markReadUC:      markReadUC,
		validator:       newRequestValidator(),
	}
}

// Send обрабатывает POST /messages
func (h *MessageHandlers) Send(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SendMessage"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendMessageRequest
	if !bindJSON(w, r, logger, h.validator, &req) {
		return
	}

	// формат уже проверен тегом uuid
	recipientID := uuid.MustParse(req.RecipientID)
	var propertyID *uuid.UUID
	if req.PropertyID != "" {
		id := uuid.MustParse(req.PropertyID)
		propertyID = &id
	}

	msg, err := h.sendUC.Execute(r.Context(), claims.UserID, recipientID, propertyID, req.Body)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, DataResponse{Success: true, Data: msg})
}

// Conversations обрабатывает GET /messages/conversations
func (h *MessageHandlers) Conversations(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListConversations"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	conversations, err := h.conversationsUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Success: true, Data: conversations})
}

// Thread обрабатывает GET /messages/{peerId}
func (h *MessageHandlers) Thread(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetThread"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	peerID, ok := uuidParam(r, "peerId")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid peer id")
		return
	}

	page, limit := pageParams(r)
	messages, err := h.threadUC.Execute(r.Context(), claims.UserID, peerID, page, limit)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Success: true, Data: messages})
}

// MarkRead обрабатывает POST /messages/{peerId}/read
func (h *MessageHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "MarkThreadRead"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	peerID, ok := uuidParam(r, "peerId")
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid peer id")
		return
	}

	updated, err := h.markReadUC.Execute(r.Context(), claims.UserID, peerID)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, MarkReadResponse{Updated: updated})
}
