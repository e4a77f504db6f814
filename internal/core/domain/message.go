package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxMessageLength = 2000

type Message struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    uuid.UUID  `json:"senderId"`
	RecipientID uuid.UUID  `json:"recipientId"`
	PropertyID  *uuid.UUID `json:"propertyId,omitempty"`
	Body        string     `json:"body"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewMessage проверяет тело и участников и создает сообщение.
func NewMessage(senderID, recipientID uuid.UUID, propertyID *uuid.UUID, body string, now time.Time) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, NewValidationError("message body is required", "body")
	}
	if utf8.RuneCountInString(body) > MaxMessageLength {
		return nil, NewValidationError("message body is too long", "body")
	}
	if senderID == recipientID {
		return nil, NewValidationError("cannot send a message to yourself", "recipientId")
	}
	return &Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		PropertyID:  propertyID,
		Body:        body,
		CreatedAt:   now,
	}, nil
}

// ConversationSummary - последняя переписка с одним собеседником.
type ConversationSummary struct {
	PeerID      uuid.UUID `json:"peerId"`
	LastMessage Message   `json:"lastMessage"`
	UnreadCount int64     `json:"unreadCount"`
}
