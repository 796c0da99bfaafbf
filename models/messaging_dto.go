package models

import (
	"time"

	"github.com/google/uuid"
)

// ConversationSummary is one row of the "my threads" listing.
type ConversationSummary struct {
	ConversationID       uuid.UUID        `json:"conversation_id"`
	ConversationType     ConversationType `json:"conversation_type"`
	ConversationTitle    string           `json:"conversation_title"`
	LastMessageTimestamp *string          `json:"last_message_timestamp"`
	HasUnreadMessages    bool             `json:"has_unread_messages"`
}

type NewDirectConversationRequest struct {
	User2ID string `json:"user2_id" conform:"trim" validate:"required"`
}

type DirectConversationResponse struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	User2ID        string    `json:"user2_id"`
	User2Name      string    `json:"user2_name"`
	CreatedAt      time.Time `json:"created_at"`
}

type NewGroupConversationRequest struct {
	GroupName string   `json:"group_name" conform:"trim" validate:"required,max=50"`
	UserIDs   []string `json:"user_ids" validate:"dive,required"`
	GroupType int      `json:"group_type" validate:"omitempty,oneof=1 2"`
}

type GroupConversationResponse struct {
	ConversationID uuid.UUID         `json:"conversation_id"`
	GroupName      string            `json:"group_name"`
	GroupType      int               `json:"group_type"`
	CreatorID      string            `json:"creator_id"`
	CreatorName    string            `json:"creator_name"`
	Users          map[string]string `json:"users"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type DirectMessageResponse struct {
	MessageID      uuid.UUID `json:"message_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	PeerName       string    `json:"peer_name"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
	Seen           bool      `json:"seen"`
}

type SentDirectMessageResponse struct {
	MessageID      uuid.UUID `json:"message_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	RecipientID    string    `json:"recipient_id"`
	RecipientName  string    `json:"recipient_name"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
}

type GroupMessageResponse struct {
	MessageID      uuid.UUID `json:"message_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
}

type MarkReadResponse struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Updated        int64     `json:"updated"`
}
