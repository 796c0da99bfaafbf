package models

import (
	"time"

	"github.com/google/uuid"
)

// ConversationType tags the two kinds of thread in listings.
type ConversationType int

const (
	ConversationDirect ConversationType = 0
	ConversationGroup  ConversationType = 1
)

// Group types stored on GroupConversation.
const (
	GroupTypeConversation = 1
	GroupTypeMessageBlast = 2
)

const MaxGroupTitleLength = 50

// DirectConversation is a two party thread. PairKey holds both user ids in sorted
// order and is unique, so a pair can only ever own one row.
type DirectConversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	User1ID   string    `gorm:"size:450;not null;index" json:"user1_id"`
	User2ID   string    `gorm:"size:450;not null;index" json:"user2_id"`
	PairKey   string    `gorm:"size:901;not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// HasParticipant reports whether userID is one of the two participants.
func (d *DirectConversation) HasParticipant(userID string) bool {
	return d.User1ID == userID || d.User2ID == userID
}

// OtherParticipant returns the participant that is not userID.
func (d *DirectConversation) OtherParticipant(userID string) string {
	if d.User1ID == userID {
		return d.User2ID
	}
	return d.User1ID
}

// DirectPairKey is the order independent key for a pair of users.
func DirectPairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

type GroupConversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	CreatorID string    `gorm:"size:450;not null;index" json:"creator_id"`
	Title     string    `gorm:"size:50;not null" json:"title"`
	GroupType int       `gorm:"not null;default:1" json:"group_type"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationMember is one (group, user) membership row.
type ConversationMember struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	UserID         string    `gorm:"size:450;primaryKey;index" json:"user_id"`
}

// GroupSeenStatus tracks whether a member has seen the latest group message.
type GroupSeenStatus struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	UserID         string    `gorm:"size:450;primaryKey" json:"user_id"`
	Seen           bool      `gorm:"not null" json:"seen"`
}

func (GroupSeenStatus) TableName() string {
	return "group_seen_statuses"
}
