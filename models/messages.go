package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MaxDirectMessageLength = 500
	MaxGroupMessageLength  = 250
)

type DirectMessage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"message_id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index:idx_direct_messages_conv_sent,priority:1" json:"conversation_id"`
	SenderID       string    `gorm:"size:450;not null" json:"sender_id"`
	Body           string    `gorm:"size:500;not null" json:"message"`
	SentAt         time.Time `gorm:"not null;index:idx_direct_messages_conv_sent,priority:2" json:"timestamp"`
	Seen           bool      `gorm:"not null;default:false" json:"seen"`
}

type GroupMessage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"message_id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index:idx_group_messages_conv_sent,priority:1" json:"conversation_id"`
	SenderID       string    `gorm:"size:450;not null" json:"sender_id"`
	Body           string    `gorm:"size:250;not null" json:"message"`
	SentAt         time.Time `gorm:"not null;index:idx_group_messages_conv_sent,priority:2" json:"timestamp"`
}

// Pagination selects a page of history. PageIndex is zero based.
type Pagination struct {
	PageIndex int
	PageSize  int
}

// Offset is the number of rows skipped before the page. It saturates instead
// of overflowing, so an out of range index yields an empty page.
func (p *Pagination) Offset() int {
	if p.PageIndex <= 0 || p.PageSize <= 0 {
		return 0
	}
	if p.PageIndex > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return p.PageIndex * p.PageSize
}
