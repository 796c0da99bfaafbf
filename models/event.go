package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxEventTitleLength       = 50
	MaxEventDescriptionLength = 250
	MaxEventColorLength       = 10
)

// EventRange names the calendar window an events listing covers.
type EventRange string

const (
	EventRangeDay   EventRange = "day"
	EventRangeWeek  EventRange = "week"
	EventRangeMonth EventRange = "month"
)

// CalendarEvent is an entry on one user's calendar. Times are stored in UTC.
type CalendarEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"event_id"`
	Title       string    `gorm:"size:50;not null" json:"title"`
	Description string    `gorm:"size:250" json:"description"`
	StartDate   time.Time `gorm:"not null;index" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	// Color is a hex string, 6 or 8 digits with alpha.
	Color     string    `gorm:"size:10;not null" json:"color"`
	UserID    string    `gorm:"size:450;not null;index" json:"user_id"`
	CreatorID string    `gorm:"size:450;not null" json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

type EventRequest struct {
	Title       string    `json:"title" conform:"trim" validate:"required,max=50"`
	Description string    `json:"description" conform:"trim" validate:"max=250"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Color       string    `json:"color" conform:"trim" validate:"required,max=10"`
}

type EventResponse struct {
	EventID     uuid.UUID `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Color       string    `json:"color"`
}

func (e *CalendarEvent) Response() EventResponse {
	return EventResponse{
		EventID:     e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Color:       e.Color,
	}
}
