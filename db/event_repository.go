package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/clubcore/models"
	"gorm.io/gorm"
)

// EventRepository stores calendar events. Every lookup and write is scoped to
// the owning user; another user's event behaves as a missing row.
type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.CalendarEvent) error
	FindEventForUser(ctx context.Context, eventID uuid.UUID, userID string) (*models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, event *models.CalendarEvent) error
	DeleteEventForUser(ctx context.Context, eventID uuid.UUID, userID string) error
	// ListEventsInWindow returns the user's events that start at or after from
	// and end before to, earliest first.
	ListEventsInWindow(ctx context.Context, userID string, from, to time.Time) ([]models.CalendarEvent, error)
}

type eventRepo struct {
	DB *gorm.DB
}

func NewEventRepo(db *GormDB) EventRepository {
	return &eventRepo{db.DB}
}

func (e *eventRepo) CreateEvent(ctx context.Context, event *models.CalendarEvent) error {
	return errors.Wrap(e.DB.WithContext(ctx).Create(event).Error, "create event")
}

func (e *eventRepo) FindEventForUser(ctx context.Context, eventID uuid.UUID, userID string) (*models.CalendarEvent, error) {
	event := &models.CalendarEvent{}
	err := e.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", eventID, userID).
		First(event).Error
	if err != nil {
		return nil, errors.Wrapf(err, "find event %s", eventID)
	}
	return event, nil
}

func (e *eventRepo) UpdateEvent(ctx context.Context, event *models.CalendarEvent) error {
	result := e.DB.WithContext(ctx).Model(&models.CalendarEvent{}).
		Where("id = ? AND user_id = ?", event.ID, event.UserID).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"description": event.Description,
			"start_date":  event.StartDate,
			"end_date":    event.EndDate,
			"color":       event.Color,
		})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "update event %s", event.ID)
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(gorm.ErrRecordNotFound, "update event %s", event.ID)
	}
	return nil
}

func (e *eventRepo) DeleteEventForUser(ctx context.Context, eventID uuid.UUID, userID string) error {
	result := e.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", eventID, userID).
		Delete(&models.CalendarEvent{})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "delete event %s", eventID)
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(gorm.ErrRecordNotFound, "delete event %s", eventID)
	}
	return nil
}

func (e *eventRepo) ListEventsInWindow(ctx context.Context, userID string, from, to time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := e.DB.WithContext(ctx).
		Where("user_id = ? AND start_date >= ? AND end_date < ?", userID, from.UTC(), to.UTC()).
		Order("start_date").
		Find(&events).Error
	if err != nil {
		return nil, errors.Wrap(err, "list events")
	}
	return events, nil
}
