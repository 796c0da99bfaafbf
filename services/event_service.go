package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/techagentng/clubcore/config"
	"github.com/techagentng/clubcore/db"
	apiError "github.com/techagentng/clubcore/errors"
	"github.com/techagentng/clubcore/models"
	"go.uber.org/zap"
)

// EventService manages the caller's own calendar events.
type EventService interface {
	ListMyEvents(ctx context.Context, userID string, date time.Time, eventRange models.EventRange) ([]models.EventResponse, error)
	CreateEvent(ctx context.Context, userID string, request *models.EventRequest) (*models.EventResponse, error)
	UpdateEvent(ctx context.Context, userID string, eventID uuid.UUID, request *models.EventRequest) (*models.EventResponse, error)
	DeleteEvent(ctx context.Context, userID string, eventID uuid.UUID) error
}

type eventService struct {
	Config    *config.Config
	eventRepo db.EventRepository
	authRepo  db.AuthRepository
	now       func() time.Time
}

func NewEventService(eventRepo db.EventRepository, authRepo db.AuthRepository, conf *config.Config) EventService {
	return &eventService{
		Config:    conf,
		eventRepo: eventRepo,
		authRepo:  authRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// eventWindow returns the half-open [from, to) range covering date. Weeks run
// Monday to Sunday. The window is computed in date's location.
func eventWindow(date time.Time, eventRange models.EventRange) (time.Time, time.Time, error) {
	y, m, d := date.Date()
	loc := date.Location()
	switch models.EventRange(strings.ToLower(string(eventRange))) {
	case models.EventRangeDay:
		from := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 0, 1), nil
	case models.EventRangeWeek:
		sinceMonday := (int(date.Weekday()) + 6) % 7
		from := time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 0, 7), nil
	case models.EventRangeMonth:
		from := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, apiError.InvalidArgument("date_option must be one of day, week or month")
	}
}

func (e *eventService) ListMyEvents(ctx context.Context, userID string, date time.Time, eventRange models.EventRange) ([]models.EventResponse, error) {
	from, to, err := eventWindow(date, eventRange)
	if err != nil {
		return nil, err
	}
	events, err := e.eventRepo.ListEventsInWindow(ctx, userID, from, to)
	if err != nil {
		return nil, internalError("list events failed", err, zap.String("user_id", userID))
	}
	result := make([]models.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, events[i].Response())
	}
	return result, nil
}

func validateEvent(request *models.EventRequest) error {
	if errs := models.ValidateStruct(request); len(errs) > 0 {
		return apiError.InvalidArgument(models.JoinErrors(errs))
	}
	if request.StartDate.After(request.EndDate) {
		return apiError.InvalidArgument("start_date cannot be after end_date")
	}
	return nil
}

func (e *eventService) CreateEvent(ctx context.Context, userID string, request *models.EventRequest) (*models.EventResponse, error) {
	if err := validateEvent(request); err != nil {
		return nil, err
	}
	if _, err := e.authRepo.FindUserByID(ctx, userID); err != nil {
		if db.IsNotFound(err) {
			return nil, apiError.Unauthorized("user was not found")
		}
		return nil, internalError("find user failed", err, zap.String("user_id", userID))
	}

	event := &models.CalendarEvent{
		ID:          uuid.New(),
		Title:       request.Title,
		Description: request.Description,
		StartDate:   request.StartDate.UTC(),
		EndDate:     request.EndDate.UTC(),
		Color:       request.Color,
		UserID:      userID,
		CreatorID:   userID,
		CreatedAt:   e.now(),
	}
	if err := e.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, internalError("create event failed", err, zap.String("user_id", userID))
	}
	response := event.Response()
	return &response, nil
}

func (e *eventService) UpdateEvent(ctx context.Context, userID string, eventID uuid.UUID, request *models.EventRequest) (*models.EventResponse, error) {
	if err := validateEvent(request); err != nil {
		return nil, err
	}
	event, err := e.eventRepo.FindEventForUser(ctx, eventID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apiError.NotFound("event was not found")
		}
		return nil, internalError("find event failed", err, zap.String("event_id", eventID.String()))
	}

	event.Title = request.Title
	event.Description = request.Description
	event.StartDate = request.StartDate.UTC()
	event.EndDate = request.EndDate.UTC()
	event.Color = request.Color
	if err := e.eventRepo.UpdateEvent(ctx, event); err != nil {
		if db.IsNotFound(err) {
			return nil, apiError.NotFound("event was not found")
		}
		return nil, internalError("update event failed", err, zap.String("event_id", eventID.String()))
	}
	response := event.Response()
	return &response, nil
}

func (e *eventService) DeleteEvent(ctx context.Context, userID string, eventID uuid.UUID) error {
	if err := e.eventRepo.DeleteEventForUser(ctx, eventID, userID); err != nil {
		if db.IsNotFound(err) {
			return apiError.NotFound("event was not found")
		}
		return internalError("delete event failed", err, zap.String("event_id", eventID.String()))
	}
	return nil
}
