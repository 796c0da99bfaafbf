package db_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/clubcore/db"
	"github.com/techagentng/clubcore/models"
)

func newEvent(owner, title string, startMinute, endMinute int) *models.CalendarEvent {
	return &models.CalendarEvent{
		ID:        uuid.New(),
		Title:     title,
		StartDate: at(startMinute),
		EndDate:   at(endMinute),
		Color:     "#112233",
		UserID:    owner,
		CreatorID: owner,
	}
}

func TestListEventsInWindowIsHalfOpen(t *testing.T) {
	gdb, ctx := testDB(t)
	repo := db.NewEventRepo(gdb)

	for _, e := range []*models.CalendarEvent{
		newEvent("alice", "at start", 10, 15),
		newEvent("alice", "ends on boundary", 40, 50),
		newEvent("alice", "starts early", 5, 20),
		newEvent("alice", "inside", 20, 30),
		newEvent("bob", "other owner", 20, 30),
	} {
		require.NoError(t, repo.CreateEvent(ctx, e))
	}

	events, err := repo.ListEventsInWindow(ctx, "alice", at(10), at(50))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "at start", events[0].Title)
	assert.Equal(t, "inside", events[1].Title)
}

func TestEventWritesAreScopedToOwner(t *testing.T) {
	gdb, ctx := testDB(t)
	repo := db.NewEventRepo(gdb)
	event := newEvent("alice", "practice", 0, 30)
	require.NoError(t, repo.CreateEvent(ctx, event))

	_, err := repo.FindEventForUser(ctx, event.ID, "bob")
	assert.True(t, db.IsNotFound(err))

	intruder := *event
	intruder.UserID = "bob"
	intruder.Title = "hijacked"
	assert.True(t, db.IsNotFound(repo.UpdateEvent(ctx, &intruder)))
	assert.True(t, db.IsNotFound(repo.DeleteEventForUser(ctx, event.ID, "bob")))

	stored, err := repo.FindEventForUser(ctx, event.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "practice", stored.Title)

	stored.Title = "scrimmage"
	require.NoError(t, repo.UpdateEvent(ctx, stored))
	require.NoError(t, repo.DeleteEventForUser(ctx, event.ID, "alice"))
	_, err = repo.FindEventForUser(ctx, event.ID, "alice")
	assert.True(t, db.IsNotFound(err))
}
