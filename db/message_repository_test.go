package db_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/clubcore/db"
	"github.com/techagentng/clubcore/models"
)

func TestDirectMessagesNewestFirstAndPaged(t *testing.T) {
	gdb, ctx := testDB(t)
	repo := db.NewMessageRepo(gdb)
	conversationID := uuid.New()

	for i, body := range []string{"one", "two", "three", "four"} {
		require.NoError(t, repo.CreateDirectMessage(ctx, &models.DirectMessage{
			ID: uuid.New(), ConversationID: conversationID, SenderID: "alice", Body: body, SentAt: at(i),
		}))
	}

	all, err := repo.ListDirectMessages(ctx, conversationID, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "four", all[0].Body)
	assert.Equal(t, "one", all[3].Body)

	page, err := repo.ListDirectMessages(ctx, conversationID, &models.Pagination{PageIndex: 1, PageSize: 3})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "one", page[0].Body)

	beyond, err := repo.ListDirectMessages(ctx, conversationID, &models.Pagination{PageIndex: math.MaxInt/2 + 1, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond)

	last, err := repo.LastDirectMessage(ctx, conversationID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "four", last.Body)

	none, err := repo.LastDirectMessage(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMarkDirectMessagesSeenIsIdempotent(t *testing.T) {
	gdb, ctx := testDB(t)
	repo := db.NewMessageRepo(gdb)
	conversationID := uuid.New()

	require.NoError(t, repo.CreateDirectMessage(ctx, &models.DirectMessage{ID: uuid.New(), ConversationID: conversationID, SenderID: "bob", Body: "hi", SentAt: at(0)}))
	require.NoError(t, repo.CreateDirectMessage(ctx, &models.DirectMessage{ID: uuid.New(), ConversationID: conversationID, SenderID: "bob", Body: "there", SentAt: at(1)}))
	require.NoError(t, repo.CreateDirectMessage(ctx, &models.DirectMessage{ID: uuid.New(), ConversationID: conversationID, SenderID: "alice", Body: "hey", SentAt: at(2)}))

	updated, err := repo.MarkDirectMessagesSeen(ctx, conversationID, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	updated, err = repo.MarkDirectMessagesSeen(ctx, conversationID, "alice")
	require.NoError(t, err)
	assert.Zero(t, updated)

	messages, err := repo.ListDirectMessages(ctx, conversationID, nil)
	require.NoError(t, err)
	for _, m := range messages {
		if m.SenderID == "alice" {
			assert.False(t, m.Seen, "own messages stay unseen")
		} else {
			assert.True(t, m.Seen)
		}
	}
}

func TestCreateGroupMessageFlipsOtherMembers(t *testing.T) {
	gdb, ctx := testDB(t)
	conversations := db.NewConversationRepo(gdb)
	repo := db.NewMessageRepo(gdb)

	group := &models.GroupConversation{ID: uuid.New(), CreatorID: "alice", Title: "Team", GroupType: models.GroupTypeConversation, CreatedAt: at(0)}
	require.NoError(t, conversations.CreateGroupConversation(ctx, group, []string{"alice", "bob", "carol"}))

	// carol already has an unseen flag; it must stay false
	require.NoError(t, gdb.DB.Model(&models.GroupSeenStatus{}).
		Where("conversation_id = ? AND user_id = ?", group.ID, "carol").
		Update("seen", false).Error)

	require.NoError(t, repo.CreateGroupMessage(ctx, &models.GroupMessage{
		ID: uuid.New(), ConversationID: group.ID, SenderID: "alice", Body: "practice moved", SentAt: at(1),
	}))

	expect := map[string]bool{"alice": true, "bob": false, "carol": false}
	for id, seen := range expect {
		status, err := repo.FindGroupSeenStatus(ctx, group.ID, id)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, seen, status.Seen, id)
	}

	updated, err := repo.MarkGroupSeen(ctx, group.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	status, err := repo.FindGroupSeenStatus(ctx, group.ID, "bob")
	require.NoError(t, err)
	assert.True(t, status.Seen)

	updated, err = repo.MarkGroupSeen(ctx, group.ID, "dave")
	require.NoError(t, err)
	assert.Zero(t, updated)
	missing, err := repo.FindGroupSeenStatus(ctx, group.ID, "dave")
	require.NoError(t, err)
	assert.Nil(t, missing)

	messages, err := repo.ListGroupMessages(ctx, group.ID, nil)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	last, err := repo.LastGroupMessage(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "practice moved", last.Body)
}
