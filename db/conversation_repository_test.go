package db_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/clubcore/db"
	"github.com/techagentng/clubcore/models"
)

func TestDirectConversationPairIsUnique(t *testing.T) {
	gdb, ctx := testDB(t)
	repo := db.NewConversationRepo(gdb)

	first := &models.DirectConversation{ID: uuid.New(), User1ID: "alice", User2ID: "bob", CreatedAt: at(0)}
	require.NoError(t, repo.CreateDirectConversation(ctx, first))
	assert.Equal(t, "alice:bob", first.PairKey)

	reversed := &models.DirectConversation{ID: uuid.New(), User1ID: "bob", User2ID: "alice", CreatedAt: at(1)}
	err := repo.CreateDirectConversation(ctx, reversed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrDuplicate))

	found, err := repo.FindDirectConversationByPair(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindDirectConversationByPair(ctx, "alice", "carol")
	assert.True(t, db.IsNotFound(err))
}

func TestListDirectConversations(t *testing.T) {
	gdb, ctx := testDB(t)
	repo := db.NewConversationRepo(gdb)

	require.NoError(t, repo.CreateDirectConversation(ctx, &models.DirectConversation{ID: uuid.New(), User1ID: "alice", User2ID: "bob", CreatedAt: at(0)}))
	require.NoError(t, repo.CreateDirectConversation(ctx, &models.DirectConversation{ID: uuid.New(), User1ID: "carol", User2ID: "alice", CreatedAt: at(1)}))
	require.NoError(t, repo.CreateDirectConversation(ctx, &models.DirectConversation{ID: uuid.New(), User1ID: "bob", User2ID: "carol", CreatedAt: at(2)}))

	conversations, err := repo.ListDirectConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	assert.Equal(t, "bob", conversations[0].OtherParticipant("alice"))
	assert.Equal(t, "carol", conversations[1].OtherParticipant("alice"))

	none, err := repo.ListDirectConversations(ctx, "dave")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateGroupConversationWritesMembersAndSeenRows(t *testing.T) {
	gdb, ctx := testDB(t)
	repo := db.NewConversationRepo(gdb)
	messages := db.NewMessageRepo(gdb)

	group := &models.GroupConversation{ID: uuid.New(), CreatorID: "alice", Title: "Coaches", GroupType: models.GroupTypeConversation, CreatedAt: at(0)}
	err := repo.WithTx(ctx, func(tx db.ConversationRepository) error {
		return tx.CreateGroupConversation(ctx, group, []string{"alice", "bob", "carol"})
	})
	require.NoError(t, err)

	ids, err := repo.ListGroupMemberIDs(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, ids)

	for _, id := range ids {
		status, err := messages.FindGroupSeenStatus(ctx, group.ID, id)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.True(t, status.Seen, id)
	}

	member, err := repo.IsGroupMember(ctx, group.ID, "bob")
	require.NoError(t, err)
	assert.True(t, member)
	member, err = repo.IsGroupMember(ctx, group.ID, "dave")
	require.NoError(t, err)
	assert.False(t, member)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	gdb, ctx := testDB(t)
	repo := db.NewConversationRepo(gdb)

	group := &models.GroupConversation{ID: uuid.New(), CreatorID: "alice", Title: "Parents", GroupType: models.GroupTypeConversation, CreatedAt: at(0)}
	boom := errors.New("member lookup failed")
	err := repo.WithTx(ctx, func(tx db.ConversationRepository) error {
		if err := tx.CreateGroupConversation(ctx, group, []string{"alice", "bob"}); err != nil {
			return err
		}
		return boom
	})
	assert.Equal(t, boom, err)

	_, err = repo.FindGroupConversation(ctx, group.ID)
	assert.True(t, db.IsNotFound(err))
	ids, err := repo.ListGroupMemberIDs(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	var seenRows int64
	require.NoError(t, gdb.DB.Model(&models.GroupSeenStatus{}).Where("conversation_id = ?", group.ID).Count(&seenRows).Error)
	assert.Zero(t, seenRows)
}

func TestDuplicateMemberRowsRejected(t *testing.T) {
	gdb, ctx := testDB(t)
	repo := db.NewConversationRepo(gdb)

	group := &models.GroupConversation{ID: uuid.New(), CreatorID: "alice", Title: "Dupes", GroupType: models.GroupTypeConversation, CreatedAt: at(0)}
	err := repo.WithTx(ctx, func(tx db.ConversationRepository) error {
		return tx.CreateGroupConversation(ctx, group, []string{"alice", "bob", "bob"})
	})
	require.Error(t, err)

	_, err = repo.FindGroupConversation(ctx, group.ID)
	assert.True(t, db.IsNotFound(err))
}

func TestListGroupConversationsIncludesCreatedAndJoined(t *testing.T) {
	gdb, ctx := testDB(t)
	repo := db.NewConversationRepo(gdb)

	created := &models.GroupConversation{ID: uuid.New(), CreatorID: "alice", Title: "Mine", GroupType: models.GroupTypeConversation, CreatedAt: at(0)}
	joined := &models.GroupConversation{ID: uuid.New(), CreatorID: "bob", Title: "Theirs", GroupType: models.GroupTypeMessageBlast, CreatedAt: at(1)}
	other := &models.GroupConversation{ID: uuid.New(), CreatorID: "bob", Title: "Private", GroupType: models.GroupTypeConversation, CreatedAt: at(2)}
	require.NoError(t, repo.CreateGroupConversation(ctx, created, []string{"alice"}))
	require.NoError(t, repo.CreateGroupConversation(ctx, joined, []string{"bob", "alice"}))
	require.NoError(t, repo.CreateGroupConversation(ctx, other, []string{"bob"}))

	groups, err := repo.ListGroupConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, created.ID, groups[0].ID)
	assert.Equal(t, joined.ID, groups[1].ID)
	assert.Equal(t, models.GroupTypeMessageBlast, groups[1].GroupType)
}
