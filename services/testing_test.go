package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/clubcore/cache"
	"github.com/techagentng/clubcore/config"
	"github.com/techagentng/clubcore/db"
	"github.com/techagentng/clubcore/models"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testStack struct {
	ctx           context.Context
	gdb           *db.GormDB
	authRepo      db.AuthRepository
	teamRepo      db.TeamRepository
	convRepo      db.ConversationRepository
	msgRepo       db.MessageRepository
	directory     *Directory
	validator     AccessValidator
	conversations *conversationService
	messaging     *messagingService
	clock         *fakeClock
}

// fakeClock hands out strictly increasing whole-second times.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	g := &db.GormDB{DB: gdb}
	s := &testStack{
		ctx:      context.Background(),
		gdb:      g,
		authRepo: db.NewAuthRepo(g),
		teamRepo: db.NewTeamRepo(g),
		convRepo: db.NewConversationRepo(g),
		msgRepo:  db.NewMessageRepo(g),
		clock:    &fakeClock{cur: time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)},
	}
	conf := &config.Config{JWTSecret: "secret", TokenTTL: time.Hour}
	s.directory = NewDirectory(s.authRepo, nil, time.Minute)
	s.validator = NewAccessValidator(s.convRepo)
	s.conversations = NewConversationService(s.convRepo, s.msgRepo, s.validator, s.directory, s.directory, conf).(*conversationService)
	s.conversations.now = s.clock.Now
	s.messaging = NewMessagingService(s.convRepo, s.msgRepo, s.validator, s.directory, conf).(*messagingService)
	s.messaging.now = s.clock.Now
	return s
}

func (s *testStack) addUser(t *testing.T, id, first, last, teamID string) {
	t.Helper()
	user := &models.User{ID: id, FirstName: first, LastName: last, Email: id + "@example.com", HashedPassword: "x"}
	if teamID != "" {
		user.TeamID = &teamID
	}
	_, err := s.authRepo.CreateUser(s.ctx, user)
	require.NoError(t, err)
}

func (s *testStack) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.gdb.DB.Model(model).Count(&n).Error)
	return n
}

// memoryCache is a map-backed cache.Cache.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
	gets   int
	err    error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.values[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *memoryCache) Close() error { return nil }

// brokenConversationRepo fails every lookup the access validator makes.
type brokenConversationRepo struct {
	db.ConversationRepository
	err error
}

func (b *brokenConversationRepo) FindDirectConversation(context.Context, uuid.UUID) (*models.DirectConversation, error) {
	return nil, b.err
}

func (b *brokenConversationRepo) FindGroupConversation(context.Context, uuid.UUID) (*models.GroupConversation, error) {
	return nil, b.err
}
