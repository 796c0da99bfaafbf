package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/clubcore/db"
	"github.com/techagentng/clubcore/models"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testDB opens a private in-memory sqlite database with the schema migrated.
func testDB(t *testing.T) (*db.GormDB, context.Context) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.Migrate(gdb), "migrate")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return &db.GormDB{DB: gdb}, context.Background()
}

// seedUser inserts a user on the given team ("" for none).
func seedUser(t *testing.T, ctx context.Context, repo db.AuthRepository, id, first, last, teamID string) *models.User {
	t.Helper()
	user := &models.User{
		ID:             id,
		FirstName:      first,
		LastName:       last,
		Email:          id + "@example.com",
		HashedPassword: "x",
	}
	if teamID != "" {
		user.TeamID = &teamID
	}
	_, err := repo.CreateUser(ctx, user)
	require.NoError(t, err)
	return user
}

// at returns whole-second UTC timestamps so sqlite orders them correctly.
func at(minute int) time.Time {
	return time.Date(2024, time.June, 15, 12, minute, 0, 0, time.UTC)
}
