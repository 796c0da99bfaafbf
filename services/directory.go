package services

import (
	"context"
	"errors"
	"time"

	"github.com/techagentng/clubcore/cache"
	"github.com/techagentng/clubcore/db"
	"github.com/techagentng/clubcore/logger"
	"go.uber.org/zap"
)

// ErrUserNotFound is returned by the directories when an id does not resolve to a user.
var ErrUserNotFound = errors.New("user not found")

// UserDirectory resolves user ids to display names ("First Last").
type UserDirectory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
	// DisplayNames resolves ids in one lookup. Ids that match no user are absent
	// from the result.
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}

// TeamDirectory resolves the team a user belongs to. An empty id means no team.
type TeamDirectory interface {
	TeamIDForUser(ctx context.Context, userID string) (string, error)
}

type Directory struct {
	authRepo db.AuthRepository
	cache    cache.Cache
	ttl      time.Duration
}

// NewDirectory builds the identity and team lookups over the users table.
// nameCache may be nil, in which case every lookup goes to the store.
func NewDirectory(authRepo db.AuthRepository, nameCache cache.Cache, ttl time.Duration) *Directory {
	return &Directory{
		authRepo: authRepo,
		cache:    nameCache,
		ttl:      ttl,
	}
}

func displayNameKey(userID string) string {
	return "clubcore:display_name:" + userID
}

func (d *Directory) DisplayName(ctx context.Context, userID string) (string, error) {
	if d.cache != nil {
		name, err := d.cache.Get(ctx, displayNameKey(userID))
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("display name cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	user, err := d.authRepo.FindUserByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	name := user.DisplayName()

	if d.cache != nil {
		if err := d.cache.Set(ctx, displayNameKey(userID), name, d.ttl); err != nil {
			logger.Warn("display name cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return name, nil
}

func (d *Directory) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}
	users, err := d.authRepo.FindUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for i := range users {
		names[users[i].ID] = users[i].DisplayName()
	}
	return names, nil
}

func (d *Directory) TeamIDForUser(ctx context.Context, userID string) (string, error) {
	user, err := d.authRepo.FindUserByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.Team(), nil
}
