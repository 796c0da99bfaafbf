package services

import (
	"context"
	"strings"

	"github.com/techagentng/clubcore/config"
	"github.com/techagentng/clubcore/db"
	apiError "github.com/techagentng/clubcore/errors"
	"github.com/techagentng/clubcore/models"
	"go.uber.org/zap"
)

// TeamService covers the caller's profile and team lookups.
type TeamService interface {
	GetProfile(ctx context.Context, userID string) (*models.UserResponse, error)
	LookupTeam(ctx context.Context, joinCode string) (*models.TeamLookupResponse, error)
	UsersToMessage(ctx context.Context, userID string) ([]models.UserLookup, error)
}

type teamService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	teamRepo db.TeamRepository
}

func NewTeamService(authRepo db.AuthRepository, teamRepo db.TeamRepository, conf *config.Config) TeamService {
	return &teamService{
		Config:   conf,
		authRepo: authRepo,
		teamRepo: teamRepo,
	}
}

func (t *teamService) GetProfile(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := t.authRepo.FindUserByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apiError.Unauthorized("user was not found")
		}
		return nil, internalError("find user failed", err, zap.String("user_id", userID))
	}

	profile := &models.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		TeamID:    user.Team(),
	}
	if profile.TeamID != "" {
		team, err := t.teamRepo.FindTeamByID(ctx, profile.TeamID)
		switch {
		case err == nil:
			profile.TeamName = team.Name
		case !db.IsNotFound(err):
			return nil, internalError("find team failed", err, zap.String("team_id", profile.TeamID))
		}
	}
	return profile, nil
}

func (t *teamService) LookupTeam(ctx context.Context, joinCode string) (*models.TeamLookupResponse, error) {
	joinCode = strings.ToUpper(strings.TrimSpace(joinCode))
	if joinCode == "" {
		return nil, apiError.InvalidArgument("join code is required")
	}
	team, err := t.teamRepo.FindTeamByJoinCode(ctx, joinCode)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apiError.NotFound("no team matches that join code")
		}
		return nil, internalError("find team by join code failed", err)
	}
	return &models.TeamLookupResponse{
		TeamID:   team.ID,
		Name:     team.Name,
		JoinCode: team.JoinCode,
	}, nil
}

func (t *teamService) UsersToMessage(ctx context.Context, userID string) ([]models.UserLookup, error) {
	user, err := t.authRepo.FindUserByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apiError.Unauthorized("user was not found")
		}
		return nil, internalError("find user failed", err, zap.String("user_id", userID))
	}

	result := []models.UserLookup{}
	if user.Team() == "" {
		return result, nil
	}
	teammates, err := t.teamRepo.FindTeammates(ctx, user.Team(), userID)
	if err != nil {
		return nil, internalError("find teammates failed", err, zap.String("team_id", user.Team()))
	}
	for i := range teammates {
		result = append(result, models.UserLookup{UserID: teammates[i].ID, Name: teammates[i].DisplayName()})
	}
	return result, nil
}
