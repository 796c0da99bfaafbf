package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/techagentng/clubcore/config"
	"github.com/techagentng/clubcore/db"
	apiError "github.com/techagentng/clubcore/errors"
	"github.com/techagentng/clubcore/logger"
	"github.com/techagentng/clubcore/models"
	"github.com/techagentng/clubcore/services/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService interface
type AuthService interface {
	SignupUser(ctx context.Context, request *models.SignupRequest) (*models.UserResponse, error)
	LoginUser(ctx context.Context, request *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	teamRepo db.TeamRepository
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, teamRepo db.TeamRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		teamRepo: teamRepo,
	}
}

func (a *authService) SignupUser(ctx context.Context, request *models.SignupRequest) (*models.UserResponse, error) {
	if request == nil {
		return nil, apiError.ErrBadRequest
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.InvalidArgument(err.Error())
	}

	exists, err := a.authRepo.IsEmailExist(ctx, request.Email)
	if err != nil {
		return nil, internalError("email lookup failed", err)
	}
	if exists {
		return nil, apiError.Conflict("email already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError("hash password failed", err)
	}

	user := &models.User{
		ID:             uuid.NewString(),
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		Email:          request.Email,
		HashedPassword: string(hashed),
	}

	var teamName string
	if request.TeamCode != "" {
		team, err := a.teamRepo.FindTeamByJoinCode(ctx, request.TeamCode)
		switch {
		case err == nil:
			user.TeamID = &team.ID
			teamName = team.Name
		case db.IsNotFound(err):
			logger.Info("signup with unknown team code", zap.String("team_code", request.TeamCode))
		default:
			return nil, internalError("team lookup failed", err)
		}
	}

	if _, err := a.authRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apiError.Conflict("email already in use")
		}
		return nil, internalError("create user failed", err)
	}

	return &models.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		TeamID:    user.Team(),
		TeamName:  teamName,
	}, nil
}

func (a *authService) LoginUser(ctx context.Context, request *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := a.authRepo.FindUserByEmail(ctx, request.Email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apiError.ErrInvalidPassword
		}
		return nil, internalError("find user by email failed", err)
	}
	if err := user.VerifyPassword(request.Password); err != nil {
		return nil, apiError.ErrInvalidPassword
	}

	ttl := a.Config.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	accessToken, err := jwt.GenerateToken(user.ID, user.Email, a.Config.JWTSecret, ttl)
	if err != nil {
		return nil, internalError("generate token failed", err)
	}

	var teamName string
	if teamID := user.Team(); teamID != "" {
		team, err := a.teamRepo.FindTeamByID(ctx, teamID)
		if err != nil && !db.IsNotFound(err) {
			return nil, internalError("find team failed", err)
		}
		if team != nil {
			teamName = team.Name
		}
	}

	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			TeamID:    user.Team(),
			TeamName:  teamName,
		},
		AccessToken: accessToken,
	}, nil
}

func (a *authService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return apiError.New("missing access token", http.StatusUnauthorized)
	}
	blacklist := &models.Blacklist{
		Token:     accessToken,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.authRepo.AddToBlackList(ctx, blacklist); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil
		}
		return internalError("blacklist token failed", err)
	}
	return nil
}
