package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/techagentng/clubcore/models"
	"gorm.io/gorm"
)

type TeamRepository interface {
	CreateTeam(ctx context.Context, team *models.Team) error
	FindTeamByID(ctx context.Context, id string) (*models.Team, error)
	FindTeamByJoinCode(ctx context.Context, code string) (*models.Team, error)
	FindTeammates(ctx context.Context, teamID, excludeUserID string) ([]models.User, error)
}

type teamRepo struct {
	DB *gorm.DB
}

func NewTeamRepo(db *GormDB) TeamRepository {
	return &teamRepo{db.DB}
}

func (t *teamRepo) CreateTeam(ctx context.Context, team *models.Team) error {
	if err := t.DB.WithContext(ctx).Create(team).Error; err != nil {
		if isDuplicateKey(err) {
			return errors.Wrap(ErrDuplicate, "create team")
		}
		return errors.Wrap(err, "create team")
	}
	return nil
}

func (t *teamRepo) FindTeamByID(ctx context.Context, id string) (*models.Team, error) {
	team := &models.Team{}
	if err := t.DB.WithContext(ctx).Where("id = ?", id).First(team).Error; err != nil {
		return nil, errors.Wrapf(err, "find team %s", id)
	}
	return team, nil
}

func (t *teamRepo) FindTeamByJoinCode(ctx context.Context, code string) (*models.Team, error) {
	team := &models.Team{}
	if err := t.DB.WithContext(ctx).Where("join_code = ?", code).First(team).Error; err != nil {
		return nil, errors.Wrap(err, "find team by join code")
	}
	return team, nil
}

func (t *teamRepo) FindTeammates(ctx context.Context, teamID, excludeUserID string) ([]models.User, error) {
	var users []models.User
	err := t.DB.WithContext(ctx).
		Where("team_id = ? AND id <> ?", teamID, excludeUserID).
		Order("last_name, first_name").
		Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "find teammates")
	}
	return users, nil
}
