package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/techagentng/clubcore/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	IsEmailExist(ctx context.Context, email string) (bool, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	AddToBlackList(ctx context.Context, blacklist *models.Blacklist) error
	IsTokenInBlacklist(ctx context.Context, token string) bool
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := a.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, errors.Wrap(ErrDuplicate, "create user")
		}
		return nil, errors.Wrap(err, "create user")
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(ctx context.Context, email string) (bool, error) {
	var count int64
	err := a.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count users by email")
	}
	return count > 0, nil
}

func (a *authRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	if err := a.DB.WithContext(ctx).Where("email = ?", email).First(user).Error; err != nil {
		return nil, errors.Wrapf(err, "find user by email")
	}
	return user, nil
}

func (a *authRepo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	if err := a.DB.WithContext(ctx).Where("id = ?", id).First(user).Error; err != nil {
		return nil, errors.Wrapf(err, "find user %s", id)
	}
	return user, nil
}

func (a *authRepo) FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := a.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "find users by ids")
	}
	return users, nil
}

func (a *authRepo) AddToBlackList(ctx context.Context, blacklist *models.Blacklist) error {
	err := a.DB.WithContext(ctx).Create(blacklist).Error
	if isDuplicateKey(err) {
		return nil
	}
	return errors.Wrap(err, "blacklist token")
}

func (a *authRepo) IsTokenInBlacklist(ctx context.Context, token string) bool {
	var count int64
	if err := a.DB.WithContext(ctx).Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		// treat lookup failures as revoked
		return true
	}
	return count > 0
}
