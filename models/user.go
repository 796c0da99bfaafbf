package models

import (
	"errors"
	"strings"
	"time"

	goval "github.com/go-passwd/validator"
	"golang.org/x/crypto/bcrypt"
)

// User is a club member. The id is an opaque string token handed out at signup.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;size:450"`
	FirstName      string    `json:"first_name" gorm:"size:50"`
	LastName       string    `json:"last_name" gorm:"size:50"`
	Email          string    `json:"email" gorm:"unique;not null;size:254"`
	HashedPassword string    `json:"-"`
	TeamID         *string   `json:"team_id" gorm:"size:450;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName renders the user as "First Last".
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Team returns the user's team id, empty when the user has none.
func (u *User) Team() string {
	if u.TeamID == nil {
		return ""
	}
	return *u.TeamID
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

// Blacklist holds access tokens revoked by logout.
type Blacklist struct {
	Token     string `gorm:"primaryKey;size:1024"`
	CreatedAt time.Time
}

type SignupRequest struct {
	FirstName string `json:"first_name" conform:"trim" validate:"required,min=1,max=50"`
	LastName  string `json:"last_name" conform:"trim" validate:"required,min=1,max=50"`
	Email     string `json:"email" conform:"trim,lower" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	TeamCode  string `json:"team_code" conform:"trim,upper" validate:"omitempty,len=6"`
}

type LoginRequest struct {
	Email    string `json:"email" conform:"trim,lower" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	TeamID    string `json:"team_id"`
	TeamName  string `json:"team_name"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

// UserLookup pairs a user id with its display name.
type UserLookup struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// ValidatePassword checks the signup password policy.
func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(32, errors.New("password cant be more than 32 characters")))
	return passwordValidator.Validate(password)
}
