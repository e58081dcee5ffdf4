package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Username string     `json:"username" gorm:"uniqueIndex"` // Public handle, unique across all users
	Email    string     `json:"email" gorm:"uniqueIndex"`
	Password string     `json:"-"`                       // bcrypt hash, never serialized
	UUID     string     `json:"uuid" gorm:"uniqueIndex"` // Stable public identifier
	LastSeen *time.Time `json:"last_seen"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Profile holds the presentational side of a user (avatar, activation state).
// Kept as a separate row so avatar churn never touches the users table.
type Profile struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	UserID      uint    `json:"user_id" gorm:"index"`
	UUID        string  `json:"uuid" gorm:"uniqueIndex"`
	AvatarName  *string `json:"avatar_name"`
	IsActivated bool    `json:"is_activated"`
}

// SignupRequest defines the request body for local registration
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SigninRequest defines the request body for local login
type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
// This is the only claims shape the auth middleware accepts; a token whose
// payload does not decode into it never reaches a handler.
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	UUID     string `json:"uuid"`
	jwt.RegisteredClaims
}
