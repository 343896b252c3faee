package auth

import (
	"time"

	"gorm.io/gorm"
)

// AccountRole gates what an authenticated account may do. Scorers record
// deliveries and lifecycle transitions, admins additionally manage the
// league entities, viewers only read.
type AccountRole string

const (
	RoleAdmin  AccountRole = "admin"
	RoleScorer AccountRole = "scorer"
	RoleViewer AccountRole = "viewer"
)

// Account is a login identity. League people (players) are a separate
// domain entity and do not log in.
type Account struct {
	gorm.Model
	Name         string      `json:"name" gorm:"not null"`
	Email        string      `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string      `json:"-" gorm:"not null"`
	Role         AccountRole `json:"role" gorm:"index;not null;default:'viewer'"`
	LastActive   time.Time   `json:"last_active"`
}

// RefreshToken stores issued refresh tokens so they can be revoked.
type RefreshToken struct {
	gorm.Model
	AccountID uint      `json:"account_id" gorm:"index;not null"`
	Account   Account   `json:"-" gorm:"foreignKey:AccountID"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"default:false"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=admin scorer viewer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AccountResponse struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      AccountRole `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuthResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Account      AccountResponse `json:"account"`
}

func FilterAccountRecord(a *Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}
