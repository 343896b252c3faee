package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateAccount(a *Account) error
	GetAccountByEmail(email string) (*Account, error)
	GetAccountByID(id uint) (*Account, error)
	UpdateAccount(a *Account) error

	SaveRefreshToken(token *RefreshToken) error
	GetRefreshToken(tokenString string) (*RefreshToken, error)
	InvalidateRefreshToken(tokenString string) error
	InvalidateAllRefreshTokensForAccount(accountID uint) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateAccount(a *Account) error {
	return r.db.Create(a).Error
}

func (r *authRepository) GetAccountByEmail(email string) (*Account, error) {
	var a Account
	if err := r.db.Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *authRepository) GetAccountByID(id uint) (*Account, error) {
	var a Account
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *authRepository) UpdateAccount(a *Account) error {
	return r.db.Save(a).Error
}

func (r *authRepository) SaveRefreshToken(token *RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *authRepository) GetRefreshToken(tokenString string) (*RefreshToken, error) {
	var t RefreshToken
	err := r.db.Where("token = ? AND revoked = ? AND expires_at > ?", tokenString, false, time.Now()).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *authRepository) InvalidateRefreshToken(tokenString string) error {
	return r.db.Model(&RefreshToken{}).Where("token = ?", tokenString).Update("revoked", true).Error
}

func (r *authRepository) InvalidateAllRefreshTokensForAccount(accountID uint) error {
	return r.db.Model(&RefreshToken{}).Where("account_id = ?", accountID).Update("revoked", true).Error
}
