package auth

import (
	"net/http"
	"time"

	"github.com/crichq/pavilion/config"
	"github.com/crichq/pavilion/internal/middleware"
	"github.com/crichq/pavilion/pkg/responses"
	"github.com/crichq/pavilion/pkg/token"
	"github.com/crichq/pavilion/pkg/utils"
	"github.com/gin-gonic/gin"
)

// AuthController handles account registration and login.
type AuthController struct {
	repo      AuthRepository
	appConfig *config.Config
}

func NewAuthController(repo AuthRepository, appConfig *config.Config) *AuthController {
	return &AuthController{repo: repo, appConfig: appConfig}
}

func (ac *AuthController) issueTokens(account *Account) (*AuthResponse, error) {
	accessToken, err := token.GenerateJWT(account.ID, string(account.Role),
		ac.appConfig.JWT.AccessTokenSecret, ac.appConfig.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return nil, err
	}

	refreshString := utils.GenerateRandomToken(64)
	refresh := &RefreshToken{
		AccountID: account.ID,
		Token:     refreshString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.appConfig.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.repo.SaveRefreshToken(refresh); err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshString,
		Account:      FilterAccountRecord(account),
	}, nil
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} AuthResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	existing, err := ac.repo.GetAccountByEmail(req.Email)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to check existing accounts")
		return
	}
	if existing != nil {
		responses.ErrorResponse(c, http.StatusConflict, "An account with this email already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	role := RoleViewer
	if req.Role != "" {
		role = AccountRole(req.Role)
	}

	account := &Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		LastActive:   time.Now(),
	}
	if err := ac.repo.CreateAccount(account); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to create account: "+err.Error())
		return
	}

	resp, err := ac.issueTokens(account)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Account registered successfully",
		"auth":    resp,
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} AuthResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	account, err := ac.repo.GetAccountByEmail(req.Email)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to look up account")
		return
	}
	if account == nil || !utils.CheckPassword(account.PasswordHash, req.Password) {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	account.LastActive = time.Now()
	if err := ac.repo.UpdateAccount(account); err != nil {
		config.Log.WithError(err).Warn("failed to update last active timestamp")
	}

	resp, err := ac.issueTokens(account)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"auth":    resp,
	})
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh payload"
// @Success 200 {object} AuthResponse
// @Router /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to look up refresh token")
		return
	}
	if stored == nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	account, err := ac.repo.GetAccountByID(stored.AccountID)
	if err != nil || account == nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Account no longer exists")
		return
	}

	// Rotate: the old refresh token is single use.
	if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to rotate refresh token")
		return
	}

	resp, err := ac.issueTokens(account)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Token refreshed",
		"auth":    resp,
	})
}

// Me godoc
// @Summary Return the authenticated account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AccountResponse
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	accountID, err := middleware.GetAccountIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	account, err := ac.repo.GetAccountByID(accountID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load account")
		return
	}
	if account == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Account not found")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, FilterAccountRecord(account))
}

// Logout godoc
// @Summary Revoke all refresh tokens for the authenticated account
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	accountID, err := middleware.GetAccountIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := ac.repo.InvalidateAllRefreshTokensForAccount(accountID); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to revoke sessions")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Logged out"})
}
