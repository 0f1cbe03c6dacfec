package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deadloked8999/e-bar/domain"
	"github.com/deadloked8999/e-bar/internal/http/middleware"
)

// AuthHandlers handles registration, login and the password reset flow
type AuthHandlers struct {
	authSvc  domain.AuthService
	resetSvc domain.PasswordResetService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, resetSvc domain.PasswordResetService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, resetSvc: resetSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Position string `json:"position" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`

	BusinessName  string `json:"business_name" binding:"required"`
	BusinessType  string `json:"business_type" binding:"required"`
	BusinessPhone string `json:"business_phone,omitempty"`
	Website       string `json:"website,omitempty"`
	Address       string `json:"address" binding:"required"`
	INN           string `json:"inn" binding:"required"`
	OGRN          string `json:"ogrn" binding:"required"`
}

// LoginRequest represents login request. Identifier matches either the
// username or the email.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest represents a reset token request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents a reset token redemption
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ChangePasswordRequest represents an authenticated password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// Register handles establishment registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	est := &domain.Establishment{
		Name:          req.Name,
		Username:      req.Username,
		Position:      req.Position,
		Phone:         req.Phone,
		Email:         req.Email,
		BusinessName:  req.BusinessName,
		BusinessType:  req.BusinessType,
		BusinessPhone: req.BusinessPhone,
		Website:       req.Website,
		Address:       req.Address,
		INN:           req.INN,
		OGRN:          req.OGRN,
	}

	result, err := h.authSvc.Register(c.Request.Context(), est, req.Password)
	if err != nil {
		if err == domain.ErrEstablishmentExists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Establishment with this email or username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register establishment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  result.AccessToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"establishment": establishmentResponse(result.Establishment),
		},
	})
}

// Login handles establishment login. A throttled identifier gets 429,
// distinguishable from bad credentials; bad credentials never reveal
// whether the identifier exists.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch err {
		case domain.ErrRateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  result.AccessToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"establishment": establishmentResponse(result.Establishment),
		},
	})
}

// ForgotPassword handles a reset token request. The response is the
// same whether or not the email is registered.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resetSvc.Issue(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process reset request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "If that email is registered, a reset token has been sent",
		},
	})
}

// ResetPassword handles reset token redemption
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resetSvc.Consume(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		switch err {
		case domain.ErrResetTokenInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reset token"})
		case domain.ErrResetTokenUsed:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token already used"})
		case domain.ErrResetTokenExpired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token has expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Password has been reset",
		},
	})
}

// ChangePassword replaces the authenticated establishment's password
// after verifying the current one.
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	id, ok := middleware.AuthedEstablishmentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Establishment not resolved from token"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		case domain.ErrEstablishmentNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Establishment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Password has been changed",
		},
	})
}

// Me returns the authenticated establishment's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	id, ok := middleware.AuthedEstablishmentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Establishment not resolved from token"})
		return
	}

	est, err := h.authSvc.GetProfile(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrEstablishmentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Establishment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": establishmentResponse(est)})
}

// establishmentResponse shapes an establishment for responses; the
// credential hash never leaves the service.
func establishmentResponse(est *domain.Establishment) gin.H {
	return gin.H{
		"id":             est.ID,
		"name":           est.Name,
		"username":       est.Username,
		"position":       est.Position,
		"phone":          est.Phone,
		"email":          est.Email,
		"business_name":  est.BusinessName,
		"business_type":  est.BusinessType,
		"business_phone": est.BusinessPhone,
		"website":        est.Website,
		"logo_path":      est.LogoPath,
		"address":        est.Address,
		"inn":            est.INN,
		"ogrn":           est.OGRN,
		"status":         est.Status,
		"created_at":     est.CreatedAt,
		"updated_at":     est.UpdatedAt,
	}
}
