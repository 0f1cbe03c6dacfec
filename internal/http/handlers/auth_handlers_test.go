package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadloked8999/e-bar/domain"
	"github.com/deadloked8999/e-bar/internal/http/middleware"
	"github.com/deadloked8999/e-bar/internal/mocks"
	"github.com/deadloked8999/e-bar/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authTestRouter(authSvc domain.AuthService, resetSvc domain.PasswordResetService) *gin.Engine {
	h := NewAuthHandlers(authSvc, resetSvc)
	guard := services.NewAuthzGuard(mocks.NewMockTokenService())
	authmw := middleware.NewAuthMW(guard)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/forgot-password", h.ForgotPassword)
	r.POST("/auth/reset-password", h.ResetPassword)
	r.GET("/auth/me", authmw.RequireAuth(), h.Me)
	r.POST("/auth/change-password", authmw.RequireAuth(), h.ChangePassword)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validRegisterBody() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Ivan Petrov",
		"username":      "bar-aurora",
		"password":      "securepassword123",
		"position":      "owner",
		"phone":         "+79990001122",
		"email":         "owner@aurora.bar",
		"business_name": "Aurora",
		"business_type": "bar",
		"address":       "Nevsky 1",
		"inn":           "7701234567",
		"ogrn":          "1027700132195",
	}
}

func TestAuthHandlers_Register(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RegisterFunc = func(ctx context.Context, est *domain.Establishment, password string) (*domain.AuthResult, error) {
		est.ID = 10
		return &domain.AuthResult{Establishment: est, AccessToken: "token_10", ExpiresIn: 604800}, nil
	}
	r := authTestRouter(authSvc, mocks.NewMockPasswordResetService())

	w := postJSON(t, r, "/auth/register", validRegisterBody())

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			AccessToken   string                 `json:"access_token"`
			ExpiresIn     int64                  `json:"expires_in"`
			Establishment map[string]interface{} `json:"establishment"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token_10", resp.Data.AccessToken)
	assert.Equal(t, int64(604800), resp.Data.ExpiresIn)
	assert.Equal(t, "bar-aurora", resp.Data.Establishment["username"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandlers_RegisterValidation(t *testing.T) {
	r := authTestRouter(mocks.NewMockAuthService(), mocks.NewMockPasswordResetService())

	body := validRegisterBody()
	delete(body, "email")
	w := postJSON(t, r, "/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = validRegisterBody()
	body["password"] = "short"
	w = postJSON(t, r, "/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_RegisterDuplicate(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RegisterFunc = func(ctx context.Context, est *domain.Establishment, password string) (*domain.AuthResult, error) {
		return nil, domain.ErrEstablishmentExists
	}
	r := authTestRouter(authSvc, mocks.NewMockPasswordResetService())

	w := postJSON(t, r, "/auth/register", validRegisterBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name         string
		loginErr     error
		expectedCode int
	}{
		{
			name:         "success",
			loginErr:     nil,
			expectedCode: http.StatusOK,
		},
		{
			name:         "invalid credentials",
			loginErr:     domain.ErrInvalidCredentials,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "rate limited",
			loginErr:     domain.ErrRateLimited,
			expectedCode: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.LoginFunc = func(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
				if tt.loginErr != nil {
					return nil, tt.loginErr
				}
				return &domain.AuthResult{
					Establishment: &domain.Establishment{ID: 1, Username: identifier},
					AccessToken:   "token_1",
					ExpiresIn:     604800,
				}, nil
			}
			r := authTestRouter(authSvc, mocks.NewMockPasswordResetService())

			w := postJSON(t, r, "/auth/login", map[string]string{
				"username": "bar-aurora",
				"password": "securepassword123",
			})
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Contains(t, w.Body.String(), "token_1")
			}
		})
	}
}

func TestAuthHandlers_ForgotPasswordIsExistenceOblivious(t *testing.T) {
	resetSvc := mocks.NewMockPasswordResetService()
	resetSvc.IssueFunc = func(ctx context.Context, email string) error {
		// Known or unknown, the service succeeds either way
		return nil
	}
	r := authTestRouter(mocks.NewMockAuthService(), resetSvc)

	known := postJSON(t, r, "/auth/forgot-password", map[string]string{"email": "owner@aurora.bar"})
	unknown := postJSON(t, r, "/auth/forgot-password", map[string]string{"email": "nobody@example.com"})

	require.Equal(t, http.StatusOK, known.Code)
	require.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	tests := []struct {
		name         string
		consumeErr   error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "success",
			consumeErr:   nil,
			expectedCode: http.StatusOK,
			expectedBody: "Password has been reset",
		},
		{
			name:         "unknown token",
			consumeErr:   domain.ErrResetTokenInvalid,
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid reset token",
		},
		{
			name:         "used token",
			consumeErr:   domain.ErrResetTokenUsed,
			expectedCode: http.StatusBadRequest,
			expectedBody: "already used",
		},
		{
			name:         "expired token",
			consumeErr:   domain.ErrResetTokenExpired,
			expectedCode: http.StatusBadRequest,
			expectedBody: "expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetSvc := mocks.NewMockPasswordResetService()
			resetSvc.ConsumeFunc = func(ctx context.Context, token, newPassword string) error {
				return tt.consumeErr
			}
			r := authTestRouter(mocks.NewMockAuthService(), resetSvc)

			w := postJSON(t, r, "/auth/reset-password", map[string]string{
				"token":        "sometoken",
				"new_password": "newpassword123",
			})
			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestAuthHandlers_ChangePassword(t *testing.T) {
	tests := []struct {
		name         string
		changeErr    error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "success",
			changeErr:    nil,
			expectedCode: http.StatusOK,
			expectedBody: "Password has been changed",
		},
		{
			name:         "wrong current password",
			changeErr:    domain.ErrInvalidCredentials,
			expectedCode: http.StatusUnauthorized,
			expectedBody: "Current password is incorrect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			var gotID uint
			authSvc.ChangePasswordFunc = func(ctx context.Context, id uint, currentPassword, newPassword string) error {
				gotID = id
				return tt.changeErr
			}
			r := authTestRouter(authSvc, mocks.NewMockPasswordResetService())

			raw, err := json.Marshal(map[string]string{
				"current_password": "securepassword123",
				"new_password":     "newpassword456",
			})
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/auth/change-password", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer token_1")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			// The token subject, not the body, names the establishment
			assert.Equal(t, uint(1), gotID)
		})
	}
}

func TestAuthHandlers_ChangePasswordRequiresToken(t *testing.T) {
	r := authTestRouter(mocks.NewMockAuthService(), mocks.NewMockPasswordResetService())

	w := postJSON(t, r, "/auth/change-password", map[string]string{
		"current_password": "securepassword123",
		"new_password":     "newpassword456",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlers_ChangePasswordValidation(t *testing.T) {
	r := authTestRouter(mocks.NewMockAuthService(), mocks.NewMockPasswordResetService())

	raw, err := json.Marshal(map[string]string{
		"current_password": "securepassword123",
		"new_password":     "short",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/auth/change-password", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token_1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_Me(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.GetProfileFunc = func(ctx context.Context, id uint) (*domain.Establishment, error) {
		return &domain.Establishment{ID: id, Username: "bar-aurora", Email: "owner@aurora.bar"}, nil
	}
	r := authTestRouter(authSvc, mocks.NewMockPasswordResetService())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer token_1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bar-aurora")
}

func TestAuthHandlers_MeRequiresToken(t *testing.T) {
	r := authTestRouter(mocks.NewMockAuthService(), mocks.NewMockPasswordResetService())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
