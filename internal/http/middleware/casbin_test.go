package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadloked8999/e-bar/domain"
	"github.com/deadloked8999/e-bar/internal/mocks"
	"github.com/deadloked8999/e-bar/internal/services"
)

const testModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()
	m, err := model.NewModelFromString(testModel)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)
	_, err = e.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
	require.NoError(t, err)
	return e
}

func casbinTestRouter(t *testing.T, estRepo *mocks.MockEstablishmentRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	guard := services.NewAuthzGuard(mocks.NewMockTokenService())
	authmw := NewAuthMW(guard)
	cb := NewCasbinMW(newTestEnforcer(t), estRepo)

	r := gin.New()
	adm := r.Group("/admin").Use(authmw.RequireAuth(), cb.Enforce())
	adm.POST("/documents/:id/verify", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"ok": true}})
	})
	return r
}

func repoWithRole(role string) *mocks.MockEstablishmentRepository {
	estRepo := mocks.NewMockEstablishmentRepository()
	estRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Establishment, error) {
		return &domain.Establishment{ID: id, Username: "bar-aurora", Role: role}, nil
	}
	return estRepo
}

func TestCasbinMW_Enforce(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		expectedCode int
	}{
		{
			name:         "admin role passes",
			role:         "admin",
			expectedCode: http.StatusOK,
		},
		{
			name:         "user role is denied",
			role:         "user",
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := casbinTestRouter(t, repoWithRole(tt.role))

			req := httptest.NewRequest(http.MethodPost, "/admin/documents/3/verify", nil)
			req.Header.Set("Authorization", "Bearer token_1")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestCasbinMW_UnknownEstablishment(t *testing.T) {
	r := casbinTestRouter(t, mocks.NewMockEstablishmentRepository())

	req := httptest.NewRequest(http.MethodPost, "/admin/documents/3/verify", nil)
	req.Header.Set("Authorization", "Bearer token_1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
