package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-truck-business/internal/middleware"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/jwtutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const secret = "middleware-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", handlers...)
	return r
}

func signed(t *testing.T, tokenType string, ttl time.Duration) string {
	t.Helper()
	tok, err := jwtutil.Generate(secret, jwtutil.Claims{UserID: "user-1", Role: "staff", TokenType: tokenType}, ttl, time.Now())
	assert.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	var gotUser, gotRole, ctxUser string
	r := newRouter(middleware.AuthMiddleware(secret), func(c *gin.Context) {
		gotUser = c.GetString("user_id")
		gotRole = c.GetString("role")
		ctxUser = contextutil.GetUserID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, jwtutil.TypeAccess, time.Minute))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "user-1", gotUser)
		assert.Equal(t, "STAFF", gotRole)
		assert.Equal(t, "user-1", ctxUser)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: signed(t, jwtutil.TypeAccess, time.Minute)})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, jwtutil.TypeRefresh, time.Minute))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, jwtutil.TypeAccess, -time.Minute))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expired")
	})
}

func TestContextLogger_RequestID(t *testing.T) {
	var ctxRID string
	r := newRouter(middleware.ContextLogger(zap.NewNop()), func(c *gin.Context) {
		ctxRID = contextutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("propagates incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-ID", "rid-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "rid-123", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "rid-123", ctxRID)
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		assert.Equal(t, w.Header().Get("X-Request-ID"), ctxRID)
	})
}

type fakeRBAC struct {
	allowed bool
	err     error
}

func (f fakeRBAC) Enforce(role, resource, action string) (bool, error) {
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	withRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
			c.Next()
		}
	}
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	cases := []struct {
		name string
		role string
		svc  fakeRBAC
		want int
	}{
		{"allowed", "STAFF", fakeRBAC{allowed: true}, http.StatusOK},
		{"denied", "STAFF", fakeRBAC{allowed: false}, http.StatusForbidden},
		{"no role", "", fakeRBAC{allowed: true}, http.StatusUnauthorized},
		{"enforcer error", "ADMIN", fakeRBAC{err: errors.New("boom")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(withRole(tc.role), middleware.RBACAuthorize(tc.svc, "attendance", "write"), ok)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRateLimitByIP(t *testing.T) {
	r := newRouter(middleware.RateLimitByIP(0.001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
