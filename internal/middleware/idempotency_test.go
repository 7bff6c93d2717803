package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-truck-business/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("replays stored response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		r := gin.New()
		r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
			calls++
			c.Status(http.StatusCreated)
		})

		mock.ExpectGet("idemp:/leaves::key-1").SetVal(`{"status":201,"body":{"success":true}}`)

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		r := gin.New()
		r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		mock.ExpectGet("idemp:/leaves::key-2").RedisNil()
		mock.ExpectSetNX("idemp:/leaves::key-2:lock", "locked", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("no header passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		r := gin.New()
		r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
