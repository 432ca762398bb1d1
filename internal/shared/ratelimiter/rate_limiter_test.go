package ratelimiter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"chart_backend/internal/shared/ratelimiter"
)

// TestLimiter_Allow は上限までの受理と超過後の拒否を検証します。
func TestLimiter_Allow(t *testing.T) {
	l := ratelimiter.NewLimiter(2, time.Minute)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

// TestLimiter_WindowReset はウィンドウ経過後にカウントがリセットされることを検証します。
func TestLimiter_WindowReset(t *testing.T) {
	l := ratelimiter.NewLimiter(1, 30*time.Millisecond)

	assert.True(t, l.Allow())
	assert.False(t, l.Allow())

	time.Sleep(40 * time.Millisecond)
	assert.True(t, l.Allow())
}

// TestMiddleware は超過リクエストが429で拒否されることを検証します。
func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ratelimiter.Middleware(ratelimiter.NewLimiter(1, time.Minute)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"error":"too many requests"}`, second.Body.String())
}
