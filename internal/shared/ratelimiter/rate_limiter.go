// Package ratelimiter は受信HTTPリクエストの頻度制限を提供します。
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Limiter は固定ウィンドウ方式で操作の頻度を制限します。
// 複数リクエストから並行に呼ばれるためミューテックスで保護します。
type Limiter struct {
	mu          sync.Mutex
	limit       int           // ウィンドウあたりの上限
	interval    time.Duration // どの単位でリセットするか
	count       int
	windowStart time.Time
}

// NewLimiter は新しいLimiterのインスタンスを生成します。
func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:       limit,
		interval:    interval,
		windowStart: time.Now(),
	}
}

// Allow は現在のウィンドウ内でリクエストを受け付けられるかを返します。
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	// interval を過ぎたらカウントリセット
	if now.Sub(l.windowStart) >= l.interval {
		l.count = 0
		l.windowStart = now
	}

	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}

// Middleware は上限超過のリクエストを429で拒否するginミドルウェアを返します。
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			log.Warnf("[RATE LIMIT] rejecting request from %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
			})
			return
		}
		c.Next()
	}
}
