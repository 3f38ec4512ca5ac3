package middleware

import (
	"container/list"
	"sync"
	"time"

	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter token bucket per client IP, bounded by LRU eviction
type IPRateLimiter struct {
	limit   rate.Limit
	burst   int
	maxSize int

	mutex    sync.Mutex
	limiters map[string]*list.Element
	lru      *list.List
}

type limiterEntry struct {
	key     string
	limiter *rate.Limiter
}

// NewIPRateLimiter allows perMinute requests per IP with the given burst
func NewIPRateLimiter(perMinute, burst, maxSize int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	if maxSize <= 0 {
		maxSize = 10000
	}
	return &IPRateLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		maxSize:  maxSize,
		limiters: make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Allow reports whether ip may proceed now
func (rl *IPRateLimiter) Allow(ip string) bool {
	return rl.limiter(ip).Allow()
}

// Size number of tracked IPs
func (rl *IPRateLimiter) Size() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return rl.lru.Len()
}

func (rl *IPRateLimiter) limiter(ip string) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if el, ok := rl.limiters[ip]; ok {
		rl.lru.MoveToFront(el)
		return el.Value.(*limiterEntry).limiter
	}

	entry := &limiterEntry{key: ip, limiter: rate.NewLimiter(rl.limit, rl.burst)}
	rl.limiters[ip] = rl.lru.PushFront(entry)

	for rl.lru.Len() > rl.maxSize {
		oldest := rl.lru.Back()
		rl.lru.Remove(oldest)
		delete(rl.limiters, oldest.Value.(*limiterEntry).key)
	}
	return entry.limiter
}

// RateLimitMiddleware rejects requests over the limiter's rate with 429
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			utils.GetLogger().Warn("rate limit exceeded", "ip", c.ClientIP(), "path", c.FullPath())
			utils.AbortWithError(c, utils.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}
