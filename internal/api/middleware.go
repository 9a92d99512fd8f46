package api

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL после минуты простоя limiter полностью восстановлен, его можно пересоздать
const limiterIdleTTL = 2 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter хранит отдельный limiter на каждый IP; неактивные удаляются
type ipRateLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*ipLimiter
	perMin      int
	lastCleanup time.Time
	now         func() time.Time
}

func newIPRateLimiter(perMinute int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*ipLimiter),
		perMin:   perMinute,
		now:      time.Now,
	}
}

func (s *ipRateLimiter) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastCleanup) >= limiterIdleTTL {
		s.evictIdle(now)
		s.lastCleanup = now
	}

	entry, ok := s.limiters[ip]
	if !ok {
		entry = &ipLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin),
		}
		s.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (s *ipRateLimiter) evictIdle(now time.Time) {
	for ip, entry := range s.limiters {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(s.limiters, ip)
		}
	}
}

func (s *ipRateLimiter) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimit ограничивает число запросов с одного IP; perMinute <= 0 отключает ограничение
func RateLimit(perMinute int, logger *zap.Logger) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	store := newIPRateLimiter(perMinute)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			logger.Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}

// RequestLogger пишет каждый запрос в лог
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("origin", c.GetHeader("Origin")),
		)
	}
}

// originChecker пропускает любой origin, неизвестные только логирует
func originChecker(allowed []string, logger *zap.Logger) func(origin string) bool {
	return func(origin string) bool {
		if !slices.Contains(allowed, origin) {
			logger.Warn("Origin is not in the allowed list", zap.String("origin", origin))
		}
		return true
	}
}
