package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/venezolean/POSPLIPSHOP/internal/apierror"
)

// ipLimiter is a fixed-window per-IP counter. One instance per concern
// (global API traffic, login attempts) so login abuse trips long before the
// general limit does.
type ipLimiter struct {
	mu      sync.Mutex
	entries map[string]*ipWindow
	limit   int
	window  time.Duration
	detail  string
}

type ipWindow struct {
	count     int
	windowEnd time.Time
}

func newIPLimiter(limit int, window time.Duration, detail string) *ipLimiter {
	l := &ipLimiter{
		entries: make(map[string]*ipWindow),
		limit:   limit,
		window:  window,
		detail:  detail,
	}
	go l.purgeLoop()
	return l
}

func (l *ipLimiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.entries[ip]
	if !ok || now.After(w.windowEnd) {
		w = &ipWindow{windowEnd: now.Add(l.window)}
		l.entries[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.windowEnd
}

// purgeLoop drops expired windows so IPs that never return do not accumulate.
func (l *ipLimiter) purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := 0

		l.mu.Lock()
		for ip, w := range l.entries {
			if now.After(w.windowEnd) {
				delete(l.entries, ip)
				purged++
			}
		}
		remaining := len(l.entries)
		l.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("purged", purged).
				Int("remaining", remaining).
				Msg("rate limiter entries purged")
		}
	}
}

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.detail))
			return
		}
		c.Next()
	}
}

// RateLimiter caps total requests per IP over the window.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter(limit, window, "Demasiadas solicitudes. Intente nuevamente en un momento.").middleware()
}

// LoginRateLimiter caps login attempts at 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newIPLimiter(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.").middleware()
}
