package mcpsrv

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/qyinm/acadjobs/logging"
	"golang.org/x/time/rate"
)

// WrapMCPHandler guards next with the origin allow-list, the rate limiter
// and, when configured, the API key check, in that order.
func WrapMCPHandler(next http.Handler, cfg Config, log *logging.Logger) http.Handler {
	if log == nil {
		log = logging.Nop()
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	h := next
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		h = requireAPIKey(h, key, log)
	}
	h = rateLimit(h, newTokenBucket(rps, burst), log)
	h = checkOrigin(h, cfg.AllowedOrigins, log)
	return h
}

// checkOrigin rejects browser requests from origins not on the list. Requests
// without an Origin header (CLI clients, stdio bridges) pass through.
func checkOrigin(next http.Handler, origins []string, log *logging.Logger) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := allowed[origin]; !ok {
			log.Warn("origin rejected", "origin", origin, "remote", r.RemoteAddr)
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization, X-API-Key, Mcp-Protocol-Version, Mcp-Session-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func rateLimit(next http.Handler, limiter *tokenBucket, log *logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			log.Debug("rate limited", "remote", r.RemoteAddr)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireAPIKey(next http.Handler, expected string, log *logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !validAPIKey(r, expected) {
			log.Warn("unauthorized request", "remote", r.RemoteAddr)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validAPIKey accepts the key in X-API-Key or as an Authorization bearer token.
func validAPIKey(r *http.Request, expected string) bool {
	if secureEqual(strings.TrimSpace(r.Header.Get("X-API-Key")), expected) {
		return true
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return false
	}
	return secureEqual(strings.TrimSpace(token), expected)
}

func secureEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// tokenBucket is a single limiter shared by all callers, refilled at rps
// tokens per second up to burst.
type tokenBucket struct {
	limiter *rate.Limiter
	now     func() time.Time
}

func newTokenBucket(rps float64, burst int) *tokenBucket {
	return &tokenBucket{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		now:     time.Now,
	}
}

func (b *tokenBucket) Allow() bool {
	return b.limiter.AllowN(b.now(), 1)
}
