package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"carrotrent-backend/internal/config"
	"carrotrent-backend/internal/domain"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/security"
	"carrotrent-backend/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// IdentityResolver loads the current role of a token subject.
type IdentityResolver interface {
	ResolveActor(ctx context.Context, userID uuid.UUID) (*domain.Actor, error)
}

// AuthMiddleware authenticates bearer tokens and enforces the per-route role table.
type AuthMiddleware struct {
	tokens     security.TokenManager
	identities IdentityResolver
}

func NewAuthMiddleware(tokens security.TokenManager, identities IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, identities: identities}
}

// Handler must be installed with Router.Use so the matched route is known.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routeName := ""
		if route := mux.CurrentRoute(r); route != nil {
			routeName = route.GetName()
		}
		sec := config.GetRouteSecurity(routeName)
		if sec.Level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			writeErrors(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			logger.Debug("Token validation failed", "route", routeName, "error", err)
			writeErrors(w, http.StatusUnauthorized, err.Error())
			return
		}

		actor, err := m.identities.ResolveActor(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				writeErrors(w, http.StatusUnauthorized, err.Error())
				return
			}
			logger.Fault("ResolveActor", err, "userID", claims.UserID)
			writeErrors(w, http.StatusInternalServerError, internalErrorMessage)
			return
		}

		if !sec.Allows(actor.Role) {
			logger.Rejection(routeName, service.ErrForbidden, "userID", actor.ID, "role", actor.Role)
			writeErrors(w, http.StatusForbidden, service.ErrForbidden.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// defaultLimiterIdleTTL is how long a bucket may go unused before Cleanup evicts it.
const defaultLimiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per authenticated user, or per remote
// address for anonymous callers.
type RateLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		idleTTL:  defaultLimiterIdleTTL,
		now:      time.Now,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = rl.now()
	return entry.limiter
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if actor := ActorFromContext(r.Context()); actor != nil {
			key = actor.ID.String()
		}

		if !rl.getLimiter(key).Allow() {
			logger.Warn("Rate limit exceeded", "key", key, "path", r.URL.Path, "method", r.Method)
			writeErrors(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup evicts buckets not used within the idle TTL. Recently seen callers
// keep their bucket, including ones that are currently throttled.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idleTTL)
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}
