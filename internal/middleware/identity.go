// Package middleware provides HTTP middleware for request identity and
// observability.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sanjay-Kirti/YouMDB/internal/models"
)

const (
	headerAuth   = "Authorization"
	bearerPrefix = "Bearer "
)

type contextKey int

const sessionKey contextKey = iota

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext returns the request session. Requests that carried no
// valid token get an anonymous session.
func SessionFromContext(ctx context.Context) models.Session {
	if session, ok := ctx.Value(sessionKey).(models.Session); ok {
		return session
	}
	return models.Session{Anonymous: true}
}

// Identity verifies bearer tokens and attaches a Session to the request
// context. Requests without a token, or with an invalid one, proceed as
// anonymous; write endpoints enforce the boundary downstream.
type Identity struct {
	secret []byte
	logger *slog.Logger
}

// NewIdentity creates identity middleware verifying HS256 tokens signed
// with secret.
func NewIdentity(secret string, logger *slog.Logger) *Identity {
	if logger == nil {
		logger = slog.Default()
	}
	return &Identity{
		secret: []byte(secret),
		logger: logger,
	}
}

// Middleware returns an HTTP middleware that resolves the request session.
func (i *Identity) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := i.resolveSession(r)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func (i *Identity) resolveSession(r *http.Request) models.Session {
	authHeader := r.Header.Get(headerAuth)
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return models.Session{Anonymous: true}
	}
	tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

	session, err := i.verifyToken(tokenString)
	if err != nil {
		i.logger.Warn("rejected bearer token, treating request as anonymous",
			"path", r.URL.Path,
			"error", err,
		)
		return models.Session{Anonymous: true}
	}
	return session
}

// sessionClaims follows the Supabase token shape: the user id in sub and
// an is_anonymous marker for guest sessions.
type sessionClaims struct {
	IsAnonymous bool `json:"is_anonymous"`
	jwt.RegisteredClaims
}

func (i *Identity) verifyToken(tokenString string) (models.Session, error) {
	var claims sessionClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return models.Session{}, err
	}
	if !token.Valid {
		return models.Session{}, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return models.Session{}, fmt.Errorf("token has no subject")
	}

	return models.Session{
		UserID:    claims.Subject,
		Anonymous: claims.IsAnonymous,
	}, nil
}
