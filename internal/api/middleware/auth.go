package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"Screams/internal/core/screams"
)

// Context keys for storing caller information
type contextKey string

const (
	AuthorKey    contextKey = "author"
	JWTClaimsKey contextKey = "jwt_claims"
)

// Claims are the token claims the API understands
// The caller handle comes from "handle", falling back to "sub"
type Claims struct {
	Handle   string `json:"handle,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware enforces bearer-token authentication for write routes
// Tokens are HS256 JWTs signed with a shared secret issued by the identity provider
type AuthMiddleware struct {
	secret []byte
}

// NewAuthMiddleware creates a new auth middleware verifying tokens with secret
func NewAuthMiddleware(secret []byte) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// RequireAuth middleware ensures the caller presents a valid token
// If not authenticated, returns 401
// If authenticated, injects the caller Author and claims into context
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := m.verify(token)
		if err != nil {
			slog.Warn("auth failure",
				"ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		author := screams.Author{Handle: claims.Handle, ImageURL: claims.ImageURL}
		if author.Handle == "" {
			author.Handle = claims.Subject
		}
		if author.Handle == "" {
			writeAuthError(w, "Missing user handle in token")
			return
		}

		ctx := context.WithValue(r.Context(), AuthorKey, author)
		ctx = context.WithValue(ctx, JWTClaimsKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

// SignToken issues an HS256 token for author that expires after ttl
// Used by the token command for local development and by tests
func SignToken(secret []byte, author screams.Author, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Handle:   author.Handle,
		ImageURL: author.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   author.Handle,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// GetAuthor extracts the caller from the request context
// Returns the zero Author if not authenticated
func GetAuthor(r *http.Request) screams.Author {
	author, _ := r.Context().Value(AuthorKey).(screams.Author)
	return author
}

// GetJWTClaims extracts the JWT claims from the request context
// Returns nil if not authenticated
func GetJWTClaims(r *http.Request) *Claims {
	claims, _ := r.Context().Value(JWTClaimsKey).(*Claims)
	return claims
}

// SetTestAuthor sets the caller in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestAuthor(ctx context.Context, author screams.Author) context.Context {
	return context.WithValue(ctx, AuthorKey, author)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusUnauthorized, "AuthRequired", message)
}

func writeJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	}); err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}
