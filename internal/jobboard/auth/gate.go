package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgTokenMissing = "Not authorized, token missing"
	msgTokenInvalid = "Not authorized, token invalid"
	msgUserNotFound = "Not authorized, user not found"
)

type contextKey string

const (
	userContextKey contextKey = "user"
)

// UserFinder loads the account a token was issued for.
type UserFinder interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Gate resolves bearer tokens to identities. The user is reloaded on every
// request so a company linked after login is visible immediately.
type Gate struct {
	tokens *TokenManager
	users  UserFinder
	logger *zap.Logger
}

func NewGate(tokens *TokenManager, users UserFinder, logger *zap.Logger) *Gate {
	return &Gate{
		tokens: tokens,
		users:  users,
		logger: logger.Named("auth_gate"),
	}
}

// Authenticate validates the Authorization header value and returns the
// caller's identity.
func (g *Gate) Authenticate(ctx context.Context, header string) (*models.Identity, error) {
	tokenString, err := extractToken(header)
	if err != nil {
		return nil, err
	}

	userID, err := g.tokens.Validate(tokenString)
	if err != nil {
		return nil, e.New(e.ErrUnauthorized, msgTokenInvalid)
	}

	user, err := g.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.New(e.ErrUnauthorized, msgUserNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return models.IdentityOf(user), nil
}

// Middleware rejects requests without a valid bearer token and stores the
// identity in the request context.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := g.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, e.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": e.Message(err)})
				return
			}
			g.logger.Error("Failed to authenticate request",
				zap.Error(err),
				zap.String("path", c.FullPath()),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong while processing the request"})
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, userContextKey, identity)
}

// IdentityFromContext returns the identity stored by Middleware.
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(userContextKey).(*models.Identity)
	return identity, ok && identity != nil
}

// extractToken retrieves the token from a "Bearer <token>" header value.
func extractToken(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", e.New(e.ErrUnauthorized, msgTokenMissing)
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenString == "" {
		return "", e.New(e.ErrUnauthorized, msgTokenMissing)
	}
	return tokenString, nil
}
