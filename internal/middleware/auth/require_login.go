package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/parusoft/shop-backend/internal/models"
	"github.com/parusoft/shop-backend/internal/repo"
	"github.com/parusoft/shop-backend/internal/transport"
	"github.com/parusoft/shop-backend/pkg/tokens"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

type Gate struct {
	AccessSecret []byte
	Repo         *repo.GormRepo
}

func NewGate(secret []byte, r *repo.GormRepo) *Gate {
	return &Gate{AccessSecret: secret, Repo: r}
}

// RequireAuth resolves the access token to a stored user and puts it on the
// request context. Expired, forged and deleted-user cases are not
// distinguished to the caller.
func (g *Gate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := extractToken(c)
		if raw == "" {
			return unauthenticated(c, "no token provided")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, g.AccessSecret)
		if err != nil || claims == nil {
			return unauthenticated(c, "invalid access token")
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return unauthenticated(c, "invalid access token")
		}

		user, err := g.Repo.GetUserByID(c.Request().Context(), userID)
		if err != nil {
			return unauthenticated(c, "invalid access token")
		}
		user.PasswordHash = ""
		user.RefreshToken = ""

		c.Set(UserContextKey, user)
		c.Set(UserIDContextKey, user.ID)

		return next(c)
	}
}

// cookie takes precedence over the Authorization header
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func unauthenticated(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, transport.Envelope{
		Success: false,
		Message: message,
	})
}

// CurrentUser returns the identity the gate attached, or nil outside an
// authenticated route.
func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(UserContextKey).(*models.User); ok {
		return u
	}
	return nil
}

func CurrentUserID(c echo.Context) (uuid.UUID, bool) {
	if id, ok := c.Get(UserIDContextKey).(uuid.UUID); ok && id != uuid.Nil {
		return id, true
	}
	return uuid.Nil, false
}
