package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/musicclouds/platform/pkg/logging"
	"github.com/musicclouds/platform/pkg/tokens"
	"github.com/musicclouds/platform/services/user/internal/domain"
	"github.com/musicclouds/platform/services/user/internal/repo"
)

const bearerPrefix = "Bearer "

const principalKey = "principal"

// Principal is the authenticated identity established for a request. It is
// threaded explicitly through the echo context, never through ambient state.
type Principal struct {
	UserID   uint
	Email    string
	Username string
	Role     domain.Role
}

type Authorizer struct {
	Repo  repo.GormRepo
	Codec *tokens.Codec
}

// Authenticate establishes the caller's principal from a bearer access
// token. Requests without a usable token pass through unauthenticated and
// route policy decides whether that is acceptable. The check is read-only
// against the ledger.
func (a *Authorizer) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return next(c)
		}
		token := strings.TrimPrefix(header, bearerPrefix)

		subject, err := a.Codec.ExtractSubject(token, tokens.KindAccess)
		if err != nil {
			return next(c)
		}

		if _, ok := PrincipalFrom(c); ok {
			return next(c)
		}

		ctx := c.Request().Context()
		user, err := a.Repo.UserByEmail(ctx, subject)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The subject no longer exists. Answer like any other failed
				// authentication instead of leaking the lookup result.
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")
			}
			logging.FromContext(ctx).Error("authorizer_lookup_failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		usable, err := a.Repo.TokenUsable(ctx, token)
		if err != nil {
			logging.FromContext(ctx).Error("authorizer_ledger_failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		if usable && a.Codec.Valid(token, user.Email, tokens.KindAccess) {
			c.Set(principalKey, Principal{
				UserID:   user.ID,
				Email:    user.Email,
				Username: user.Username,
				Role:     domain.Role(user.Role),
			})
		}

		return next(c)
	}
}

func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}

func RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := PrincipalFrom(c); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	}
}

func RequirePermission(perm string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !p.Role.Can(perm) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
