package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/satancra/bookstore/pkg/respond"
	"github.com/satancra/bookstore/pkg/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// RequireAuth validates a Bearer token and stores user id and role on the
// echo context.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				return respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication token is required")
			}

			claims, err := tokens.AccessClaimsFromToken(token, secret)
			if err != nil || claims.Subject == "" {
				return respond.Error(c, http.StatusForbidden, respond.CodeUnauthorized, "Invalid or expired token")
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// UserID reads the authenticated user's id from the context.
func UserID(c echo.Context) (uint, bool) {
	s, _ := c.Get(CtxUserID).(string)
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
