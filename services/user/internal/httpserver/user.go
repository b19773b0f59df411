package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/satancra/bookstore/pkg/logging"
	"github.com/satancra/bookstore/pkg/respond"
	"github.com/satancra/bookstore/services/user/internal/middleware"
	"github.com/satancra/bookstore/services/user/internal/service"
	"github.com/satancra/bookstore/services/user/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid body")
	}

	result, err := h.Svc.Signup(ctx, req.Username, req.Password, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
			l.Warn("signup_error", "status", 400, "error", err)
			return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error())
		default:
			l.Error("signup_error", "status", 500, "error", err)
			return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Internal server error")
		}
	}

	l.Info("signup_success", "user_id", result.User.ID)
	return respond.Created(c, result)
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid body")
	}

	result, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_error", "status", 400, "error", err)
			return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error())
		case errors.Is(err, service.ErrCredentials):
			l.Warn("login_error", "status", 401)
			return respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Invalid credentials")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Internal server error")
		}
	}

	l.Info("login_success", "user_id", result.User.ID)
	return respond.OK(c, result)
}

func (h *UserHTTP) GetUserByID(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_by_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		l.Warn("get_user_error", "status", 400, "reason", "bad id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Invalid user ID format")
	}

	user, err := h.Svc.GetUser(ctx, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_user_not_found", "status", 404, "user_id", id)
			return respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "User not found")
		}
		l.Error("get_user_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Internal server error")
	}

	return respond.OK(c, user)
}

func (h *UserHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.me")

	userID, ok := middleware.UserID(c)
	if !ok {
		return respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required")
	}

	user, err := h.Svc.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "User not found")
		}
		l.Error("me_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Internal server error")
	}

	return respond.OK(c, user)
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.change_password")

	userID, ok := middleware.UserID(c)
	if !ok {
		return respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required")
	}

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("change_password_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid body")
	}

	if err := h.Svc.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error())
		case errors.Is(err, service.ErrCredentials):
			return respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Current password is incorrect")
		case errors.Is(err, service.ErrNotFound):
			return respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "User not found")
		default:
			l.Error("change_password_error", "status", 500, "error", err)
			return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, respond.Envelope{Success: true, Message: "Password changed successfully"})
}

func (h *UserHTTP) UserStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.users")

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		l.Error("user_stats_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Error fetching user statistics")
	}
	return respond.OK(c, stats)
}
