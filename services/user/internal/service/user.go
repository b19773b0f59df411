package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/satancra/bookstore/pkg/hash"
	"github.com/satancra/bookstore/pkg/logging"
	"github.com/satancra/bookstore/pkg/tokens"
	"github.com/satancra/bookstore/services/user/internal/models"
	"github.com/satancra/bookstore/services/user/internal/repo"
)

var (
	ErrValidation  = errors.New("validation")          // 400
	ErrConflict    = errors.New("already exists")      // 400, per original behavior
	ErrNotFound    = errors.New("not found")           // 404
	ErrCredentials = errors.New("invalid credentials") // 401
)

const accessTokenTTL = 24 * time.Hour

type UserService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *UserService) Signup(ctx context.Context, username, password, name, email string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "user.signup")

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}

	if exists, err := s.Repo.UsernameExists(ctx, username); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("username already exists: %w", ErrConflict)
	}
	if email != "" {
		if exists, err := s.Repo.EmailExists(ctx, email); err != nil {
			return nil, err
		} else if exists {
			return nil, fmt.Errorf("email already exists: %w", ErrConflict)
		}
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("signup_error", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
		Role:         "user",
		Status:       models.StatusActive,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	l.Info("signup_success", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "user.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}

	user, err := s.Repo.GetByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		l.Warn("login_failed", "reason", "unknown username")
		return nil, ErrCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.Status != models.StatusActive {
		l.Warn("login_failed", "reason", "inactive account")
		return nil, ErrCredentials
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "bad password")
		return nil, ErrCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user id required: %w", ErrValidation)
	}

	user, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, err
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "user.change_password", "user_id", userID)

	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("current and new password required: %w", ErrValidation)
	}

	user, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return err
	}

	if !hash.CheckPassword(user.PasswordHash, currentPassword) {
		l.Warn("change_password_failed", "reason", "bad current password")
		return ErrCredentials
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.SetPasswordHash(ctx, userID, pwHash); err != nil {
		return err
	}

	l.Info("change_password_success")
	return nil
}

type UserStats struct {
	TotalUsers        int64 `json:"total_users"`
	NewUsersThisMonth int64 `json:"new_users_this_month"`
}

func (s *UserService) Stats(ctx context.Context) (*UserStats, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	total, err := s.Repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	fresh, err := s.Repo.CountUsersSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	return &UserStats{TotalUsers: total, NewUsersThisMonth: fresh}, nil
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	return tokens.NewAccessToken(fmt.Sprint(user.ID), user.Role, accessTokenTTL, s.JWTSecret)
}
