package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parusoft/shop-backend/internal/logging"
	"github.com/parusoft/shop-backend/internal/models"
	"github.com/parusoft/shop-backend/internal/repo"
	"github.com/parusoft/shop-backend/internal/transport"
	"github.com/parusoft/shop-backend/pkg/hash"
	"github.com/parusoft/shop-backend/pkg/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func (s *AuthService) Register(ctx context.Context, name, email, password, phone string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		PhoneNumber:  strings.TrimSpace(phone),
	}
	created, err := s.Repo.CreateUserIfNotExists(ctx, &user)
	if err != nil {
		l.Error("register_error", "error", err)
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("user with this email exists: %w", ErrEmailTaken)
	}

	l.Info("user_registered", "user_id", user.ID)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *transport.LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("invalid email or password: %w", ErrInvalidCredentials)
		}
		l.Error("login_error", "error", err)
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, fmt.Errorf("invalid email or password: %w", ErrInvalidCredentials)
	}

	res, err := s.issueTokens(ctx, user)
	if err != nil {
		l.Error("login_error", "error", err)
		return nil, nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return user, res, nil
}

// Refresh rotates the token pair. The stored digest is overwritten, so the
// previous refresh token stops working immediately.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*models.User, *transport.LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(rawRefresh, s.RefreshSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthenticated)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthenticated)
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthenticated)
		}
		l.Error("refresh_error", "error", err)
		return nil, nil, err
	}

	if user.RefreshToken == "" || user.RefreshToken != tokens.Sha256Hex(rawRefresh) {
		return nil, nil, fmt.Errorf("refresh token revoked: %w", ErrUnauthenticated)
	}

	res, err := s.issueTokens(ctx, user)
	if err != nil {
		l.Error("refresh_error", "error", err)
		return nil, nil, err
	}

	l.Info("tokens_rotated", "user_id", user.ID)
	return user, res, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.SetRefreshToken(ctx, userID, "")
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email, phone *string) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", ErrValidation)
		}
		user.Name = strings.TrimSpace(*name)
	}
	if email != nil {
		next := strings.ToLower(strings.TrimSpace(*email))
		if next == "" {
			return nil, fmt.Errorf("email cannot be empty: %w", ErrValidation)
		}
		if next != user.Email {
			if _, err := s.Repo.GetUserByEmail(ctx, next); err == nil {
				return nil, fmt.Errorf("user with this email exists: %w", ErrEmailTaken)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = next
		}
	}
	if phone != nil {
		user.PhoneNumber = strings.TrimSpace(*phone)
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*transport.LoginResult, error) {
	accessExp := time.Now().Add(s.AccessTTL)
	accessToken, err := tokens.SignAccessToken(user.ID.String(), user.Email, user.Name, s.AccessSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(s.RefreshTTL)
	refreshToken, err := tokens.SignRefreshToken(user.ID.String(), s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SetRefreshToken(ctx, user.ID, tokens.Sha256Hex(refreshToken)); err != nil {
		return nil, err
	}

	return &transport.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}
