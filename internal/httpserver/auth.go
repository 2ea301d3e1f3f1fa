package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parusoft/shop-backend/internal/events"
	"github.com/parusoft/shop-backend/internal/logging"
	authmw "github.com/parusoft/shop-backend/internal/middleware/auth"
	"github.com/parusoft/shop-backend/internal/service"
	"github.com/parusoft/shop-backend/internal/transport"
	"github.com/parusoft/shop-backend/pkg/tokens"
)

type AuthHTTP struct {
	Svc    *service.AuthService
	Events *events.Producer
}

func (h *AuthHTTP) publish(c echo.Context, key string, event map[string]interface{}) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.PublishEvent(ctx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.register")

	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password, req.PhoneNumber)
	if err != nil {
		l.Warn("register_failed", "error", err)
		return respondErr(c, err)
	}

	h.publish(c, user.ID.String(), map[string]interface{}{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return respond(c, http.StatusCreated, "User registered successfully", user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}

	user, res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_failed", "error", err)
		return respondErr(c, err)
	}

	c.SetCookie(tokens.CreateCookie("accessToken", res.AccessToken, "/", res.AccessExp))
	c.SetCookie(tokens.CreateCookie("refreshToken", res.RefreshToken, "/", res.RefreshExp))

	h.publish(c, user.ID.String(), map[string]interface{}{
		"type":    "user_logged_in",
		"user_id": user.ID,
	})

	return respond(c, http.StatusOK, "Logged in successfully", echo.Map{
		"user": user,
		"tokens": transport.TokenPairResponse{
			AccessToken:  res.AccessToken,
			RefreshToken: res.RefreshToken,
		},
	})
}

func (h *AuthHTTP) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.refresh")

	raw := ""
	if cookie, err := c.Cookie("refreshToken"); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.Bind(&req); err == nil {
			raw = req.RefreshToken
		}
	}
	if raw == "" {
		return respondErr(c, service.ErrUnauthenticated)
	}

	_, res, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		l.Warn("refresh_failed", "error", err)
		return respondErr(c, err)
	}

	c.SetCookie(tokens.CreateCookie("accessToken", res.AccessToken, "/", res.AccessExp))
	c.SetCookie(tokens.CreateCookie("refreshToken", res.RefreshToken, "/", res.RefreshExp))

	return respond(c, http.StatusOK, "Access token refreshed", transport.TokenPairResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.logout")

	userID, ok := authmw.CurrentUserID(c)
	if !ok {
		return respondErr(c, service.ErrUnauthenticated)
	}

	if err := h.Svc.Logout(ctx, userID); err != nil {
		l.Error("logout_failed", "error", err)
		return respondErr(c, err)
	}

	c.SetCookie(tokens.DeleteCookie("accessToken", "/"))
	c.SetCookie(tokens.DeleteCookie("refreshToken", "/"))

	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	user := authmw.CurrentUser(c)
	if user == nil {
		return respondErr(c, service.ErrUnauthenticated)
	}
	return respond(c, http.StatusOK, "User retrieved successfully", user)
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.update_profile")

	userID, ok := authmw.CurrentUserID(c)
	if !ok {
		return respondErr(c, service.ErrUnauthenticated)
	}

	var req struct {
		Name        *string `json:"name"`
		Email       *string `json:"email"`
		PhoneNumber *string `json:"phoneNumber"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(ctx, userID, req.Name, req.Email, req.PhoneNumber)
	if err != nil {
		l.Warn("update_profile_failed", "error", err)
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, "Profile updated successfully", user)
}
