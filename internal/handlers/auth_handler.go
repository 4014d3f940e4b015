package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hvpham-yorku/group2-fitiva/internal/metrics"
	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/services"
	"github.com/hvpham-yorku/group2-fitiva/internal/session"
	"github.com/sirupsen/logrus"
)

type accountService interface {
	Signup(ctx context.Context, input services.SignupInput) (*models.Account, error)
	Authenticate(ctx context.Context, input services.LoginInput) (*models.User, error)
	GetAccount(ctx context.Context, user *models.User) (*models.Account, error)
}

type sessionManager interface {
	Create(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, sessionID string) error
	TTL() time.Duration
}

type AuthHandler struct {
	service       accountService
	sessions      sessionManager
	secureCookies bool
	log           logrus.FieldLogger
}

func NewAuthHandler(service accountService, sessions sessionManager, secureCookies bool, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		service:       service,
		sessions:      sessions,
		secureCookies: secureCookies,
		log:           log,
	}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := parseBody(c, &req); err != nil {
		return respondDetail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	account, err := h.service.Signup(c.Context(), req)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	metrics.RecordSignup(account.IsTrainer)
	return c.Status(fiber.StatusCreated).JSON(account)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := parseBody(c, &req); err != nil {
		return respondDetail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	user, err := h.service.Authenticate(c.Context(), req)
	switch {
	case errors.Is(err, services.ErrMissingCredentials):
		metrics.RecordLogin("missing")
		return respondDetail(c, fiber.StatusUnauthorized, "Login and password are required")
	case errors.Is(err, services.ErrInvalidCredentials):
		metrics.RecordLogin("invalid")
		return respondDetail(c, fiber.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	if previous := c.Cookies(session.CookieName); previous != "" {
		if err := h.sessions.Delete(c.Context(), previous); err != nil {
			h.log.WithError(err).WithField("user_id", user.ID).Warn("failed to drop previous session")
		}
	}

	sessionID, err := h.sessions.Create(c.Context(), user.ID)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}
	h.setSessionCookie(c, sessionID, h.sessions.TTL())

	account, err := h.service.GetAccount(c.Context(), user)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	metrics.RecordLogin("success")
	h.log.WithField("user_id", user.ID).Info("user logged in")
	return c.JSON(fiber.Map{"ok": true, "user": account})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sessionID, ok := c.Locals("session_id").(string); ok && sessionID != "" {
		if err := h.sessions.Delete(c.Context(), sessionID); err != nil {
			return mapServiceError(c, h.log, err, msgTrainersOnly)
		}
	}
	h.setSessionCookie(c, "", -time.Hour)

	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	account, err := h.service.GetAccount(c.Context(), user)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	return c.JSON(fiber.Map{"authenticated": true, "user": account})
}

// CSRF returns the token issued by the csrf middleware mounted on the route.
func (h *AuthHandler) CSRF(c *fiber.Ctx) error {
	token, _ := c.Locals("csrf").(string)
	return c.JSON(fiber.Map{"csrfToken": token})
}

// setSessionCookie writes the session cookie; a non-positive ttl expires it.
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, value string, ttl time.Duration) {
	cookie := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = time.Now().Add(ttl)
	} else {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}
	c.Cookie(cookie)
}
