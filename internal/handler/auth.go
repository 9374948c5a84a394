package handler

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/auth"
	"github.com/wallywood/poster-api/internal/config"
	"github.com/wallywood/poster-api/internal/model"
	"github.com/wallywood/poster-api/internal/repository"
)

// CredentialStore is the slice of the user repository the auth endpoints
// need. *repository.UserRepo satisfies it; tests substitute fakes.
type CredentialStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// AuthHandler bundles dependencies for the register and login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users CredentialStore
}

func NewAuthHandler(cfg config.Config, users CredentialStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"` // USER | ADMIN | RANDOM | absent
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginUser is the trimmed user part of the login response.
type loginUser struct {
	ID        uint64 `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// resolveRole applies the registration role policy: an absent role or the
// RANDOM sentinel gets USER or ADMIN with equal probability, ADMIN is taken
// literally, and every other string silently downgrades to USER. The coin
// flip is intentional, not a placeholder.
func resolveRole(requested string) string {
	role := strings.ToUpper(strings.TrimSpace(requested))
	switch role {
	case "", model.RoleRandom:
		if rand.IntN(2) == 0 {
			return model.RoleUser
		}
		return model.RoleAdmin
	case model.RoleAdmin:
		return model.RoleAdmin
	default:
		return model.RoleUser
	}
}

// Register creates a user. Firstname, email and password are required; the
// response carries the public projection of the stored record, never the
// hash.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var missing []string
	if strings.TrimSpace(req.Firstname) == "" {
		missing = append(missing, "firstname")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":    "missing required fields",
			"required": missing,
		})
	}

	hash, err := auth.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error creating user"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, model.User{
		Firstname:    strings.TrimSpace(req.Firstname),
		Lastname:     strings.TrimSpace(req.Lastname),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         resolveRole(req.Role),
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error creating user"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error creating user"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user created successfully",
		"user":    u.Public(),
	})
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password return identical payloads so the response cannot be used to
// probe which emails are registered. The active flag is checked before the
// password so a deactivated account is reported as such even with the right
// password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error logging in"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account is inactive"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := auth.NewSessionToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Role, h.Cfg.TokenTTLHrs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error logging in"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   token.Token,
		"user": loginUser{
			ID:        u.ID,
			Firstname: u.Firstname,
			Lastname:  u.Lastname,
			Email:     u.Email,
			Role:      u.Role,
		},
	})
}
