package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/model"
	"github.com/wallywood/poster-api/internal/repository"
)

// UserStore is the user repository surface the profile endpoints need.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Update(ctx context.Context, id uint64, firstname, lastname, email, role string, isActive bool) (model.User, error)
	Delete(ctx context.Context, id uint64) error
}

// UserHandler serves user profile reads (public projections) and the
// ADMIN-gated update/delete.
type UserHandler struct {
	Users UserStore
}

func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

type updateUserReq struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
}

// GetAll lists public user projections; hashes never leave the handler.
func (h *UserHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching users"})
	}
	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching user"})
	}
	return c.JSON(http.StatusOK, u.Public())
}

// Update rewrites a user's profile (ADMIN). Role strings other than ADMIN
// are stored as USER, mirroring the registration policy; an update never
// deals in RANDOM.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := model.RoleUser
	if strings.ToUpper(strings.TrimSpace(req.Role)) == model.RoleAdmin {
		role = model.RoleAdmin
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Update(ctx, id, req.Firstname, req.Lastname, req.Email, role, req.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error updating user"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated successfully", "user": u.Public()})
}

// Delete removes a user (ADMIN). The user's cartlines and ratings cascade
// away with the row.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error deleting user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted successfully"})
}
