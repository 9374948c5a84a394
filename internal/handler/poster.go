package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/model"
	"github.com/wallywood/poster-api/internal/repository"
)

// PosterStore is the poster repository surface the handlers need.
type PosterStore interface {
	List(ctx context.Context) ([]model.PosterWithDetails, error)
	GetByID(ctx context.Context, id uint64) (model.PosterWithDetails, error)
	Create(ctx context.Context, p model.Poster) (model.Poster, error)
	Update(ctx context.Context, p model.Poster) (model.Poster, error)
	Delete(ctx context.Context, id uint64) error
}

// PosterHandler serves the public catalog reads and the ADMIN-gated writes.
type PosterHandler struct {
	Posters PosterStore
}

func NewPosterHandler(posters PosterStore) *PosterHandler {
	return &PosterHandler{Posters: posters}
}

type posterReq struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// GetAll lists every poster with genres and ratings attached.
func (h *PosterHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	posters, err := h.Posters.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching posters"})
	}
	return c.JSON(http.StatusOK, posters)
}

// GetByID returns one poster with its details.
func (h *PosterHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid poster id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Posters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "poster not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching poster"})
	}
	return c.JSON(http.StatusOK, p)
}

// Create inserts a poster (ADMIN).
func (h *PosterHandler) Create(c echo.Context) error {
	var req posterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and slug required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Posters.Create(ctx, model.Poster{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		Width:       req.Width,
		Height:      req.Height,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "poster already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error creating poster"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "poster created successfully", "poster": p})
}

// Update rewrites a poster (ADMIN).
func (h *PosterHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid poster id"})
	}
	var req posterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Posters.Update(ctx, model.Poster{
		ID:          id,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		Width:       req.Width,
		Height:      req.Height,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "poster not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error updating poster"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "poster updated successfully", "poster": p})
}

// Delete removes a poster (ADMIN).
func (h *PosterHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid poster id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Posters.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "poster not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error deleting poster"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "poster deleted successfully"})
}
