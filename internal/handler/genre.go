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

// GenreStore is the genre repository surface the handlers need.
type GenreStore interface {
	List(ctx context.Context) ([]model.GenreWithPosters, error)
	GetByID(ctx context.Context, id uint64) (model.GenreWithPosters, error)
	Create(ctx context.Context, g model.Genre) (model.Genre, error)
	Update(ctx context.Context, g model.Genre) (model.Genre, error)
	Delete(ctx context.Context, id uint64) error
}

// GenreHandler serves genre reads (public) and writes (ADMIN).
type GenreHandler struct {
	Genres GenreStore
}

func NewGenreHandler(genres GenreStore) *GenreHandler {
	return &GenreHandler{Genres: genres}
}

type genreReq struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (h *GenreHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	genres, err := h.Genres.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching genres"})
	}
	return c.JSON(http.StatusOK, genres)
}

func (h *GenreHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Genres.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching genre"})
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GenreHandler) Create(c echo.Context) error {
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.Slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and slug required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Genres.Create(ctx, model.Genre{Title: req.Title, Slug: req.Slug})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "genre already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error creating genre"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "genre created successfully", "genre": g})
}

func (h *GenreHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Genres.Update(ctx, model.Genre{ID: id, Title: req.Title, Slug: req.Slug})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error updating genre"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "genre updated successfully", "genre": g})
}

func (h *GenreHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Genres.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error deleting genre"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "genre deleted successfully"})
}
