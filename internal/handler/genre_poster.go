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

// GenrePosterStore manages genre-poster links.
type GenrePosterStore interface {
	List(ctx context.Context) ([]model.GenrePosterRel, error)
	Create(ctx context.Context, genreID, posterID uint64) error
	Delete(ctx context.Context, genreID, posterID uint64) error
}

// GenrePosterHandler serves the genre-poster relation endpoints: public
// listing, ADMIN link and unlink.
type GenrePosterHandler struct {
	Rels GenrePosterStore
}

func NewGenrePosterHandler(rels GenrePosterStore) *GenrePosterHandler {
	return &GenrePosterHandler{Rels: rels}
}

type genrePosterReq struct {
	GenreID  uint64 `json:"genreId"`
	PosterID uint64 `json:"posterId"`
}

func (h *GenrePosterHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rels, err := h.Rels.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching relations"})
	}
	return c.JSON(http.StatusOK, rels)
}

func (h *GenrePosterHandler) Create(c echo.Context) error {
	var req genrePosterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.GenreID == 0 || req.PosterID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "genreId and posterId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rels.Create(ctx, req.GenreID, req.PosterID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "relation already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error creating relation"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "relation created successfully",
		"relation": model.GenrePosterRel{GenreID: req.GenreID, PosterID: req.PosterID},
	})
}

func (h *GenrePosterHandler) Delete(c echo.Context) error {
	genreID, err := pathID(c, "genreId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	posterID, err := pathID(c, "posterId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid poster id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rels.Delete(ctx, genreID, posterID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "relation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error deleting relation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "relation deleted successfully"})
}
