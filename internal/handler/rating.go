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

// RatingStore is the rating repository surface the handlers need.
type RatingStore interface {
	List(ctx context.Context) ([]model.RatingWithRefs, error)
	GetByID(ctx context.Context, id uint64) (model.RatingWithRefs, error)
	Create(ctx context.Context, userID, posterID uint64, numStars int) (model.RatingWithRefs, error)
	UpdateStars(ctx context.Context, id uint64, numStars int) (model.RatingWithRefs, error)
	Delete(ctx context.Context, id uint64) error
}

// RatingHandler serves star ratings: public reads, authenticated writes,
// ADMIN delete.
type RatingHandler struct {
	Ratings RatingStore
}

func NewRatingHandler(ratings RatingStore) *RatingHandler {
	return &RatingHandler{Ratings: ratings}
}

type createRatingReq struct {
	UserID   uint64 `json:"userId"`
	PosterID uint64 `json:"posterId"`
	NumStars int    `json:"numStars"`
}

type updateRatingReq struct {
	NumStars int `json:"numStars"`
}

func (h *RatingHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ratings, err := h.Ratings.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching ratings"})
	}
	return c.JSON(http.StatusOK, ratings)
}

func (h *RatingHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rating id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, err := h.Ratings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rating not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching rating"})
	}
	return c.JSON(http.StatusOK, rt)
}

// Create stores a star rating. Stars outside 1..5 are rejected.
func (h *RatingHandler) Create(c echo.Context) error {
	var req createRatingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.NumStars < 1 || req.NumStars > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	if req.UserID == 0 || req.PosterID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId and posterId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, err := h.Ratings.Create(ctx, req.UserID, req.PosterID, req.NumStars)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error creating rating"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "rating created successfully", "rating": rt})
}

func (h *RatingHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rating id"})
	}
	var req updateRatingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.NumStars < 1 || req.NumStars > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, err := h.Ratings.UpdateStars(ctx, id, req.NumStars)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rating not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error updating rating"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rating updated successfully", "rating": rt})
}

func (h *RatingHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rating id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Ratings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rating not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error deleting rating"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rating deleted successfully"})
}
