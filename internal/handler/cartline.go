package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/model"
	"github.com/wallywood/poster-api/internal/queue"
	"github.com/wallywood/poster-api/internal/repository"
)

// CartStore is the cart repository surface the handlers need.
// *repository.CartlineRepo satisfies it. Upsert must be atomic: two
// concurrent adds for the same (user, poster) pair may not lose either
// quantity.
type CartStore interface {
	Upsert(ctx context.Context, userID, posterID uint64, quantity int) (created bool, err error)
	Get(ctx context.Context, userID, posterID uint64) (model.CartlineWithPoster, error)
	UpdateQuantity(ctx context.Context, userID, posterID uint64, quantity int) error
	Delete(ctx context.Context, userID, posterID uint64) error
	ClearByUser(ctx context.Context, userID uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]model.CartlineWithPoster, error)
	ListAll(ctx context.Context) ([]model.CartlineWithRefs, error)
}

// ActivityPublisher emits cart activity events to the broker. Publishing is
// best-effort; cart responses never wait on or fail with the broker.
type ActivityPublisher interface {
	Publish(ctx context.Context, ev queue.CartActivityEvent) error
}

// CartlineHandler bundles dependencies for the cart endpoints.
type CartlineHandler struct {
	Cart   CartStore
	Events ActivityPublisher // optional; nil disables event publishing
}

func NewCartlineHandler(cart CartStore, events ActivityPublisher) *CartlineHandler {
	return &CartlineHandler{Cart: cart, Events: events}
}

type addToCartReq struct {
	UserID   uint64 `json:"userId"`
	PosterID uint64 `json:"posterId"`
	Quantity int    `json:"quantity"`
}

type updateCartlineReq struct {
	Quantity int `json:"quantity"`
}

// GetAll returns every cartline in the system with user and poster
// summaries. The route is gated to ADMIN.
func (h *CartlineHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lines, err := h.Cart.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching cart items"})
	}
	return c.JSON(http.StatusOK, lines)
}

// GetByUser returns one user's cart with poster summaries including stock.
func (h *CartlineHandler) GetByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lines, err := h.Cart.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching user cart"})
	}
	return c.JSON(http.StatusOK, lines)
}

// Add puts a poster in a user's cart. A first add for the (user, poster)
// pair creates the line (201); a repeated add accumulates into the existing
// quantity (200). Quantity is passed through as given; zero and negative
// values are accepted.
func (h *CartlineHandler) Add(c echo.Context) error {
	var req addToCartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 || req.PosterID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId and posterId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Cart.Upsert(ctx, req.UserID, req.PosterID, req.Quantity)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error adding to cart"})
	}
	line, err := h.Cart.Get(ctx, req.UserID, req.PosterID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error adding to cart"})
	}

	h.publish(queue.CartActivityEvent{
		Action:     queue.CartActionAdd,
		UserID:     line.UserID,
		PosterID:   line.PosterID,
		PosterName: line.Poster.Name,
		Quantity:   line.Quantity,
		Price:      line.Poster.Price,
	})

	if created {
		return c.JSON(http.StatusCreated, echo.Map{"message": "added to cart", "cartline": line})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart updated", "cartline": line})
}

// Update replaces (does not accumulate) the quantity of an existing line.
func (h *CartlineHandler) Update(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	posterID, err := pathID(c, "posterId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid poster id"})
	}
	var req updateCartlineReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cart.UpdateQuantity(ctx, userID, posterID, req.Quantity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cartline not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error updating cart"})
	}
	line, err := h.Cart.Get(ctx, userID, posterID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error updating cart"})
	}

	h.publish(queue.CartActivityEvent{
		Action:     queue.CartActionUpdate,
		UserID:     line.UserID,
		PosterID:   line.PosterID,
		PosterName: line.Poster.Name,
		Quantity:   line.Quantity,
		Price:      line.Poster.Price,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "cart updated", "cartline": line})
}

// Remove deletes a single line. A missing pair is reported as 404, not
// swallowed.
func (h *CartlineHandler) Remove(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	posterID, err := pathID(c, "posterId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid poster id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cart.Delete(ctx, userID, posterID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cartline not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error removing from cart"})
	}

	h.publish(queue.CartActivityEvent{
		Action:   queue.CartActionRemove,
		UserID:   userID,
		PosterID: posterID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "removed from cart"})
}

// Clear empties a user's cart. Clearing an already-empty cart succeeds.
func (h *CartlineHandler) Clear(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cart.ClearByUser(ctx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error clearing cart"})
	}

	h.publish(queue.CartActivityEvent{
		Action: queue.CartActionClear,
		UserID: userID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}

// publish fires a cart activity event in the background. The request never
// waits on the broker.
func (h *CartlineHandler) publish(ev queue.CartActivityEvent) {
	if h.Events == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Events.Publish(ctx, ev)
	}()
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
