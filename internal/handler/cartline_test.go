package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/model"
	"github.com/wallywood/poster-api/internal/repository"
)

// fakeCartStore is an in-memory CartStore keyed by (userID, posterID).
type fakeCartStore struct {
	lines map[[2]uint64]int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{lines: map[[2]uint64]int{}}
}

func (s *fakeCartStore) Upsert(_ context.Context, userID, posterID uint64, quantity int) (bool, error) {
	key := [2]uint64{userID, posterID}
	_, existed := s.lines[key]
	s.lines[key] += quantity
	return !existed, nil
}

func (s *fakeCartStore) Get(_ context.Context, userID, posterID uint64) (model.CartlineWithPoster, error) {
	qty, ok := s.lines[[2]uint64{userID, posterID}]
	if !ok {
		return model.CartlineWithPoster{}, repository.ErrNotFound
	}
	return model.CartlineWithPoster{
		Cartline: model.Cartline{UserID: userID, PosterID: posterID, Quantity: qty},
		Poster:   model.PosterSummary{ID: posterID, Name: "Vertigo", Price: 129.5},
	}, nil
}

func (s *fakeCartStore) UpdateQuantity(_ context.Context, userID, posterID uint64, quantity int) error {
	key := [2]uint64{userID, posterID}
	if _, ok := s.lines[key]; !ok {
		return repository.ErrNotFound
	}
	s.lines[key] = quantity
	return nil
}

func (s *fakeCartStore) Delete(_ context.Context, userID, posterID uint64) error {
	key := [2]uint64{userID, posterID}
	if _, ok := s.lines[key]; !ok {
		return repository.ErrNotFound
	}
	delete(s.lines, key)
	return nil
}

func (s *fakeCartStore) ClearByUser(_ context.Context, userID uint64) error {
	for key := range s.lines {
		if key[0] == userID {
			delete(s.lines, key)
		}
	}
	return nil
}

func (s *fakeCartStore) ListByUser(_ context.Context, userID uint64) ([]model.CartlineWithPoster, error) {
	var out []model.CartlineWithPoster
	for key, qty := range s.lines {
		if key[0] == userID {
			out = append(out, model.CartlineWithPoster{
				Cartline: model.Cartline{UserID: key[0], PosterID: key[1], Quantity: qty},
			})
		}
	}
	return out, nil
}

func (s *fakeCartStore) ListAll(_ context.Context) ([]model.CartlineWithRefs, error) {
	var out []model.CartlineWithRefs
	for key, qty := range s.lines {
		out = append(out, model.CartlineWithRefs{
			Cartline: model.Cartline{UserID: key[0], PosterID: key[1], Quantity: qty},
		})
	}
	return out, nil
}

func addReq(t *testing.T, h *CartlineHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, h.Add, http.MethodPost, "/api/cartlines", body)
}

func cartPathReq(t *testing.T, h echo.HandlerFunc, method, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestAddCreatesThenMerges(t *testing.T) {
	store := newFakeCartStore()
	h := NewCartlineHandler(store, nil)

	rec := addReq(t, h, `{"userId":1,"posterId":5,"quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first add: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = addReq(t, h, `{"userId":1,"posterId":5,"quantity":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("second add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message  string                   `json:"message"`
		Cartline model.CartlineWithPoster `json:"cartline"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Cartline.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5 (2+3 merged)", resp.Cartline.Quantity)
	}
	if len(store.lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(store.lines))
	}
}

func TestAddRequiresIdentifiers(t *testing.T) {
	h := NewCartlineHandler(newFakeCartStore(), nil)
	rec := addReq(t, h, `{"quantity":2}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateReplacesQuantity(t *testing.T) {
	store := newFakeCartStore()
	h := NewCartlineHandler(store, nil)
	store.lines[[2]uint64{1, 5}] = 4

	rec := cartPathReq(t, h.Update, http.MethodPut, `{"quantity":1}`,
		map[string]string{"userId": "1", "posterId": "5"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := store.lines[[2]uint64{1, 5}]; got != 1 {
		t.Fatalf("quantity = %d, want 1 (replaced, not accumulated)", got)
	}
}

func TestUpdateMissingLine(t *testing.T) {
	h := NewCartlineHandler(newFakeCartStore(), nil)
	rec := cartPathReq(t, h.Update, http.MethodPut, `{"quantity":1}`,
		map[string]string{"userId": "1", "posterId": "5"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cartline not found") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRemoveLine(t *testing.T) {
	store := newFakeCartStore()
	h := NewCartlineHandler(store, nil)
	store.lines[[2]uint64{1, 5}] = 2

	rec := cartPathReq(t, h.Remove, http.MethodDelete, "",
		map[string]string{"userId": "1", "posterId": "5"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(store.lines) != 0 {
		t.Fatalf("line not removed")
	}

	rec = cartPathReq(t, h.Remove, http.MethodDelete, "",
		map[string]string{"userId": "1", "posterId": "5"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second remove: expected 404, got %d", rec.Code)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := newFakeCartStore()
	h := NewCartlineHandler(store, nil)
	store.lines[[2]uint64{1, 5}] = 2
	store.lines[[2]uint64{1, 7}] = 1
	store.lines[[2]uint64{2, 5}] = 9 // another user's cart stays

	for i := 0; i < 2; i++ {
		rec := cartPathReq(t, h.Clear, http.MethodDelete, "",
			map[string]string{"userId": "1"})
		if rec.Code != http.StatusOK {
			t.Fatalf("clear #%d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if len(store.lines) != 1 {
		t.Fatalf("expected only the other user's line to remain, got %d", len(store.lines))
	}
	if _, ok := store.lines[[2]uint64{2, 5}]; !ok {
		t.Fatalf("cleared the wrong user's cart")
	}
}

func TestGetByUserInvalidID(t *testing.T) {
	h := NewCartlineHandler(newFakeCartStore(), nil)
	rec := cartPathReq(t, h.GetByUser, http.MethodGet, "",
		map[string]string{"userId": "abc"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
