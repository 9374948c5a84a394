package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/wallywood/poster-api/internal/auth"
	"github.com/wallywood/poster-api/internal/config"
	"github.com/wallywood/poster-api/internal/model"
	"github.com/wallywood/poster-api/internal/repository"
)

// fakeUserStore is an in-memory CredentialStore.
type fakeUserStore struct {
	nextID uint64
	byID   map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, byID: map[uint64]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, u model.User) (uint64, error) {
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return 0, repository.ErrEmailExists
		}
	}
	u.ID = s.nextID
	s.nextID++
	s.byID[u.ID] = u
	return u.ID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:   "handler-test-secret",
		TokenTTLHrs: 24,
		BcryptCost:  bcrypt.MinCost,
	}
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestRegisterCreatesUser(t *testing.T) {
	store := newFakeUserStore()
	h := NewAuthHandler(testConfig(), store)

	rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register",
		`{"firstname":"Jane","lastname":"Doe","email":"Jane@Example.com","password":"s3cret","role":"USER"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string           `json:"message"`
		User    model.PublicUser `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", resp.User.Email)
	}
	if !resp.User.IsActive {
		t.Fatalf("new user should be active")
	}
	if strings.Contains(rec.Body.String(), "s3cret") {
		t.Fatalf("response leaks plaintext password")
	}

	stored, err := store.GetByID(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.PasswordHash == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}
	if !auth.VerifyPassword(stored.PasswordHash, "s3cret") {
		t.Fatalf("stored hash does not verify")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())

	rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register",
		`{"lastname":"Doe"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Error    string   `json:"error"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"firstname", "email", "password"}
	if len(resp.Required) != len(want) {
		t.Fatalf("required = %v, want %v", resp.Required, want)
	}
	for i, f := range want {
		if resp.Required[i] != f {
			t.Fatalf("required = %v, want %v", resp.Required, want)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	h := NewAuthHandler(testConfig(), store)

	body := `{"firstname":"Jane","email":"jane@example.com","password":"pw","role":"USER"}`
	if rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register", body); rec.Code != http.StatusCreated {
		t.Fatalf("first register: %d", rec.Code)
	}
	rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "user already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRegisterRolePolicy(t *testing.T) {
	cases := []struct {
		requested string
		want      string
	}{
		{"ADMIN", "ADMIN"},
		{"admin", "ADMIN"},
		{"USER", "USER"},
		{"MANAGER", "USER"}, // unknown strings downgrade silently
		{"root", "USER"},
	}
	for _, tc := range cases {
		store := newFakeUserStore()
		h := NewAuthHandler(testConfig(), store)
		rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register",
			`{"firstname":"A","email":"a@example.com","password":"pw","role":"`+tc.requested+`"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("role %q: expected 201, got %d", tc.requested, rec.Code)
		}
		u, _ := store.GetByID(context.Background(), 1)
		if u.Role != tc.want {
			t.Fatalf("role %q: stored %q, want %q", tc.requested, u.Role, tc.want)
		}
	}
}

func TestRegisterRandomRoleIsOneOfTwo(t *testing.T) {
	for _, requested := range []string{"", "RANDOM"} {
		store := newFakeUserStore()
		h := NewAuthHandler(testConfig(), store)
		body := `{"firstname":"A","email":"a@example.com","password":"pw"`
		if requested != "" {
			body += `,"role":"` + requested + `"`
		}
		body += `}`
		rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("role %q: expected 201, got %d", requested, rec.Code)
		}
		u, _ := store.GetByID(context.Background(), 1)
		if u.Role != model.RoleUser && u.Role != model.RoleAdmin {
			t.Fatalf("role %q: stored %q, want USER or ADMIN", requested, u.Role)
		}
	}
}

func seedUser(t *testing.T, store *fakeUserStore, email, password, role string, active bool) {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := store.Create(context.Background(), model.User{
		Firstname:    "Seed",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "jane@example.com", "s3cret", "ADMIN", true)
	cfg := testConfig()
	h := NewAuthHandler(cfg, store)

	rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"s3cret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("no token in response")
	}
	p, err := auth.ParseSessionToken(cfg.JWTSecret, resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if p.Role != "ADMIN" || p.Role != resp.User.Role {
		t.Fatalf("token role %q, response role %q", p.Role, resp.User.Role)
	}
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	// An unknown email and a wrong password must produce byte-identical
	// responses so login cannot be used to enumerate accounts.
	store := newFakeUserStore()
	seedUser(t, store, "jane@example.com", "s3cret", "USER", true)
	h := NewAuthHandler(testConfig(), store)

	unknown := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@example.com","password":"s3cret"}`)
	wrongPw := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"wrong"}`)

	if unknown.Code != http.StatusUnauthorized || wrongPw.Code != http.StatusUnauthorized {
		t.Fatalf("codes = %d, %d; want 401, 401", unknown.Code, wrongPw.Code)
	}
	if unknown.Body.String() != wrongPw.Body.String() {
		t.Fatalf("failure bodies differ:\n%s\n%s", unknown.Body.String(), wrongPw.Body.String())
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	// Inactive wins over credential checks: even the correct password gets
	// the inactive message, and so does a wrong one.
	store := newFakeUserStore()
	seedUser(t, store, "jane@example.com", "s3cret", "USER", false)
	h := NewAuthHandler(testConfig(), store)

	for _, pw := range []string{"s3cret", "wrong"} {
		rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
			`{"email":"jane@example.com","password":"`+pw+`"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("pw %q: expected 401, got %d", pw, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "account is inactive") {
			t.Fatalf("pw %q: unexpected body: %s", pw, rec.Body.String())
		}
	}
}
