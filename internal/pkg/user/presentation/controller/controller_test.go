package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	cacheport "go-parley/internal/infrastructure/cache/port"
	"go-parley/internal/pkg/auth"
	user "go-parley/internal/pkg/user/application/domain"
	"go-parley/internal/pkg/user/application/usecase"

	"github.com/gin-gonic/gin"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]user.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("u%d", f.nextID)
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) ListExcluding(ctx context.Context, userID string, excludeIDs []string) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	excluded := map[string]bool{userID: true}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []user.User
	for _, u := range f.users {
		if !excluded[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Del(ctx context.Context, keys ...string) (int64, error) { return 0, nil }
func (c *memoryCache) Ping(ctx context.Context) error                         { return nil }
func (c *memoryCache) Close() error                                           { return nil }

// newTestAPI wires the account endpoints the way the router does, on fakes.
func newTestAPI(t *testing.T) (*gin.Engine, *fakeUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newFakeUserRepo()
	hasher := auth.NewPasswordHasher()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	mw := auth.NewMiddleware(tokens, &memoryCache{data: make(map[string]string)})

	r := gin.New()
	r.POST("/auth/register", NewRegisterController(usecase.NewRegisterUseCase(users, hasher), tokens).Handle())
	r.POST("/auth/login", NewLoginController(usecase.NewLoginUseCase(users, hasher), tokens).Handle())

	authed := r.Group("")
	authed.Use(mw.Handler())
	authed.POST("/auth/logout", NewLogoutController(mw).Handle())
	authed.GET("/auth/user", NewGetAuthUserController(usecase.NewGetProfileUseCase(users)).Handle())
	authed.GET("/profile", NewShowProfileController(usecase.NewGetProfileUseCase(users)).Handle())
	authed.PUT("/profile", NewUpdateProfileController(usecase.NewUpdateProfileUseCase(users)).Handle())

	return r, users
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _ := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", `{"name":"Ana","email":"Ana@Example.com","password":"hunter2hunter2"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", w.Code, w.Body)
	}
	var registered struct {
		User  user.Public `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &registered); err != nil {
		t.Fatal(err)
	}
	if registered.Token == "" {
		t.Error("register must return a token")
	}
	if registered.User.Email != "ana@example.com" {
		t.Errorf("email = %q, want lowercased", registered.User.Email)
	}

	// Login works with the lowercased email.
	w = doJSON(t, r, http.MethodPost, "/auth/login", "", `{"email":"ana@example.com","password":"hunter2hunter2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body)
	}

	// Token works against protected endpoints.
	w = doJSON(t, r, http.MethodGet, "/auth/user", registered.Token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("auth/user status = %d: %s", w.Code, w.Body)
	}
}

func TestRegisterRejections(t *testing.T) {
	r, _ := newTestAPI(t)

	if w := doJSON(t, r, http.MethodPost, "/auth/register", "", `{"name":"Ana","email":"ana@example.com","password":"short"}`); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("short password status = %d, want 422", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/auth/register", "", `{"name":"Ana","email":"not-an-email","password":"hunter2hunter2"}`); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad email status = %d, want 422", w.Code)
	}

	ok := `{"name":"Ana","email":"ana@example.com","password":"hunter2hunter2"}`
	if w := doJSON(t, r, http.MethodPost, "/auth/register", "", ok); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/auth/register", "", ok); w.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", w.Code)
	}
}

func TestLoginRejections(t *testing.T) {
	r, _ := newTestAPI(t)
	doJSON(t, r, http.MethodPost, "/auth/register", "", `{"name":"Ana","email":"ana@example.com","password":"hunter2hunter2"}`)

	// Unknown email and wrong password answer identically.
	for _, body := range []string{
		`{"email":"ghost@example.com","password":"hunter2hunter2"}`,
		`{"email":"ana@example.com","password":"wrong-password"}`,
	} {
		if w := doJSON(t, r, http.MethodPost, "/auth/login", "", body); w.Code != http.StatusUnauthorized {
			t.Errorf("login %s status = %d, want 401", body, w.Code)
		}
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", `{"name":"Ana","email":"ana@example.com","password":"hunter2hunter2"}`)
	var registered struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &registered); err != nil {
		t.Fatal(err)
	}

	if w := doJSON(t, r, http.MethodPost, "/auth/logout", registered.Token, ""); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d: %s", w.Code, w.Body)
	}
	if w := doJSON(t, r, http.MethodGet, "/auth/user", registered.Token, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d, want 401", w.Code)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	r, _ := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", `{"name":"Ana","email":"ana@example.com","password":"hunter2hunter2"}`)
	var registered struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &registered); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, http.MethodPut, "/profile", registered.Token, `{"avatar_path":"uploads/ana.png"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", w.Code, w.Body)
	}
	var updated user.Public
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Ana" {
		t.Errorf("name = %q, want unchanged Ana", updated.Name)
	}
	if updated.AvatarPath == nil || *updated.AvatarPath != "uploads/ana.png" {
		t.Errorf("avatar = %v", updated.AvatarPath)
	}
}
