package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Pumpcalc/internal/logger"
	"Pumpcalc/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users map[string]string
	ids   map[string]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]string{}, ids: map[string]int{}}
}

func (f *fakeRepo) CreateUser(_ context.Context, login, _, password string) (int, error) {
	if _, ok := f.users[login]; ok {
		return 0, errors.New("duplicate login")
	}
	f.users[login] = password
	f.ids[login] = len(f.ids) + 1
	return f.ids[login], nil
}

func (f *fakeRepo) GetBylogin(_ context.Context, login string) (int, string, error) {
	return f.ids[login], f.users[login], nil
}

func (f *fakeRepo) SaveCalculation(context.Context, int, string, float64, json.RawMessage) (int, error) {
	return 0, nil
}

func (f *fakeRepo) ListCalculations(context.Context, int, int) ([]repo.Calculation, error) {
	return nil, nil
}

func newEnv() *Authenv {
	return &Authenv{JWTkey: []byte("test-key"), Repo: newFakeRepo(), Log: logger.Nop()}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	env := newEnv()

	rec := post(env.RegisterHandler, `{"login":"alice","email":"a@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)

	rec = post(env.RegisterHandler, `{"login":"alice","email":"a@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = post(env.AuthHandler, `{"login":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]
	assert.Equal(t, cookieName, cookie.Name)

	id, login, err := env.parseToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, "alice", login)

	rec = post(env.AuthHandler, `{"login":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(env.AuthHandler, `{"login":"bob","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newEnv()
	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{"login":"a","email":"e","password":"123"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{"login":" ","email":"e","password":"123456"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{`).Code)
}

func TestAuthMiddleware(t *testing.T) {
	env := newEnv()
	var gotID int
	var gotLogin string
	protected := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserID(r.Context())
		gotLogin = UserLogin(r.Context())
	}))

	token, err := env.NewToken(42, "carol")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, gotID)
	assert.Equal(t, "carol", gotLogin)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := &Authenv{JWTkey: []byte("other-key")}
	forged, err := other.NewToken(1, "mallory")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
