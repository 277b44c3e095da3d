package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/sovannra/blogpress-core/internal/accounts"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAccountStore struct {
	byEmail map[string]*accounts.Account
}

func (f *fakeAccountStore) FindAccountByEmail(_ context.Context, email string) (*accounts.Account, error) {
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, mongo.ErrNoDocuments
}

func newFakeStore(t *testing.T, email, password string) *fakeAccountStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	require.NoError(t, err)
	return &fakeAccountStore{byEmail: map[string]*accounts.Account{
		email: {
			ID:       primitive.NewObjectID(),
			Email:    email,
			Password: string(hash),
		},
	}}
}

func newAuthRouter(store AccountStore) *gin.Engine {
	h := NewHandlers(store)
	r := gin.New()
	r.POST("/api/auth/login", h.LoginHandler)
	r.GET("/api/auth/session", h.SessionHandler)
	r.POST("/api/auth/logout", h.LogoutHandler)
	r.GET("/protected", RequireSession(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("account_email")})
	})
	return r
}

func doLogin(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	r := newAuthRouter(newFakeStore(t, "a@b.com", "secret"))

	w := doLogin(t, r, `{"email":"a@b.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@b.com", resp.User.Email)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	r := newAuthRouter(newFakeStore(t, "a@b.com", "secret"))

	w := doLogin(t, r, `{"email":"a@b.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	r := newAuthRouter(newFakeStore(t, "a@b.com", "secret"))

	w := doLogin(t, r, `{"email":"nobody@b.com","password":"secret"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginMissingFields(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	r := newAuthRouter(newFakeStore(t, "a@b.com", "secret"))

	w := doLogin(t, r, `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireSessionRedirectsWithoutToken(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	r := newAuthRouter(newFakeStore(t, "a@b.com", "secret"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireSessionRedirectsOnBadToken(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	r := newAuthRouter(newFakeStore(t, "a@b.com", "secret"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireSessionAcceptsCookieAndBearer(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	store := newFakeStore(t, "a@b.com", "secret")
	r := newAuthRouter(store)

	tok, err := GenerateToken(store.byEmail["a@b.com"])
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@b.com")

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionHandler(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	store := newFakeStore(t, "a@b.com", "secret")
	r := newAuthRouter(store)

	// no token: null user, still 200
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":null`)

	tok, err := GenerateToken(store.byEmail["a@b.com"])
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@b.com")
}

func TestLogoutClearsCookie(t *testing.T) {
	r := newAuthRouter(&fakeAccountStore{byEmail: map[string]*accounts.Account{}})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
