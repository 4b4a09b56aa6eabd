package di

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoArmGo/MovieCatalog/internal/auth"
	"github.com/GoArmGo/MovieCatalog/internal/cache"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/logger"
	"github.com/GoArmGo/MovieCatalog/internal/mail"
	"github.com/GoArmGo/MovieCatalog/internal/testutil"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

type api struct {
	t      *testing.T
	db     *gorm.DB
	tokens *auth.TokenManager
	router http.Handler
}

func newAPI(t *testing.T) *api {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := logger.Discard()
	tokens := auth.NewTokenManager("test-secret", "moviecatalog-test", time.Hour)

	router := NewRouter(Infra{
		DB:             db,
		SQLX:           testutil.SQLX(t, db),
		Cache:          cache.NewMemory(),
		Publisher:      mail.NewLogPublisher(mail.NewLogSender(log)),
		Tokens:         tokens,
		RequestTimeout: 5 * time.Second,
		CacheTTL:       time.Minute,
		Auth:           usecase.AuthConfig{ActivationTTL: time.Hour, ResetTTL: time.Hour},
	}, log)

	return &api{t: t, db: db, tokens: tokens, router: router}
}

// login inserts an active user and returns its bearer token.
func (a *api) login(name, role string) string {
	a.t.Helper()
	u := &domain.User{UserName: name, Email: name + "@example.com", Role: role, Active: true}
	require.NoError(a.t, a.db.Create(u).Error)
	token, err := a.tokens.Issue(u)
	require.NoError(a.t, err)
	return token.AccessToken
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestMovieLifecycle(t *testing.T) {
	a := newAPI(t)
	token := a.login("alice", domain.RoleUser)

	rec := a.do(http.MethodPost, "/movies", token, map[string]any{"title": "Dune", "ratingImdb": 8.1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "dune", created["title"])
	id := int(created["id"].(float64))

	rec = a.do(http.MethodGet, "/movies/"+strconv.Itoa(id), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dune", decode(t, rec)["title"])

	rec = a.do(http.MethodGet, "/movies/count", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "1", rec.Body.String())

	rec = a.do(http.MethodGet, "/movies/"+strconv.Itoa(id)+"/related", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"movies":null,"count":0}`, rec.Body.String())

	rec = a.do(http.MethodDelete, "/movies/"+strconv.Itoa(id), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodGet, "/movies/"+strconv.Itoa(id), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(http.MethodDelete, "/movies/"+strconv.Itoa(id), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMutationsRequireToken(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/movies", "", map[string]any{"title": "Dune"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodPost, "/movies", "not-a-jwt", map[string]any{"title": "Dune"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// an invalid token never blocks public reads
	rec = a.do(http.MethodGet, "/movies", "not-a-jwt", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListQueryValidation(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/movies?page=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/movies/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/movies", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"movies":[],"count":0}`, rec.Body.String())
}

func TestSignupConflict(t *testing.T) {
	a := newAPI(t)
	body := map[string]any{
		"userName": "bob",
		"email":    "bob@example.com",
		"password": "secret1",
	}

	rec := a.do(http.MethodPost, "/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, usecase.SignupMessage, decode(t, rec)["message"])

	rec = a.do(http.MethodPost, "/auth/signup", "", body)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User with this email or username already exists", decode(t, rec)["error"])

	// inactive accounts cannot log in
	rec = a.do(http.MethodPost, "/auth/login", "", map[string]any{"email": "bob@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewAndFavoriteRoutes(t *testing.T) {
	a := newAPI(t)
	token := a.login("carol", domain.RoleUser)

	rec := a.do(http.MethodPost, "/movies", token, map[string]any{"title": "Alien"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := strconv.Itoa(int(decode(t, rec)["id"].(float64)))

	rec = a.do(http.MethodPost, "/reviews/movie/"+id, token, map[string]any{"content": "great", "rating": 4.5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reviewID := strconv.Itoa(int(decode(t, rec)["id"].(float64)))

	rec = a.do(http.MethodPost, "/reviews/movie/"+id, token, map[string]any{"content": "again", "rating": 3})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do(http.MethodPost, "/reviews/movie/"+id+"/reviews/"+reviewID+"/upvote", token, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = a.do(http.MethodDelete, "/reviews/movie/"+id+"/reviews/"+reviewID+"/upvote", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = a.do(http.MethodDelete, "/reviews/movie/"+id+"/reviews/"+reviewID+"/upvote", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(http.MethodGet, "/reviews/movie/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])

	rec = a.do(http.MethodPost, "/users/me/favorites/genre/1", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPost, "/users/me/favorites/movie/"+id, token, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = a.do(http.MethodGet, "/users/me/favorites/movies", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])

	rec = a.do(http.MethodDelete, "/users/me/favorites/movie/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUserRoutes(t *testing.T) {
	a := newAPI(t)
	alice := a.login("alice", domain.RoleUser)
	bob := a.login("bob", domain.RoleUser)

	rec := a.do(http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodGet, "/users/me", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode(t, rec)["userName"])

	rec = a.do(http.MethodPost, "/users/2/follow", alice, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, "/users/me/follow-requests", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])

	rec = a.do(http.MethodPost, "/users/me/follow-requests/1/accept", bob, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/users/2/followers", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])
}

func TestForumAdminGuard(t *testing.T) {
	a := newAPI(t)
	user := a.login("dave", domain.RoleUser)
	admin := a.login("root", domain.RoleAdmin)

	rec := a.do(http.MethodPost, "/forum/categories", user, map[string]any{"name": "general"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodPost, "/forum/categories", admin, map[string]any{"name": "general"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, "/forum/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "general")
}
