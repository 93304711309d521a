package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	"github.com/mrlokans/bookreviews/internal/notify"
	"github.com/mrlokans/bookreviews/internal/requestid"
)

func ptr[T any](v T) *T {
	return &v
}

type mockDispatcher struct {
	mu         sync.Mutex
	err        error
	emails     []notify.Email
	requestIDs []string
}

func (m *mockDispatcher) Dispatch(ctx context.Context, email notify.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails = append(m.emails, email)
	m.requestIDs = append(m.requestIDs, requestid.FromContext(ctx))
	return m.err
}

type testServer struct {
	router     *gin.Engine
	db         *database.Database
	dispatcher *mockDispatcher
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.NewQuietDatabase(filepath.Join(t.TempDir(), "reviews.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dispatcher := &mockDispatcher{}
	router := NewRouter(RouterConfig{
		Database:   db,
		Books:      books.NewRepository(db.DB),
		Reviews:    reviews.NewRepository(db.DB),
		Dispatcher: dispatcher,
		Confirmation: ConfirmationConfig{
			To:      "owner@example.com",
			Subject: "Review confirmed",
		},
		Version: "test",
	})

	return &testServer{router: router, db: db, dispatcher: dispatcher}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRouter_Ping(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, "GET", "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	s := setupTestServer(t)

	s.do(t, "GET", "/books/", nil)
	w := s.do(t, "GET", "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookreviews_http_requests_total")
	assert.Contains(t, w.Body.String(), `path="/books/"`)
}

func TestRouter_TrailingSlashRedirect(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, "GET", "/books", nil)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/books/", w.Header().Get("Location"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, "GET", "/authors/", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, "GET", "/ping", nil)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get(requestid.Header))
}

func TestRouter_RateLimit(t *testing.T) {
	router := NewRouter(RouterConfig{RateLimitRPS: 1, RateLimitBurst: 2})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
