package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/japanesestudent/kanji-service/internal/auth/middleware"
	"github.com/japanesestudent/kanji-service/internal/auth/service"
	"github.com/japanesestudent/kanji-service/internal/models"
	"github.com/japanesestudent/kanji-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryStore is an in-memory implementation of services.LearnedKanjiRepository
type memoryStore struct {
	mu      sync.Mutex
	records map[string][]string
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string][]string{}}
}

func (s *memoryStore) FindByUserAndKanji(ctx context.Context, userID, kanji string) (*models.LearnedKanji, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, false, s.err
	}
	if slices.Contains(s.records[userID], kanji) {
		return &models.LearnedKanji{UserID: userID, Kanji: kanji}, true, nil
	}
	return nil, false, nil
}

func (s *memoryStore) Create(ctx context.Context, userID, kanji string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if slices.Contains(s.records[userID], kanji) {
		return false, nil
	}
	s.records[userID] = append(s.records[userID], kanji)
	return true, nil
}

func (s *memoryStore) DeleteByUserAndKanji(ctx context.Context, userID, kanji string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records[userID] = slices.DeleteFunc(s.records[userID], func(k string) bool { return k == kanji })
	return nil
}

func (s *memoryStore) ListByUser(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return slices.Clone(s.records[userID]), nil
}

func (s *memoryStore) snapshot() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]string, len(s.records))
	for k, v := range s.records {
		out[k] = slices.Clone(v)
	}
	return out
}

const handlerTestSecret = "handler-test-secret"

// setupLearnedKanjiRouter wires the learned kanji routes with the real service and session middleware
func setupLearnedKanjiRouter(t *testing.T) (http.Handler, *memoryStore, *service.TokenGenerator) {
	t.Helper()
	logger := zap.NewNop()
	store := newMemoryStore()
	tokens := service.NewTokenGenerator(handlerTestSecret, time.Hour)

	handler := NewLearnedKanjiHandler(services.NewLearnedKanjiService(store, logger), logger)
	r := chi.NewRouter()
	handler.RegisterRoutes(r, middleware.RequireSession(tokens))

	return r, store, tokens
}

type apiClient struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newAPIClient(t *testing.T, router http.Handler, tokens *service.TokenGenerator, userID string) *apiClient {
	t.Helper()
	c := &apiClient{t: t, router: router}
	if userID != "" {
		token, err := tokens.GenerateAccessToken(userID)
		require.NoError(t, err)
		c.token = token
	}
	return c
}

func (c *apiClient) do(method, target, body string) (int, string) {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w.Code, strings.TrimSpace(w.Body.String())
}

func (c *apiClient) mark(kanji string) (int, string) {
	return c.do(http.MethodPost, "/api/learned-kanji", `{"kanji":"`+kanji+`"}`)
}

func (c *apiClient) unmark(kanji string) (int, string) {
	return c.do(http.MethodDelete, "/api/learned-kanji", `{"kanji":"`+kanji+`"}`)
}

func (c *apiClient) isLearned(kanji string) bool {
	c.t.Helper()
	status, body := c.do(http.MethodGet, "/api/learned-kanji?kanji="+url.QueryEscape(kanji), "")
	require.Equal(c.t, http.StatusOK, status)
	var resp models.LearnedStatus
	require.NoError(c.t, json.Unmarshal([]byte(body), &resp))
	return resp.Learned
}

func (c *apiClient) list() models.LearnedKanjiList {
	c.t.Helper()
	status, body := c.do(http.MethodGet, "/api/learned-kanji", "")
	require.Equal(c.t, http.StatusOK, status)
	var resp models.LearnedKanjiList
	require.NoError(c.t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func TestLearnedKanjiHandler_MarkUnmarkScenario(t *testing.T) {
	router, store, tokens := setupLearnedKanjiRouter(t)
	userA := newAPIClient(t, router, tokens, "user-a")

	status, body := userA.mark("水")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Kanji marked as learned"}`, body)

	status, body = userA.mark("水")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Kanji already marked as learned"}`, body)
	assert.Equal(t, []string{"水"}, store.snapshot()["user-a"])

	assert.True(t, userA.isLearned("水"))

	status, body = userA.unmark("水")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Kanji unmarked as learned"}`, body)

	assert.False(t, userA.isLearned("水"))
}

func TestLearnedKanjiHandler_UnmarkIsIdempotent(t *testing.T) {
	router, store, tokens := setupLearnedKanjiRouter(t)
	user := newAPIClient(t, router, tokens, "user-a")

	for range 2 {
		status, body := user.unmark("火")
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"message":"Kanji unmarked as learned"}`, body)
	}

	user.mark("火")
	for range 2 {
		status, _ := user.unmark("火")
		assert.Equal(t, http.StatusOK, status)
	}
	assert.Empty(t, store.snapshot()["user-a"])
}

func TestLearnedKanjiHandler_SetConsistency(t *testing.T) {
	kanji := []string{"一", "二", "三", "四", "五"}

	tests := []struct {
		name  string
		order []int
	}{
		{name: "nothing marked", order: []int{}},
		{name: "forward order", order: []int{0, 1, 2, 3, 4}},
		{name: "reverse order", order: []int{4, 3, 2, 1, 0}},
		{name: "partial shuffled", order: []int{3, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, tokens := setupLearnedKanjiRouter(t)
			user := newAPIClient(t, router, tokens, "user-a")

			expected := make([]string, 0, len(tt.order))
			for _, i := range tt.order {
				status, _ := user.mark(kanji[i])
				require.Equal(t, http.StatusOK, status)
				expected = append(expected, kanji[i])
			}

			list := user.list()

			assert.Equal(t, len(tt.order), list.Count)
			assert.ElementsMatch(t, expected, list.Kanji)
			assert.NotNil(t, list.Kanji)
		})
	}
}

func TestLearnedKanjiHandler_EmptyListEncodesAsArray(t *testing.T) {
	router, _, tokens := setupLearnedKanjiRouter(t)
	user := newAPIClient(t, router, tokens, "user-a")

	status, body := user.do(http.MethodGet, "/api/learned-kanji", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"kanji":[],"count":0}`, body)
}

func TestLearnedKanjiHandler_UserIsolation(t *testing.T) {
	router, _, tokens := setupLearnedKanjiRouter(t)
	userA := newAPIClient(t, router, tokens, "user-a")
	userB := newAPIClient(t, router, tokens, "user-b")

	userA.mark("水")

	assert.True(t, userA.isLearned("水"))
	assert.False(t, userB.isLearned("水"))
	assert.Equal(t, 0, userB.list().Count)

	userB.mark("水")
	userA.unmark("水")

	assert.False(t, userA.isLearned("水"))
	assert.True(t, userB.isLearned("水"))
}

func TestLearnedKanjiHandler_AuthGating(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		token  string
	}{
		{name: "mark without session", method: http.MethodPost, target: "/api/learned-kanji", body: `{"kanji":"水"}`},
		{name: "unmark without session", method: http.MethodDelete, target: "/api/learned-kanji", body: `{"kanji":"一"}`},
		{name: "check without session", method: http.MethodGet, target: "/api/learned-kanji?kanji=%E4%B8%80"},
		{name: "list without session", method: http.MethodGet, target: "/api/learned-kanji"},
		{name: "mark with invalid token", method: http.MethodPost, target: "/api/learned-kanji", body: `{"kanji":"水"}`, token: "not-a-jwt"},
		{name: "unmark with invalid token", method: http.MethodDelete, target: "/api/learned-kanji", body: `{"kanji":"一"}`, token: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store, tokens := setupLearnedKanjiRouter(t)
			owner := newAPIClient(t, router, tokens, "user-a")
			owner.mark("一")
			before := store.snapshot()

			anonymous := &apiClient{t: t, router: router, token: tt.token}
			status, body := anonymous.do(tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusUnauthorized, status)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, body)
			assert.Equal(t, before, store.snapshot())
		})
	}
}

func TestLearnedKanjiHandler_Validation(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		body         string
		expectedBody string
	}{
		{name: "mark without kanji field", method: http.MethodPost, body: `{}`, expectedBody: `{"error":"Kanji is required"}`},
		{name: "mark with empty kanji", method: http.MethodPost, body: `{"kanji":""}`, expectedBody: `{"error":"Kanji is required"}`},
		{name: "mark with blank kanji", method: http.MethodPost, body: `{"kanji":"  "}`, expectedBody: `{"error":"Kanji is required"}`},
		{name: "mark with null kanji", method: http.MethodPost, body: `{"kanji":null}`, expectedBody: `{"error":"Kanji is required"}`},
		{name: "mark without body", method: http.MethodPost, body: "", expectedBody: `{"error":"Kanji is required"}`},
		{name: "unmark without kanji field", method: http.MethodDelete, body: `{}`, expectedBody: `{"error":"Kanji is required"}`},
		{name: "mark with malformed json", method: http.MethodPost, body: `{"kanji":`, expectedBody: `{"error":"Invalid request body"}`},
		{name: "mark with wrong type", method: http.MethodPost, body: `{"kanji":42}`, expectedBody: `{"error":"Invalid request body"}`},
		{name: "mark with too long kanji", method: http.MethodPost, body: `{"kanji":"` + strings.Repeat("字", 33) + `"}`, expectedBody: `{"error":"Kanji is too long"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store, tokens := setupLearnedKanjiRouter(t)
			user := newAPIClient(t, router, tokens, "user-a")

			status, body := user.do(tt.method, "/api/learned-kanji", tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.JSONEq(t, tt.expectedBody, body)
			assert.Empty(t, store.snapshot())
		})
	}
}

func TestLearnedKanjiHandler_CheckUnstorableKanji(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		expectedBody string
	}{
		{name: "blank filter", target: "/api/learned-kanji?kanji=%20", expectedBody: `{"learned":false}`},
		{name: "too long filter", target: "/api/learned-kanji?kanji=" + url.QueryEscape(strings.Repeat("字", 33)), expectedBody: `{"learned":false}`},
		{name: "padded filter", target: "/api/learned-kanji?kanji=%20%E6%B0%B4%20", expectedBody: `{"learned":true}`},
		{name: "empty filter lists", target: "/api/learned-kanji?kanji=", expectedBody: `{"kanji":["水"],"count":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store, tokens := setupLearnedKanjiRouter(t)
			store.records["user-a"] = []string{"水"}
			user := newAPIClient(t, router, tokens, "user-a")

			status, body := user.do(http.MethodGet, tt.target, "")

			assert.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, tt.expectedBody, body)
		})
	}
}

func TestLearnedKanjiHandler_RejectsOversizedUserID(t *testing.T) {
	router, store, tokens := setupLearnedKanjiRouter(t)
	user := newAPIClient(t, router, tokens, strings.Repeat("u", service.MaxUserIDLength+1))

	status, body := user.mark("水")

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, body)
	assert.Empty(t, store.snapshot())
}

func TestLearnedKanjiHandler_CookieSession(t *testing.T) {
	router, _, tokens := setupLearnedKanjiRouter(t)
	token, err := tokens.GenerateAccessToken("user-c")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/learned-kanji", strings.NewReader(`{"kanji":"木"}`))
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Kanji marked as learned"}`, w.Body.String())
}

func TestLearnedKanjiHandler_StoreFailure(t *testing.T) {
	requests := []struct {
		method string
		target string
		body   string
	}{
		{method: http.MethodPost, target: "/api/learned-kanji", body: `{"kanji":"水"}`},
		{method: http.MethodDelete, target: "/api/learned-kanji", body: `{"kanji":"水"}`},
		{method: http.MethodGet, target: "/api/learned-kanji?kanji=%E6%B0%B4"},
		{method: http.MethodGet, target: "/api/learned-kanji"},
	}

	for _, req := range requests {
		t.Run(req.method+" "+req.target, func(t *testing.T) {
			router, store, tokens := setupLearnedKanjiRouter(t)
			store.err = errors.New("Error 1205: Lock wait timeout exceeded")
			user := newAPIClient(t, router, tokens, "user-a")

			status, body := user.do(req.method, req.target, req.body)

			assert.Equal(t, http.StatusInternalServerError, status)
			assert.JSONEq(t, `{"error":"Internal server error"}`, body)
			assert.NotContains(t, body, "Lock wait")
		})
	}
}
