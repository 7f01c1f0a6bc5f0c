package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchLearned(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectedKanji []string
		expectedErr   error
		expectedAPI   int
	}{
		{
			name:          "success",
			status:        http.StatusOK,
			body:          `{"kanji":["一","二"],"count":2}`,
			expectedKanji: []string{"一", "二"},
		},
		{
			name:          "null list",
			status:        http.StatusOK,
			body:          `{"kanji":null,"count":0}`,
			expectedKanji: []string{},
		},
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			body:        `{"error":"Unauthorized"}`,
			expectedErr: ErrUnauthorized,
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			body:        `{"error":"Internal server error"}`,
			expectedAPI: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/learned-kanji", r.URL.Path)
				assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL+"/", nil)
			list, err := client.FetchLearned(context.Background(), "token-1")

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.expectedAPI != 0:
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, tt.expectedAPI, apiErr.StatusCode)
				assert.Equal(t, "Internal server error", apiErr.Message)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expectedKanji, list.Kanji)
			}
		})
	}
}

func TestClient_IsLearned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		learned := r.URL.Query().Get("kanji") == "水"
		json.NewEncoder(w).Encode(map[string]bool{"learned": learned})
	}))
	defer srv.Close()
	client := NewClient(srv.URL, nil)

	learned, err := client.IsLearned(context.Background(), "t", "水")
	require.NoError(t, err)
	assert.True(t, learned)

	learned, err = client.IsLearned(context.Background(), "t", "火")
	require.NoError(t, err)
	assert.False(t, learned)
}

func TestClient_MarkAndUnmark(t *testing.T) {
	var gotMethods []string
	var gotKanji []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Kanji string `json:"kanji"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotMethods = append(gotMethods, r.Method)
		gotKanji = append(gotKanji, req.Kanji)

		message := "Kanji marked as learned"
		if r.Method == http.MethodDelete {
			message = "Kanji unmarked"
		}
		json.NewEncoder(w).Encode(map[string]string{"message": message})
	}))
	defer srv.Close()
	client := NewClient(srv.URL, nil)

	msg, err := client.Mark(context.Background(), "t", "火")
	require.NoError(t, err)
	assert.Equal(t, "Kanji marked as learned", msg)

	msg, err = client.Unmark(context.Background(), "t", "火")
	require.NoError(t, err)
	assert.Equal(t, "Kanji unmarked", msg)

	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, gotMethods)
	assert.Equal(t, []string{"火", "火"}, gotKanji)
}

func TestClient_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Kanji is required"}`))
	}))
	defer srv.Close()
	client := NewClient(srv.URL, nil)

	_, err := client.Mark(context.Background(), "t", "")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Kanji is required", apiErr.Message)
}
