package shaarliapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchLinks(t *testing.T) {
	const secret = "test-secret"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/links", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("limit"))

		auth := r.Header.Get("Authorization")
		require.True(t, strings.HasPrefix(auth, "Bearer "))

		token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(tok *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS512"}))
		require.NoError(t, err)
		assert.True(t, token.Valid)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"url": "https://example.com/a", "title": "A", "description": "first",
			 "shorturl": "WDWyig", "created": "2023-06-15T10:30:00+02:00"},
			{"url": "https://example.com/b", "title": "B"},
			{"title": "no url, dropped"}
		]`))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	records, err := client.FetchLinks(context.Background(), server.URL, secret)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "https://example.com/a", records[0].URL)
	assert.Equal(t, "A", records[0].Title)
	assert.Equal(t, "first", records[0].Description)
	assert.Equal(t, "WDWyig", records[0].ShaarliShortURL)
	assert.False(t, records[0].CreatedAt.IsZero())
	assert.True(t, records[1].CreatedAt.IsZero())
}

func TestFetchLinks_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	_, err := client.FetchLinks(context.Background(), server.URL, "wrong")
	require.Error(t, err)
	assert.Equal(t, "Authentication failed. Please check your API secret.", err.Error())
}

func TestFetchLinks_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	_, err := client.FetchLinks(context.Background(), server.URL, "secret")
	assert.Error(t, err)
}

func TestFetchLinks_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	_, err := client.FetchLinks(context.Background(), server.URL, "secret")
	assert.Error(t, err)
}

func TestFetchLinks_TrailingSlashBaseURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	_, err := client.FetchLinks(context.Background(), server.URL+"/", "secret")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/links", gotPath)
}
