package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/retailnet/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPFetcher(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the feed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("shop: Svyaznoy\n"))
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, 1<<20, zap.NewNop())

		body, err := fetcher.Fetch(ctx, server.URL)
		require.NoError(t, err)
		assert.Equal(t, "shop: Svyaznoy\n", string(body))
	})

	t.Run("non-success status surfaces as feed unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, 1<<20, zap.NewNop())

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrFeedUnavailable.Code, domainErr.Code)
	})

	t.Run("unreachable host surfaces as feed unavailable", func(t *testing.T) {
		fetcher := NewHTTPFetcher(500*time.Millisecond, 1<<20, zap.NewNop())

		_, err := fetcher.Fetch(ctx, "http://127.0.0.1:1/feed.yaml")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrFeedUnavailable.Code, domainErr.Code)
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(make([]byte, 2048))
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, 1024, zap.NewNop())

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})
}
