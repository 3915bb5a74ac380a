package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/retailnet/backend/internal/application/importer"
	"github.com/retailnet/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// HTTPFetcher downloads catalog feeds over HTTP.
// Every failure mode (timeout, connection error, non-2xx status, oversized
// body) surfaces as an ErrFeedUnavailable-coded error so the importer can
// report it without having written anything.
type HTTPFetcher struct {
	client      *resty.Client
	maxBodySize int64
	logger      *zap.Logger
}

// NewHTTPFetcher creates a fetcher with the given timeout and body limit
func NewHTTPFetcher(timeout time.Duration, maxBodySize int64, logger *zap.Logger) *HTTPFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &HTTPFetcher{
		client:      client,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

// Fetch downloads the feed document behind the URL
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		f.logger.Warn("feed fetch failed",
			zap.String("url", url),
			zap.Error(err),
		)
		return nil, shared.NewDomainError(shared.ErrFeedUnavailable.Code,
			fmt.Sprintf("Could not fetch catalog feed: %v", err))
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		f.logger.Warn("feed fetch returned non-success status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, shared.NewDomainError(shared.ErrFeedUnavailable.Code,
			fmt.Sprintf("Feed server responded with status %d", resp.StatusCode()))
	}

	body := resp.Body()
	if f.maxBodySize > 0 && int64(len(body)) > f.maxBodySize {
		return nil, shared.NewDomainError(shared.ErrFeedUnavailable.Code,
			fmt.Sprintf("Feed body exceeds the %d byte limit", f.maxBodySize))
	}

	return body, nil
}

var _ importer.FeedFetcher = (*HTTPFetcher)(nil)
