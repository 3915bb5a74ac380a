package importer

import "context"

// FeedFetcher retrieves a remote catalog feed.
// Implementations must enforce a bounded timeout and surface failures as
// shared.ErrFeedUnavailable-coded errors.
type FeedFetcher interface {
	// Fetch downloads the feed document behind the URL
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ShopLocker serializes catalog imports per shop.
// The full-refresh step deletes every product of the shop before reinserting,
// so two imports for the same shop must never interleave.
type ShopLocker interface {
	// Acquire takes the import lock for a shop name. It returns a release
	// function on success and shared.ErrImportInProgress when another import
	// currently holds the lock.
	Acquire(ctx context.Context, shopName string) (release func(), err error)
}
