package importer

import (
	"context"
	"errors"
	"net/url"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ImportRequest describes one catalog import run.
// Exactly one of Source or URL must be set; OwnerShopName is an optional
// hint used to reject feeds whose shop name does not match the caller's shop.
type ImportRequest struct {
	Source        []byte
	URL           string
	OwnerShopName string
}

// ImportResult summarizes a completed catalog import
type ImportResult struct {
	ImportID      uuid.UUID `json:"import_id"`
	ShopID        uuid.UUID `json:"shop_id"`
	ShopName      string    `json:"shop_name"`
	CategoryCount int       `json:"category_count"`
	ProductCount  int       `json:"product_count"`
}

// ImportService ingests supplier catalog feeds into the catalog store.
// Each run reconciles one shop: shop and categories are resolved or created,
// the shop's products are fully replaced, and parameter names are
// deduplicated globally. All store writes happen inside one transaction.
type ImportService struct {
	scope          TransactionScope
	logRepo        catalog.ImportLogRepository
	fetcher        FeedFetcher
	locker         ShopLocker
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	scope TransactionScope,
	logRepo catalog.ImportLogRepository,
	fetcher FeedFetcher,
	locker ShopLocker,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		scope:   scope,
		logRepo: logRepo,
		fetcher: fetcher,
		locker:  locker,
		logger:  logger,
	}
}

// SetEventPublisher sets the event publisher for post-commit notifications
func (s *ImportService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ImportCatalog runs a full catalog import from an inline document or a
// remote feed URL
func (s *ImportService) ImportCatalog(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	source, sourceName, err := s.resolveSource(ctx, req)
	if err != nil {
		return nil, err
	}

	feed, err := ParseFeed(source)
	if err != nil {
		return nil, err
	}

	if req.OwnerShopName != "" && feed.Shop != req.OwnerShopName {
		return nil, shared.NewDomainError("SHOP_MISMATCH", "Feed shop name does not match your shop")
	}

	log := catalog.NewImportLog(feed.Shop, sourceName)
	if err := s.logRepo.Save(ctx, log); err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, feed.Shop)
	if err != nil {
		s.failLog(ctx, log, err)
		return nil, err
	}
	defer release()

	var (
		shop         *catalog.Shop
		productCount int
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		shop, txErr = s.resolveShop(ctx, repos, feed.Shop, req.URL)
		if txErr != nil {
			return txErr
		}
		if txErr = s.reconcileCategories(ctx, repos, feed.Categories); txErr != nil {
			return txErr
		}
		productCount, txErr = s.replaceProducts(ctx, repos, shop, feed.Goods)
		return txErr
	})
	if err != nil {
		s.failLog(ctx, log, err)
		return nil, err
	}

	log.Complete(shop.ID, productCount, len(feed.Categories))
	if err := s.logRepo.Save(ctx, log); err != nil {
		s.logger.Warn("failed to persist import log", zap.Error(err), zap.String("shop", feed.Shop))
	}

	if s.eventPublisher != nil {
		event := catalog.NewCatalogImportedEvent(shop, productCount)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish catalog imported event", zap.Error(err))
		}
	}

	s.logger.Info("catalog import completed",
		zap.String("shop", shop.Name),
		zap.Int("products", productCount),
		zap.Int("categories", len(feed.Categories)))

	return &ImportResult{
		ImportID:      log.ID,
		ShopID:        shop.ID,
		ShopName:      shop.Name,
		CategoryCount: len(feed.Categories),
		ProductCount:  productCount,
	}, nil
}

// ListRuns returns recent import runs for a shop name
func (s *ImportService) ListRuns(ctx context.Context, shopName string, filter shared.Filter) ([]catalog.ImportLog, error) {
	return s.logRepo.FindByShopName(ctx, shopName, filter)
}

// resolveSource returns the feed bytes, fetching remote sources when the
// request carries a URL instead of an inline document
func (s *ImportService) resolveSource(ctx context.Context, req ImportRequest) ([]byte, string, error) {
	if len(req.Source) > 0 {
		return req.Source, "inline", nil
	}
	if req.URL == "" {
		return nil, "", shared.NewDomainError(shared.ErrMalformedCatalog.Code, "Import request carries neither a document nor a URL")
	}

	u, err := url.Parse(req.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, "", shared.NewDomainError("INVALID_URL", "Feed URL must be a valid absolute URL")
	}

	source, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, "", err
	}
	return source, req.URL, nil
}

// resolveShop gets or creates the shop by name (case-sensitive exact match)
func (s *ImportService) resolveShop(ctx context.Context, repos TransactionalRepositories, name, feedURL string) (*catalog.Shop, error) {
	shop, err := repos.ShopRepo().FindByName(ctx, name)
	if err == nil {
		return shop, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	shop, err = catalog.NewShop(name)
	if err != nil {
		return nil, err
	}
	if feedURL != "" {
		if err := shop.SetURL(feedURL); err != nil {
			return nil, err
		}
	}
	if err := repos.ShopRepo().Save(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// reconcileCategories resolves or creates each declared category.
// The feed's id is the reconciliation key; on a name conflict the feed wins.
func (s *ImportService) reconcileCategories(ctx context.Context, repos TransactionalRepositories, declared []FeedCategory) error {
	for _, feedCategory := range declared {
		existing, err := repos.CategoryRepo().FindByID(ctx, feedCategory.ID)
		if err == nil {
			if existing.Name == feedCategory.Name {
				continue
			}
			if err := existing.Rename(feedCategory.Name); err != nil {
				return err
			}
			if err := repos.CategoryRepo().Save(ctx, existing); err != nil {
				return err
			}
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		category, err := catalog.NewCategory(feedCategory.ID, feedCategory.Name)
		if err != nil {
			return err
		}
		if err := repos.CategoryRepo().Save(ctx, category); err != nil {
			return err
		}
	}
	return nil
}

// replaceProducts removes the shop's current products and inserts the feed's
// goods, resolving parameter names globally
func (s *ImportService) replaceProducts(ctx context.Context, repos TransactionalRepositories, shop *catalog.Shop, goods []FeedGood) (int, error) {
	if err := repos.ProductRepo().DeleteByShop(ctx, shop.ID); err != nil {
		return 0, err
	}

	parameterIDs := make(map[string]uuid.UUID)
	products := make([]*catalog.Product, 0, len(goods))

	for _, good := range goods {
		product, err := catalog.NewProduct(shop.ID, good.ID, good.Name, good.Model, good.Category,
			decimal.NewFromInt(good.Price), decimal.NewFromInt(good.PriceRRC), good.Quantity)
		if err != nil {
			return 0, err
		}

		for _, pair := range good.ParameterStrings() {
			name, value := pair[0], pair[1]
			parameterID, ok := parameterIDs[name]
			if !ok {
				parameterID, err = s.resolveParameter(ctx, repos, name)
				if err != nil {
					return 0, err
				}
				parameterIDs[name] = parameterID
			}
			if err := product.AddParameter(parameterID, value); err != nil {
				return 0, err
			}
		}

		products = append(products, product)
	}

	if len(products) > 0 {
		if err := repos.ProductRepo().SaveBatch(ctx, products); err != nil {
			return 0, err
		}
	}
	return len(products), nil
}

// resolveParameter gets or creates a parameter by its global name
func (s *ImportService) resolveParameter(ctx context.Context, repos TransactionalRepositories, name string) (uuid.UUID, error) {
	existing, err := repos.ParameterRepo().FindByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, err
	}

	parameter, err := catalog.NewParameter(name)
	if err != nil {
		return uuid.Nil, err
	}
	if err := repos.ParameterRepo().Save(ctx, parameter); err != nil {
		return uuid.Nil, err
	}
	return parameter.ID, nil
}

// failLog records a failed run; log persistence problems are logged, never
// allowed to mask the import error
func (s *ImportService) failLog(ctx context.Context, log *catalog.ImportLog, cause error) {
	log.Fail(cause)
	if err := s.logRepo.Save(ctx, log); err != nil {
		s.logger.Warn("failed to persist import log", zap.Error(err), zap.String("shop", log.ShopName))
	}
}
