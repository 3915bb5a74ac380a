package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormImportLogRepository implements ImportLogRepository using GORM
type GormImportLogRepository struct {
	db *gorm.DB
}

// NewGormImportLogRepository creates a new GormImportLogRepository
func NewGormImportLogRepository(db *gorm.DB) *GormImportLogRepository {
	return &GormImportLogRepository{db: db}
}

// FindByID finds an import log by its ID
func (r *GormImportLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ImportLog, error) {
	var log catalog.ImportLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindByShopName finds recent import runs for a shop name
func (r *GormImportLogRepository) FindByShopName(ctx context.Context, shopName string, filter shared.Filter) ([]catalog.ImportLog, error) {
	query := r.db.WithContext(ctx).Where("shop_name = ?", shopName)
	if filter.OrderBy == "" {
		filter.OrderBy = "started_at"
		filter.OrderDir = "desc"
	}

	var logs []catalog.ImportLog
	if err := applyPagination(query, filter).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Save creates or updates an import log
func (r *GormImportLogRepository) Save(ctx context.Context, log *catalog.ImportLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

var _ catalog.ImportLogRepository = (*GormImportLogRepository)(nil)
