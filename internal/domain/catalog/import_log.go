package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/shared"
)

// ImportStatus represents the status of a catalog import run
type ImportStatus string

const (
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// IsValid checks if the status is a valid ImportStatus
func (s ImportStatus) IsValid() bool {
	switch s {
	case ImportStatusProcessing, ImportStatusCompleted, ImportStatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if this is a terminal state
func (s ImportStatus) IsTerminal() bool {
	return s == ImportStatusCompleted || s == ImportStatusFailed
}

// ImportLog records a single catalog import run for a shop.
// The log row outlives the import transaction so failed runs stay visible.
type ImportLog struct {
	shared.BaseEntity
	ShopName      string       `gorm:"type:varchar(100);not null;index"`
	ShopID        *uuid.UUID   `gorm:"type:uuid;index"`
	Source        string       `gorm:"type:varchar(500)"`
	Status        ImportStatus `gorm:"type:varchar(20);not null"`
	ProductCount  int          `gorm:"not null;default:0"`
	CategoryCount int          `gorm:"not null;default:0"`
	ErrorCode     string       `gorm:"type:varchar(50)"`
	ErrorMessage  string       `gorm:"type:varchar(1000)"`
	StartedAt     time.Time    `gorm:"not null"`
	FinishedAt    *time.Time
}

// TableName returns the table name for GORM
func (ImportLog) TableName() string {
	return "import_logs"
}

// NewImportLog starts a log entry for an import run
func NewImportLog(shopName, source string) *ImportLog {
	return &ImportLog{
		BaseEntity: shared.NewBaseEntity(),
		ShopName:   shopName,
		Source:     source,
		Status:     ImportStatusProcessing,
		StartedAt:  time.Now(),
	}
}

// Complete marks the run as successful
func (l *ImportLog) Complete(shopID uuid.UUID, productCount, categoryCount int) {
	now := time.Now()
	l.ShopID = &shopID
	l.Status = ImportStatusCompleted
	l.ProductCount = productCount
	l.CategoryCount = categoryCount
	l.FinishedAt = &now
	l.UpdatedAt = now
}

// Fail marks the run as failed with the reported error
func (l *ImportLog) Fail(err error) {
	now := time.Now()
	l.Status = ImportStatusFailed
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		l.ErrorCode = domainErr.Code
	}
	message := err.Error()
	if len(message) > 1000 {
		message = message[:1000]
	}
	l.ErrorMessage = message
	l.FinishedAt = &now
	l.UpdatedAt = now
}

// ImportLogRepository defines the interface for import log persistence
type ImportLogRepository interface {
	// FindByID finds an import log by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ImportLog, error)

	// FindByShopName finds recent import runs for a shop name
	FindByShopName(ctx context.Context, shopName string, filter shared.Filter) ([]ImportLog, error)

	// Save creates or updates an import log
	Save(ctx context.Context, log *ImportLog) error
}
