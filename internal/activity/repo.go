package activity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
)

// Repository persists ledger entries. The table is append-only; there are
// no update or delete operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an activity repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append inserts a ledger entry.
func (r *Repository) Append(ctx context.Context, entry *models.Activity) (*models.Activity, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByShop returns one page of the shop's ledger, newest first, plus the
// total entry count.
func (r *Repository) ListByShop(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.Activity, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Activity{}).Where("shop_id = ?", shopID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Activity
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
