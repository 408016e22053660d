package shops

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
)

// Repository exposes shop persistence operations, including the atomic
// counter updates the aggregator and ledger depend on.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a shop repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new shop row. The owner unique index rejects a second
// shop for the same user at the database level.
func (r *Repository) Create(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	if err := r.db.WithContext(ctx).Create(shop).Error; err != nil {
		return nil, err
	}
	return shop, nil
}

// FindByID returns the shop or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// FindByOwner returns the owner's shop or gorm.ErrRecordNotFound.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "owner = ?", ownerID).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// Update persists the full shop row.
func (r *Repository) Update(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// Delete removes the shop row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Shop{}, "id = ?", id).Error
}

// List returns active shops matching the filter plus the total match count.
// The count runs against the same predicate as the page fetch so totals stay
// correct for partially filled or empty pages.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Shop, int64, error) {
	query := r.baseQuery(ctx, opts)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Shop
	err := query.
		Order("created_at DESC").
		Offset(opts.offset).
		Limit(opts.limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) baseQuery(ctx context.Context, opts listQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Shop{}).Where("is_active = ?", true)

	if opts.category != "" {
		query = query.Where("? = ANY(categories)", opts.category)
	}
	if opts.street != "" {
		query = query.Where("street = ?", opts.street)
	}
	if opts.search != "" {
		pattern := "%" + strings.ToLower(opts.search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return query
}

// UpdateAggregates atomically sets the two aggregator-owned counters and
// nothing else. Returns the number of affected rows so callers can treat a
// vanished shop as a no-op.
func (r *Repository) UpdateAggregates(ctx context.Context, shopID uuid.UUID, rating float64, totalReviews int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", shopID).
		Updates(map[string]any{
			"rating":        rating,
			"total_reviews": totalReviews,
		})
	return result.RowsAffected, result.Error
}

// IncrementCalls applies an atomic in-store delta to total_calls so two
// concurrent call events are both reflected.
func (r *Repository) IncrementCalls(ctx context.Context, shopID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", shopID).
		Update("total_calls", gorm.Expr("total_calls + 1")).Error
}

// IncrementSales applies atomic deltas to the sale-owned counters.
func (r *Repository) IncrementSales(ctx context.Context, shopID uuid.UUID, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", shopID).
		Updates(map[string]any{
			"sales":  gorm.Expr("sales + ?", amount),
			"orders": gorm.Expr("orders + 1"),
		}).Error
}
