package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
)

// Repository exposes review persistence plus the aggregate queries the
// rating aggregator recomputes from.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// FindByID returns the review or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// Update persists the full review row.
func (r *Repository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete removes the review row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error
}

// AggregateForShop computes the average rating and count over the shop's
// non-flagged reviews in a single query. An empty set yields (0, 0).
func (r *Repository) AggregateForShop(ctx context.Context, shopID uuid.UUID) (float64, int64, error) {
	var row struct {
		Avg   *float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("shop_id = ? AND is_flagged = ?", shopID, false).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Avg == nil {
		return 0, row.Count, nil
	}
	return *row.Avg, row.Count, nil
}

// GroupByRating returns the non-flagged review count per star value.
func (r *Repository) GroupByRating(ctx context.Context, shopID uuid.UUID) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("shop_id = ? AND is_flagged = ?", shopID, false).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	distribution := make(map[int]int64, 5)
	for star := 1; star <= 5; star++ {
		distribution[star] = 0
	}
	for _, row := range rows {
		distribution[row.Rating] = row.Count
	}
	return distribution, nil
}

// List returns one page of reviews matching the filter plus the total match
// count over the same predicate.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{})

	if opts.shopID != uuid.Nil {
		query = query.Where("shop_id = ?", opts.shopID)
	}
	if opts.flaggedOnly {
		query = query.Where("is_flagged = ?", true)
	} else if !opts.includeFlagged {
		query = query.Where("is_flagged = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Review
	err := query.
		Order(opts.order).
		Offset(opts.offset).
		Limit(opts.limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
