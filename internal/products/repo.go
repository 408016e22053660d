package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
)

// Repository exposes product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID returns the product or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update persists the full product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// List returns one page of products matching the filter plus the total
// match count over the same predicate.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if !opts.includeAll {
		query = query.Where("is_active = ?", true)
	}
	if opts.shopID != uuid.Nil {
		query = query.Where("shop_id = ?", opts.shopID)
	}
	if opts.category != "" {
		query = query.Where("category = ?", opts.category)
	}
	if opts.minPrice != nil {
		query = query.Where("price >= ?", *opts.minPrice)
	}
	if opts.maxPrice != nil {
		query = query.Where("price <= ?", *opts.maxPrice)
	}
	if opts.inStock != nil {
		query = query.Where("in_stock = ?", *opts.inStock)
	}
	if opts.search != "" {
		pattern := "%" + strings.ToLower(opts.search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(CAST(tags AS text)) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
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
