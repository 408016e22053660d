package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/eastlify/eastlify-backend/pkg/types"
)

// Product represents a listing that belongs to exactly one shop.
type Product struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShopID         uuid.UUID         `gorm:"column:shop_id;type:uuid;not null;index:idx_products_shop_category" json:"shop_id"`
	Name           string            `gorm:"column:name;not null" json:"name"`
	Description    string            `gorm:"column:description" json:"description"`
	Price          float64           `gorm:"column:price;type:numeric(12,2);not null;index" json:"price"`
	CompareAtPrice *float64          `gorm:"column:compare_at_price;type:numeric(12,2)" json:"compare_at_price,omitempty"`
	Category       string            `gorm:"column:category;not null;index:idx_products_shop_category" json:"category"`
	Images         pq.StringArray    `gorm:"column:images;type:text[]" json:"images"`
	Stock          int               `gorm:"column:stock;not null;default:0" json:"stock"`
	InStock        bool              `gorm:"column:in_stock;not null;default:true" json:"in_stock"`
	IsActive       bool              `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Tags           pq.StringArray    `gorm:"column:tags;type:text[]" json:"tags"`
	Variants       types.VariantList `gorm:"column:variants;type:jsonb" json:"variants"`
	HasSizes       bool              `gorm:"column:has_sizes;not null;default:false" json:"has_sizes"`
	HasColors      bool              `gorm:"column:has_colors;not null;default:false" json:"has_colors"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// MaxProductImages caps the image list accepted per product.
const MaxProductImages = 5
