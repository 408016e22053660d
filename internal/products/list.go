package products

import (
	"github.com/google/uuid"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
	pkgpagination "github.com/eastlify/eastlify-backend/pkg/pagination"
)

// ListParams carries the recognized product listing options. Zero values
// mean "no filter".
type ListParams struct {
	ShopID   uuid.UUID
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool
	pkgpagination.Params
}

// ListResult is the page envelope returned to callers.
type ListResult struct {
	Items []models.Product `json:"items"`
	pkgpagination.Meta
}

type listQuery struct {
	shopID     uuid.UUID
	category   string
	search     string
	minPrice   *float64
	maxPrice   *float64
	inStock    *bool
	includeAll bool
	limit      int
	offset     int
}
