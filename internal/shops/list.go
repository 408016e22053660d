package shops

import (
	"github.com/eastlify/eastlify-backend/pkg/db/models"
	pkgpagination "github.com/eastlify/eastlify-backend/pkg/pagination"
)

// ListParams carries the recognized shop listing options. Zero values mean
// "no filter".
type ListParams struct {
	Category string
	Street   string
	Search   string
	pkgpagination.Params
}

// ListResult is the page envelope returned to callers.
type ListResult struct {
	Items []models.Shop `json:"items"`
	pkgpagination.Meta
}

type listQuery struct {
	category string
	street   string
	search   string
	limit    int
	offset   int
}
