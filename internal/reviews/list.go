package reviews

import (
	"strings"

	"github.com/google/uuid"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	pkgpagination "github.com/eastlify/eastlify-backend/pkg/pagination"
)

// ListParams carries the public review listing options for one shop.
type ListParams struct {
	ShopID uuid.UUID
	Sort   string
	pkgpagination.Params
}

// AdminListParams carries the moderation listing options.
type AdminListParams struct {
	ShopID      uuid.UUID
	FlaggedOnly bool
	pkgpagination.Params
}

// ListResult is the page envelope returned to callers.
type ListResult struct {
	Items []models.Review `json:"items"`
	pkgpagination.Meta
}

type listQuery struct {
	shopID         uuid.UUID
	flaggedOnly    bool
	includeFlagged bool
	order          string
	limit          int
	offset         int
}

// sortColumns is the allowlist of sortable fields. Anything else is
// rejected rather than interpolated into SQL.
var sortColumns = map[string]string{
	"createdAt":    "created_at",
	"rating":       "rating",
	"helpfulCount": "helpful_count",
}

const defaultOrder = "created_at DESC"

// parseSort maps an API sort key ("-rating", "createdAt") to an ORDER BY
// clause. The empty string means newest first.
func parseSort(sort string) (string, error) {
	if sort == "" {
		return defaultOrder, nil
	}

	direction := "ASC"
	key := sort
	if strings.HasPrefix(sort, "-") {
		direction = "DESC"
		key = sort[1:]
	}

	column, ok := sortColumns[key]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort field").
			WithDetails(map[string]string{"sort": sort})
	}
	return column + " " + direction, nil
}
