package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// ReviewDefaultLimit is the smaller page size used for review listings.
	ReviewDefaultLimit = 10
	// MaxLimit caps how many rows any listing query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
// Pages are 1-indexed.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps the page to at least 1 and the limit into
// [1, MaxLimit], substituting defaultLimit when the limit is unset.
func (p Params) Normalize(defaultLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	out := p
	if out.Page <= 0 {
		out.Page = 1
	}
	if out.Limit <= 0 {
		out.Limit = defaultLimit
	}
	if out.Limit > MaxLimit {
		out.Limit = MaxLimit
	}
	return out
}

// Offset returns the number of rows to skip for the current page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta describes a page of results. Total always reflects the full
// predicate match count, independent of the requested page.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// NewMeta derives the page metadata from normalized params and a count.
func NewMeta(p Params, total int64) Meta {
	meta := Meta{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
	}
	if total > 0 && p.Limit > 0 {
		meta.TotalPages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return meta
}
