package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Params{}.Normalize(DefaultLimit)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = Params{Page: -3, Limit: 0}.Normalize(ReviewDefaultLimit)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, ReviewDefaultLimit, p.Limit)
}

func TestNormalizeCapsLimit(t *testing.T) {
	p := Params{Page: 2, Limit: 5000}.Normalize(DefaultLimit)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 10, Params{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 40, Params{Page: 5, Limit: 10}.Offset())
}

func TestNewMetaTotalPages(t *testing.T) {
	p := Params{Page: 2, Limit: 10}

	meta := NewMeta(p, 25)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, int64(3), meta.TotalPages)

	meta = NewMeta(p, 0)
	assert.Equal(t, int64(0), meta.TotalPages)

	meta = NewMeta(p, 10)
	assert.Equal(t, int64(1), meta.TotalPages)
}
