package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
)

func setupReviewsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL,
  user_id TEXT,
  rating INTEGER NOT NULL,
  review_text TEXT,
  interaction_type TEXT,
  is_verified INTEGER NOT NULL DEFAULT 0,
  is_flagged INTEGER NOT NULL DEFAULT 0,
  flag_reason TEXT,
  helpful_count INTEGER NOT NULL DEFAULT 0,
  ip_address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedReview(t *testing.T, db *gorm.DB, shopID uuid.UUID, rating int, mutate func(*models.Review)) *models.Review {
	t.Helper()

	review := &models.Review{
		ID:     uuid.New(),
		ShopID: shopID,
		Rating: rating,
	}
	if mutate != nil {
		mutate(review)
	}
	require.NoError(t, db.Create(review).Error)
	return review
}

func TestAggregateForShopExcludesFlagged(t *testing.T) {
	db := setupReviewsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	for _, rating := range []int{5, 4, 5} {
		seedReview(t, db, shopID, rating, nil)
	}
	seedReview(t, db, shopID, 1, func(r *models.Review) { r.IsFlagged = true })
	seedReview(t, db, uuid.New(), 2, nil)

	avg, count, err := repo.AggregateForShop(ctx, shopID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.InDelta(t, 14.0/3.0, avg, 0.0001)
}

func TestAggregateForShopEmpty(t *testing.T) {
	db := setupReviewsTestDB(t)
	repo := NewRepository(db)

	avg, count, err := repo.AggregateForShop(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, avg)
}

func TestGroupByRating(t *testing.T) {
	db := setupReviewsTestDB(t)
	repo := NewRepository(db)
	shopID := uuid.New()

	for _, rating := range []int{5, 5, 3} {
		seedReview(t, db, shopID, rating, nil)
	}
	seedReview(t, db, shopID, 5, func(r *models.Review) { r.IsFlagged = true })

	distribution, err := repo.GroupByRating(context.Background(), shopID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, distribution[5])
	assert.EqualValues(t, 1, distribution[3])
	assert.EqualValues(t, 0, distribution[1])
	assert.Len(t, distribution, 5)
}

func TestListSortAndFlagFilters(t *testing.T) {
	db := setupReviewsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	base := time.Now().Add(-time.Hour)
	seedReview(t, db, shopID, 2, func(r *models.Review) { r.CreatedAt = base })
	seedReview(t, db, shopID, 5, func(r *models.Review) { r.CreatedAt = base.Add(time.Minute) })
	seedReview(t, db, shopID, 4, func(r *models.Review) {
		r.CreatedAt = base.Add(2 * time.Minute)
		r.IsFlagged = true
	})

	rows, total, err := repo.List(ctx, listQuery{shopID: shopID, order: "rating DESC", limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)
	assert.Equal(t, 5, rows[0].Rating)

	rows, total, err = repo.List(ctx, listQuery{shopID: shopID, flaggedOnly: true, order: defaultOrder, limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsFlagged)

	rows, total, err = repo.List(ctx, listQuery{shopID: shopID, includeFlagged: true, order: defaultOrder, limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, rows, 3)
}

func TestParseSort(t *testing.T) {
	cases := []struct {
		sort    string
		want    string
		wantErr bool
	}{
		{sort: "", want: "created_at DESC"},
		{sort: "createdAt", want: "created_at ASC"},
		{sort: "-rating", want: "rating DESC"},
		{sort: "helpfulCount", want: "helpful_count ASC"},
		{sort: "-helpfulCount", want: "helpful_count DESC"},
		{sort: "password_hash", wantErr: true},
		{sort: "rating; DROP TABLE reviews", wantErr: true},
	}

	for _, tc := range cases {
		order, err := parseSort(tc.sort)
		if tc.wantErr {
			assert.Error(t, err, "sort %q", tc.sort)
			continue
		}
		require.NoError(t, err, "sort %q", tc.sort)
		assert.Equal(t, tc.want, order)
	}
}
