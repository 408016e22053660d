package reviews

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eastlify/eastlify-backend/pkg/logger"
)

type reviewAggregates interface {
	AggregateForShop(ctx context.Context, shopID uuid.UUID) (float64, int64, error)
}

type shopAggregateWriter interface {
	UpdateAggregates(ctx context.Context, shopID uuid.UUID, rating float64, totalReviews int) (int64, error)
}

// Aggregator recomputes a shop's rating and total_reviews from the full
// non-flagged review set and writes both in one statement. It is invoked
// explicitly after every review mutation; nothing recomputes implicitly on
// save, so a missed call shows up as a stale counter instead of a surprise
// write.
//
// Recompute is idempotent: running it twice against the same review set
// writes the same values.
type Aggregator struct {
	reviews reviewAggregates
	shops   shopAggregateWriter
	logg    *logger.Logger
}

// NewAggregator builds the rating aggregator.
func NewAggregator(reviews reviewAggregates, shops shopAggregateWriter, logg *logger.Logger) (*Aggregator, error) {
	if reviews == nil {
		return nil, fmt.Errorf("review aggregates source required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop aggregate writer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Aggregator{reviews: reviews, shops: shops, logg: logg}, nil
}

// Recompute derives the shop's rating (rounded to one decimal, 0 when no
// reviews remain) and review count, then updates exactly those two columns.
// A shop that no longer exists is a no-op, which covers reviews orphaned by
// shop deletion.
func (a *Aggregator) Recompute(ctx context.Context, shopID uuid.UUID) error {
	avg, count, err := a.reviews.AggregateForShop(ctx, shopID)
	if err != nil {
		return fmt.Errorf("aggregating reviews: %w", err)
	}

	rating := 0.0
	if count > 0 {
		rating, _ = decimalRound1(avg)
	}

	affected, err := a.shops.UpdateAggregates(ctx, shopID, rating, int(count))
	if err != nil {
		return fmt.Errorf("updating shop aggregates: %w", err)
	}
	if affected == 0 {
		ctx = a.logg.WithShopID(ctx, shopID.String())
		a.logg.Info(ctx, "rating recompute skipped, shop no longer exists")
	}
	return nil
}

// decimalRound1 rounds half away from zero to one decimal place, matching
// how ratings are displayed.
func decimalRound1(value float64) (float64, bool) {
	return decimal.NewFromFloat(value).Round(1).Float64()
}
