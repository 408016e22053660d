package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	"github.com/eastlify/eastlify-backend/pkg/logger"
	"github.com/eastlify/eastlify-backend/pkg/ownership"
	"github.com/eastlify/eastlify-backend/pkg/pagination"
)

const recentReviewsCount = 5

type reviewsRepository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	AggregateForShop(ctx context.Context, shopID uuid.UUID) (float64, int64, error)
	GroupByRating(ctx context.Context, shopID uuid.UUID) (map[int]int64, error)
	List(ctx context.Context, opts listQuery) ([]models.Review, int64, error)
}

type shopsReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
}

type recomputer interface {
	Recompute(ctx context.Context, shopID uuid.UUID) error
}

// Service exposes review submission, listing, statistics, and moderation.
type Service interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*models.Review, error)
	ListShopReviews(ctx context.Context, params ListParams) (*ListResult, error)
	ShopStats(ctx context.Context, shopID uuid.UUID) (*Stats, error)
	FlagReview(ctx context.Context, actorID uuid.UUID, role enums.UserRole, reviewID uuid.UUID, reason string) (*models.Review, error)
	AdminListReviews(ctx context.Context, params AdminListParams) (*ListResult, error)
	DeleteReview(ctx context.Context, role enums.UserRole, reviewID uuid.UUID) error
}

type service struct {
	repo       reviewsRepository
	shopsRepo  shopsReader
	aggregator recomputer
	logg       *logger.Logger
}

// CreateReviewInput holds the fields accepted when submitting a review.
// A nil UserID records the review anonymously.
type CreateReviewInput struct {
	ShopID          uuid.UUID
	UserID          *uuid.UUID
	Rating          int
	ReviewText      string
	InteractionType enums.InteractionType
	IPAddress       string
}

// Stats is the public rating summary for one shop.
type Stats struct {
	Average      float64         `json:"average"`
	Total        int64           `json:"total"`
	Distribution map[int]int64   `json:"distribution"`
	Recent       []models.Review `json:"recent"`
}

// NewService builds a review service backed by the provided repositories and
// the rating aggregator.
func NewService(repo reviewsRepository, shopsRepo shopsReader, aggregator recomputer, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if shopsRepo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	if aggregator == nil {
		return nil, fmt.Errorf("aggregator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, shopsRepo: shopsRepo, aggregator: aggregator, logg: logg}, nil
}

// CreateReview validates and stores the review, then recomputes the shop's
// rating aggregates.
func (s *service) CreateReview(ctx context.Context, input CreateReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if len(input.ReviewText) > models.MaxReviewTextLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review text too long").
			WithDetails(map[string]int{"max_length": models.MaxReviewTextLen})
	}
	if input.InteractionType != "" && !input.InteractionType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid interaction type")
	}

	if _, err := s.shopsRepo.FindByID(ctx, input.ShopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading shop")
	}

	review := &models.Review{
		ShopID:          input.ShopID,
		UserID:          input.UserID,
		Rating:          input.Rating,
		ReviewText:      input.ReviewText,
		InteractionType: input.InteractionType,
		IPAddress:       input.IPAddress,
	}
	created, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating review")
	}

	s.recompute(ctx, input.ShopID)
	return created, nil
}

// ListShopReviews returns one public page, flagged reviews excluded.
func (s *service) ListShopReviews(ctx context.Context, params ListParams) (*ListResult, error) {
	order, err := parseSort(params.Sort)
	if err != nil {
		return nil, err
	}
	page := params.Params.Normalize(pagination.ReviewDefaultLimit)

	rows, total, err := s.repo.List(ctx, listQuery{
		shopID: params.ShopID,
		order:  order,
		limit:  page.Limit,
		offset: page.Offset(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reviews")
	}

	return &ListResult{Items: rows, Meta: pagination.NewMeta(page, total)}, nil
}

// ShopStats returns the live aggregate view computed from the review set
// itself, not from the shop's cached counters.
func (s *service) ShopStats(ctx context.Context, shopID uuid.UUID) (*Stats, error) {
	avg, total, err := s.repo.AggregateForShop(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating reviews")
	}
	distribution, err := s.repo.GroupByRating(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "grouping reviews")
	}
	recent, _, err := s.repo.List(ctx, listQuery{
		shopID: shopID,
		order:  defaultOrder,
		limit:  recentReviewsCount,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading recent reviews")
	}

	return &Stats{
		Average:      roundRating(avg, total),
		Total:        total,
		Distribution: distribution,
		Recent:       recent,
	}, nil
}

// FlagReview hides a review from public listings and aggregates. Only the
// reviewed shop's owner or an admin may flag. Flagging twice is a no-op.
func (s *service) FlagReview(ctx context.Context, actorID uuid.UUID, role enums.UserRole, reviewID uuid.UUID, reason string) (*models.Review, error) {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading review")
	}

	shop, err := s.shopsRepo.FindByID(ctx, review.ShopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading shop")
	}
	if err := ownership.AssertOwner(shop.OwnerID, actorID, role); err != nil {
		return nil, err
	}

	if review.IsFlagged {
		return review, nil
	}

	review.IsFlagged = true
	review.FlagReason = reason
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flagging review")
	}

	s.recompute(ctx, review.ShopID)
	return review, nil
}

// AdminListReviews lists reviews including flagged ones for moderation.
func (s *service) AdminListReviews(ctx context.Context, params AdminListParams) (*ListResult, error) {
	page := params.Params.Normalize(pagination.DefaultLimit)

	rows, total, err := s.repo.List(ctx, listQuery{
		shopID:         params.ShopID,
		flaggedOnly:    params.FlaggedOnly,
		includeFlagged: true,
		order:          defaultOrder,
		limit:          page.Limit,
		offset:         page.Offset(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reviews")
	}

	return &ListResult{Items: rows, Meta: pagination.NewMeta(page, total)}, nil
}

// DeleteReview permanently removes a review. Admin only.
func (s *service) DeleteReview(ctx context.Context, role enums.UserRole, reviewID uuid.UUID) error {
	if role != enums.UserRoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading review")
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting review")
	}

	s.recompute(ctx, review.ShopID)
	return nil
}

// recompute runs the aggregator after a review mutation. The primary write
// already happened, so a failure here is logged as a consistency gap and
// never surfaced to the caller.
func (s *service) recompute(ctx context.Context, shopID uuid.UUID) {
	if err := s.aggregator.Recompute(ctx, shopID); err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"shop_id": shopID.String(),
			"error":   err.Error(),
		})
		s.logg.Warn(ctx, "consistency.gap: rating aggregates stale after review write")
	}
}

func roundRating(avg float64, total int64) float64 {
	if total == 0 {
		return 0
	}
	rounded, _ := decimalRound1(avg)
	return rounded
}
