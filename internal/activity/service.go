package activity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	"github.com/eastlify/eastlify-backend/pkg/logger"
	"github.com/eastlify/eastlify-backend/pkg/ownership"
	pkgpagination "github.com/eastlify/eastlify-backend/pkg/pagination"
)

type activitiesRepository interface {
	Append(ctx context.Context, entry *models.Activity) (*models.Activity, error)
	ListByShop(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.Activity, int64, error)
}

type shopCounters interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	IncrementCalls(ctx context.Context, shopID uuid.UUID) error
	IncrementSales(ctx context.Context, shopID uuid.UUID, amount decimal.Decimal) error
}

// Service records shop activity events and serves the owner-facing ledger.
type Service interface {
	Record(ctx context.Context, actorID uuid.UUID, role enums.UserRole, input RecordInput) (*RecordResult, error)
	List(ctx context.Context, actorID uuid.UUID, role enums.UserRole, shopID uuid.UUID, params pkgpagination.Params) (*ListResult, error)
}

type service struct {
	repo  activitiesRepository
	shops shopCounters
	logg  *logger.Logger
}

// RecordInput holds one incoming activity event. Amount carries the raw
// request value and is only meaningful for sales.
type RecordInput struct {
	ShopID uuid.UUID
	Type   enums.ActivityType
	Detail string
	Item   string
	Amount any
}

// RecordResult returns the stored entry plus the shop's counter values
// after the event was applied.
type RecordResult struct {
	Activity     *models.Activity `json:"activity"`
	TotalCalls   int              `json:"total_calls"`
	Sales        decimal.Decimal  `json:"sales"`
	Orders       int              `json:"orders"`
	LedgerMissed bool             `json:"-"`
}

// ListResult is the page envelope for the owner ledger view.
type ListResult struct {
	Items []models.Activity `json:"items"`
	pkgpagination.Meta
}

// NewService builds an activity service backed by the provided repositories.
func NewService(repo activitiesRepository, shops shopCounters, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop counters required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, shops: shops, logg: logg}, nil
}

// Record applies one activity event. Calls and WhatsApp taps bump
// total_calls for anyone; sales are owner-only and bump sales and orders.
// The counter update is the primary write; the ledger append runs after it
// and a ledger failure is logged as a consistency gap rather than failing
// the request.
func (s *service) Record(ctx context.Context, actorID uuid.UUID, role enums.UserRole, input RecordInput) (*RecordResult, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown activity type").
			WithDetails(map[string]string{"type": string(input.Type)})
	}

	shop, err := s.shops.FindByID(ctx, input.ShopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading shop")
	}

	amount := decimal.Zero
	switch input.Type {
	case enums.ActivityTypeCall, enums.ActivityTypeWhatsApp:
		if err := s.shops.IncrementCalls(ctx, input.ShopID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "incrementing calls")
		}
	case enums.ActivityTypeSale:
		if err := ownership.AssertOwner(shop.OwnerID, actorID, role); err != nil {
			return nil, err
		}
		amount = CoerceAmount(input.Amount)
		if err := s.shops.IncrementSales(ctx, input.ShopID, amount); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "incrementing sales")
		}
	}

	result := &RecordResult{}
	entry := &models.Activity{
		ShopID: input.ShopID,
		Type:   input.Type,
		Detail: input.Detail,
		Item:   input.Item,
		Amount: amount,
	}
	stored, err := s.repo.Append(ctx, entry)
	if err != nil {
		fields := map[string]any{
			"shop_id": input.ShopID.String(),
			"type":    string(input.Type),
			"error":   err.Error(),
		}
		s.logg.Warn(s.logg.WithFields(ctx, fields), "consistency.gap: counters updated but ledger append failed")
		result.LedgerMissed = true
		result.Activity = entry
	} else {
		result.Activity = stored
	}

	updated, err := s.shops.FindByID(ctx, input.ShopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading shop counters")
	}
	result.TotalCalls = updated.TotalCalls
	result.Sales = updated.Sales
	result.Orders = updated.Orders
	return result, nil
}

// List returns one page of the shop's ledger. Owner or admin only.
func (s *service) List(ctx context.Context, actorID uuid.UUID, role enums.UserRole, shopID uuid.UUID, params pkgpagination.Params) (*ListResult, error) {
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading shop")
	}
	if err := ownership.AssertOwner(shop.OwnerID, actorID, role); err != nil {
		return nil, err
	}

	page := params.Normalize(pkgpagination.DefaultLimit)
	rows, total, err := s.repo.ListByShop(ctx, shopID, page.Limit, page.Offset())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing activity")
	}

	return &ListResult{Items: rows, Meta: pkgpagination.NewMeta(page, total)}, nil
}
