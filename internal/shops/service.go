package shops

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	"github.com/eastlify/eastlify-backend/pkg/ownership"
	"github.com/eastlify/eastlify-backend/pkg/pagination"
	"github.com/eastlify/eastlify-backend/pkg/types"
)

type shopsRepository interface {
	Create(ctx context.Context, shop *models.Shop) (*models.Shop, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, opts listQuery) ([]models.Shop, int64, error)
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetShop(ctx context.Context, userID uuid.UUID, shopID *uuid.UUID) error
}

// Service exposes shop registration, lookup, listing, and lifecycle semantics.
type Service interface {
	CreateShop(ctx context.Context, actorID uuid.UUID, input CreateShopInput) (*models.Shop, error)
	GetShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error)
	GetMyShop(ctx context.Context, actorID uuid.UUID) (*models.Shop, error)
	ListShops(ctx context.Context, params ListParams) (*ListResult, error)
	UpdateShop(ctx context.Context, actorID uuid.UUID, role enums.UserRole, shopID uuid.UUID, input UpdateShopInput) (*models.Shop, error)
	DeleteShop(ctx context.Context, actorID uuid.UUID, role enums.UserRole, shopID uuid.UUID) error
}

type service struct {
	repo      shopsRepository
	usersRepo usersRepository
}

// CreateShopInput holds the fields accepted when registering a shop.
type CreateShopInput struct {
	Name          string
	Description   string
	Categories    []string
	Street        string
	BuildingFloor string
	Phone         string
	Email         string
	WhatsApp      string
	WorkingHours  *types.WorkingHours
}

// UpdateShopInput carries a partial update. Nil fields are left untouched.
type UpdateShopInput struct {
	Name          *string
	Description   *string
	Categories    []string
	Street        *string
	BuildingFloor *string
	Phone         *string
	Email         *string
	WhatsApp      *string
	ProfileImage  *string
	CoverImage    *string
	WorkingHours  *types.WorkingHours
	IsActive      *bool
}

// NewService builds a shop service backed by the provided repositories.
func NewService(repo shopsRepository, usersRepo usersRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, usersRepo: usersRepo}, nil
}

// CreateShop registers a shop for the acting user and mirrors the link onto
// the user row. A user can own at most one shop.
func (s *service) CreateShop(ctx context.Context, actorID uuid.UUID, input CreateShopInput) (*models.Shop, error) {
	user, err := s.usersRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	if _, err := s.repo.FindByOwner(ctx, actorID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already owns a shop")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking existing shop")
	}

	shop := &models.Shop{
		OwnerID:       actorID,
		Name:          input.Name,
		Description:   input.Description,
		Categories:    input.Categories,
		Street:        input.Street,
		BuildingFloor: input.BuildingFloor,
		Phone:         input.Phone,
		Email:         input.Email,
		WhatsApp:      input.WhatsApp,
		WorkingHours:  types.DefaultWorkingHours(),
		IsActive:      true,
	}
	if input.WorkingHours != nil {
		shop.WorkingHours = *input.WorkingHours
	}
	// contact details fall back to the owner's
	if shop.Phone == "" {
		shop.Phone = user.Phone
	}
	if shop.Email == "" {
		shop.Email = user.Email
	}

	created, err := s.repo.Create(ctx, shop)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating shop")
	}

	if err := s.usersRepo.SetShop(ctx, actorID, &created.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "linking shop to user")
	}
	if user.Role == enums.UserRoleCustomer {
		user.Role = enums.UserRoleShopOwner
		if err := s.usersRepo.Update(ctx, user); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promoting user role")
		}
	}
	return created, nil
}

func (s *service) GetShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	shop, err := s.repo.FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading shop")
	}
	return shop, nil
}

func (s *service) GetMyShop(ctx context.Context, actorID uuid.UUID) (*models.Shop, error) {
	shop, err := s.repo.FindByOwner(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no shop for user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading shop")
	}
	return shop, nil
}

// ListShops returns one page of active shops plus pagination metadata. The
// total is computed against the same predicate as the page itself.
func (s *service) ListShops(ctx context.Context, params ListParams) (*ListResult, error) {
	page := params.Params.Normalize(pagination.DefaultLimit)

	rows, total, err := s.repo.List(ctx, listQuery{
		category: params.Category,
		street:   params.Street,
		search:   params.Search,
		limit:    page.Limit,
		offset:   page.Offset(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing shops")
	}

	return &ListResult{
		Items: rows,
		Meta:  pagination.NewMeta(page, total),
	}, nil
}

func (s *service) UpdateShop(ctx context.Context, actorID uuid.UUID, role enums.UserRole, shopID uuid.UUID, input UpdateShopInput) (*models.Shop, error) {
	shop, err := s.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := ownership.AssertOwner(shop.OwnerID, actorID, role); err != nil {
		return nil, err
	}

	applyShopUpdate(shop, input)

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating shop")
	}
	return shop, nil
}

// DeleteShop removes the shop and clears the owner's back-reference.
func (s *service) DeleteShop(ctx context.Context, actorID uuid.UUID, role enums.UserRole, shopID uuid.UUID) error {
	shop, err := s.GetShop(ctx, shopID)
	if err != nil {
		return err
	}
	if err := ownership.AssertOwner(shop.OwnerID, actorID, role); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shopID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting shop")
	}
	if err := s.usersRepo.SetShop(ctx, shop.OwnerID, nil); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unlinking shop from user")
	}
	return nil
}

func applyShopUpdate(shop *models.Shop, input UpdateShopInput) {
	if input.Name != nil {
		shop.Name = *input.Name
	}
	if input.Description != nil {
		shop.Description = *input.Description
	}
	if input.Categories != nil {
		shop.Categories = input.Categories
	}
	if input.Street != nil {
		shop.Street = *input.Street
	}
	if input.BuildingFloor != nil {
		shop.BuildingFloor = *input.BuildingFloor
	}
	if input.Phone != nil {
		shop.Phone = *input.Phone
	}
	if input.Email != nil {
		shop.Email = *input.Email
	}
	if input.WhatsApp != nil {
		shop.WhatsApp = *input.WhatsApp
	}
	if input.ProfileImage != nil {
		shop.ProfileImage = *input.ProfileImage
	}
	if input.CoverImage != nil {
		shop.CoverImage = *input.CoverImage
	}
	if input.WorkingHours != nil {
		shop.WorkingHours = *input.WorkingHours
	}
	if input.IsActive != nil {
		shop.IsActive = *input.IsActive
	}
}
