package products

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

type productsRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, opts listQuery) ([]models.Product, int64, error)
}

type shopsRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
}

// Service exposes product catalog management and public browsing.
type Service interface {
	CreateProduct(ctx context.Context, actorID uuid.UUID, input CreateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, params ListParams) (*ListResult, error)
	ListMyProducts(ctx context.Context, actorID uuid.UUID, params ListParams) (*ListResult, error)
	UpdateProduct(ctx context.Context, actorID uuid.UUID, role enums.UserRole, productID uuid.UUID, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, actorID uuid.UUID, role enums.UserRole, productID uuid.UUID) error
}

type service struct {
	repo      productsRepository
	shopsRepo shopsRepository
}

// CreateProductInput holds the fields accepted when adding a product.
type CreateProductInput struct {
	Name           string
	Description    string
	Price          float64
	CompareAtPrice *float64
	Category       string
	Images         []string
	Stock          int
	Tags           []string
	Variants       []types.Variant
}

// UpdateProductInput carries a partial update. Nil fields are left
// untouched.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *float64
	CompareAtPrice *float64
	Category       *string
	Images         []string
	Stock          *int
	InStock        *bool
	IsActive       *bool
	Tags           []string
	Variants       []types.Variant
}

// NewService builds a product service backed by the provided repositories.
func NewService(repo productsRepository, shopsRepo shopsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if shopsRepo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{repo: repo, shopsRepo: shopsRepo}, nil
}

// CreateProduct adds a product to the acting user's own shop.
func (s *service) CreateProduct(ctx context.Context, actorID uuid.UUID, input CreateProductInput) (*models.Product, error) {
	shop, err := s.shopsRepo.FindByOwner(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no shop for user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading shop")
	}

	if err := validateProductInput(input.Price, input.CompareAtPrice, input.Images); err != nil {
		return nil, err
	}

	product := &models.Product{
		ShopID:         shop.ID,
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		CompareAtPrice: input.CompareAtPrice,
		Category:       input.Category,
		Images:         input.Images,
		Stock:          input.Stock,
		InStock:        input.Stock > 0,
		IsActive:       true,
		Tags:           input.Tags,
		Variants:       input.Variants,
	}
	applyVariantFlags(product)

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return created, nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

// ListProducts returns one public page of active products.
func (s *service) ListProducts(ctx context.Context, params ListParams) (*ListResult, error) {
	page := params.Params.Normalize(pagination.DefaultLimit)

	rows, total, err := s.repo.List(ctx, listQuery{
		shopID:   params.ShopID,
		category: params.Category,
		search:   params.Search,
		minPrice: params.MinPrice,
		maxPrice: params.MaxPrice,
		inStock:  params.InStock,
		limit:    page.Limit,
		offset:   page.Offset(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	return &ListResult{Items: rows, Meta: pagination.NewMeta(page, total)}, nil
}

// ListMyProducts returns the acting owner's catalog, inactive products
// included.
func (s *service) ListMyProducts(ctx context.Context, actorID uuid.UUID, params ListParams) (*ListResult, error) {
	shop, err := s.shopsRepo.FindByOwner(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no shop for user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading shop")
	}

	page := params.Params.Normalize(pagination.DefaultLimit)
	rows, total, err := s.repo.List(ctx, listQuery{
		shopID:     shop.ID,
		category:   params.Category,
		search:     params.Search,
		includeAll: true,
		limit:      page.Limit,
		offset:     page.Offset(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	return &ListResult{Items: rows, Meta: pagination.NewMeta(page, total)}, nil
}

func (s *service) UpdateProduct(ctx context.Context, actorID uuid.UUID, role enums.UserRole, productID uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, shop, err := s.loadProductWithShop(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := ownership.AssertOwner(shop.OwnerID, actorID, role); err != nil {
		return nil, err
	}

	applyProductUpdate(product, input)
	if err := validateProductInput(product.Price, product.CompareAtPrice, product.Images); err != nil {
		return nil, err
	}
	applyVariantFlags(product)

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, actorID uuid.UUID, role enums.UserRole, productID uuid.UUID) error {
	_, shop, err := s.loadProductWithShop(ctx, productID)
	if err != nil {
		return err
	}
	if err := ownership.AssertOwner(shop.OwnerID, actorID, role); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	return nil
}

func (s *service) loadProductWithShop(ctx context.Context, productID uuid.UUID) (*models.Product, *models.Shop, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	shop, err := s.shopsRepo.FindByID(ctx, product.ShopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading shop")
	}
	return product, shop, nil
}

func validateProductInput(price float64, compareAt *float64, images []string) error {
	if price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if compareAt != nil && *compareAt < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "compare-at price must not be negative")
	}
	if len(images) > models.MaxProductImages {
		return pkgerrors.New(pkgerrors.CodeValidation, "too many images").
			WithDetails(map[string]int{"max_images": models.MaxProductImages})
	}
	return nil
}

func applyProductUpdate(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.CompareAtPrice != nil {
		product.CompareAtPrice = input.CompareAtPrice
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
		product.InStock = *input.Stock > 0
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	if input.Variants != nil {
		product.Variants = input.Variants
	}
}

func applyVariantFlags(product *models.Product) {
	product.HasSizes = false
	product.HasColors = false
	for _, variant := range product.Variants {
		if variant.Size != "" {
			product.HasSizes = true
		}
		if variant.Color != "" {
			product.HasColors = true
		}
	}
}
