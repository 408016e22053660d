package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/eastlify/eastlify-backend/api/responses"
	"github.com/eastlify/eastlify-backend/api/validators"
	"github.com/eastlify/eastlify-backend/internal/products"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	"github.com/eastlify/eastlify-backend/pkg/logger"
	"github.com/eastlify/eastlify-backend/pkg/types"
)

// ProductsList serves the public catalog with filtering and pagination.
func ProductsList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		minPrice, err := validators.ParseQueryFloat(r, "min_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryFloat(r, "max_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inStock, err := validators.ParseQueryBool(r, "in_stock")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listParams := products.ListParams{
			Category: validators.Normalize(r.URL.Query().Get("category")),
			Search:   validators.Normalize(r.URL.Query().Get("search")),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
			InStock:  inStock,
			Params:   params,
		}
		if raw := validators.Normalize(r.URL.Query().Get("shop_id")); raw != "" {
			shopID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid shop_id"))
				return
			}
			listParams.ShopID = shopID
		}

		result, err := svc.ListProducts(r.Context(), listParams)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductGet returns one product.
func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parsePathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	Name           string          `json:"name" validate:"required,min=2,max=200"`
	Description    string          `json:"description,omitempty" validate:"max=5000"`
	Price          float64         `json:"price" validate:"gte=0"`
	CompareAtPrice *float64        `json:"compare_at_price,omitempty" validate:"omitempty,gte=0"`
	Category       string          `json:"category" validate:"required,min=1,max=60"`
	Images         []string        `json:"images,omitempty" validate:"max=5,dive,url"`
	Stock          int             `json:"stock,omitempty" validate:"gte=0"`
	Tags           []string        `json:"tags,omitempty" validate:"max=20,dive,min=1,max=40"`
	Variants       []types.Variant `json:"variants,omitempty" validate:"max=50"`
}

// ProductCreate adds a product to the caller's shop.
func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), actorID, products.CreateProductInput{
			Name:           validators.SanitizeString(payload.Name, 200),
			Description:    validators.SanitizeString(payload.Description, 5000),
			Price:          payload.Price,
			CompareAtPrice: payload.CompareAtPrice,
			Category:       validators.SanitizeString(payload.Category, 60),
			Images:         payload.Images,
			Stock:          payload.Stock,
			Tags:           payload.Tags,
			Variants:       payload.Variants,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// MyProducts lists the caller's full catalog including inactive items.
func MyProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListMyProducts(r.Context(), actorID, products.ListParams{
			Category: validators.Normalize(r.URL.Query().Get("category")),
			Search:   validators.Normalize(r.URL.Query().Get("search")),
			Params:   params,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type updateProductRequest struct {
	Name           *string         `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description    *string         `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price          *float64        `json:"price,omitempty" validate:"omitempty,gte=0"`
	CompareAtPrice *float64        `json:"compare_at_price,omitempty" validate:"omitempty,gte=0"`
	Category       *string         `json:"category,omitempty" validate:"omitempty,min=1,max=60"`
	Images         []string        `json:"images,omitempty" validate:"omitempty,max=5,dive,url"`
	Stock          *int            `json:"stock,omitempty" validate:"omitempty,gte=0"`
	InStock        *bool           `json:"in_stock,omitempty"`
	IsActive       *bool           `json:"is_active,omitempty"`
	Tags           []string        `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=40"`
	Variants       []types.Variant `json:"variants,omitempty" validate:"omitempty,max=50"`
}

// ProductUpdate adjusts the mutable product fields. Owner or admin only.
func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := parsePathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), actorID, role, productID, products.UpdateProductInput{
			Name:           payload.Name,
			Description:    payload.Description,
			Price:          payload.Price,
			CompareAtPrice: payload.CompareAtPrice,
			Category:       payload.Category,
			Images:         payload.Images,
			Stock:          payload.Stock,
			InStock:        payload.InStock,
			IsActive:       payload.IsActive,
			Tags:           payload.Tags,
			Variants:       payload.Variants,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes a product. Owner or admin only.
func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := parsePathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), actorID, role, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
