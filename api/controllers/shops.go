package controllers

import (
	"net/http"

	"github.com/eastlify/eastlify-backend/api/responses"
	"github.com/eastlify/eastlify-backend/api/validators"
	"github.com/eastlify/eastlify-backend/internal/activity"
	"github.com/eastlify/eastlify-backend/internal/shops"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	"github.com/eastlify/eastlify-backend/pkg/logger"
	"github.com/eastlify/eastlify-backend/pkg/types"
)

// ShopsList serves the public directory with filtering and pagination.
func ShopsList(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListShops(r.Context(), shops.ListParams{
			Category: validators.Normalize(r.URL.Query().Get("category")),
			Street:   validators.Normalize(r.URL.Query().Get("street")),
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

// ShopGet returns one shop's public profile.
func ShopGet(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := parsePathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.GetShop(r.Context(), shopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, shop)
	}
}

type createShopRequest struct {
	Name          string              `json:"name" validate:"required,min=2,max=120"`
	Description   string              `json:"description,omitempty" validate:"max=2000"`
	Categories    []string            `json:"categories,omitempty" validate:"max=10,dive,min=1,max=60"`
	Street        string              `json:"street" validate:"required,min=1,max=120"`
	BuildingFloor string              `json:"building_floor,omitempty" validate:"max=60"`
	Phone         string              `json:"phone,omitempty" validate:"max=30"`
	Email         string              `json:"email,omitempty" validate:"omitempty,email"`
	WhatsApp      string              `json:"whatsapp,omitempty" validate:"max=30"`
	WorkingHours  *types.WorkingHours `json:"working_hours,omitempty"`
}

// ShopCreate registers a shop for the authenticated user.
func ShopCreate(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createShopRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.CreateShop(r.Context(), actorID, shops.CreateShopInput{
			Name:          validators.SanitizeString(payload.Name, 120),
			Description:   validators.SanitizeString(payload.Description, 2000),
			Categories:    payload.Categories,
			Street:        validators.SanitizeString(payload.Street, 120),
			BuildingFloor: validators.SanitizeString(payload.BuildingFloor, 60),
			Phone:         validators.SanitizeString(payload.Phone, 30),
			Email:         validators.SanitizeString(payload.Email, 254),
			WhatsApp:      validators.SanitizeString(payload.WhatsApp, 30),
			WorkingHours:  payload.WorkingHours,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, shop)
	}
}

// MyShop returns the authenticated owner's shop.
func MyShop(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.GetMyShop(r.Context(), actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, shop)
	}
}

type updateShopRequest struct {
	Name          *string             `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description   *string             `json:"description,omitempty" validate:"omitempty,max=2000"`
	Categories    []string            `json:"categories,omitempty" validate:"omitempty,max=10,dive,min=1,max=60"`
	Street        *string             `json:"street,omitempty" validate:"omitempty,min=1,max=120"`
	BuildingFloor *string             `json:"building_floor,omitempty" validate:"omitempty,max=60"`
	Phone         *string             `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email         *string             `json:"email,omitempty" validate:"omitempty,email"`
	WhatsApp      *string             `json:"whatsapp,omitempty" validate:"omitempty,max=30"`
	ProfileImage  *string             `json:"profile_image,omitempty" validate:"omitempty,url"`
	CoverImage    *string             `json:"cover_image,omitempty" validate:"omitempty,url"`
	WorkingHours  *types.WorkingHours `json:"working_hours,omitempty"`
	IsActive      *bool               `json:"is_active,omitempty"`
}

// ShopUpdate adjusts the mutable shop fields. Owner or admin only.
func ShopUpdate(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopID, err := parsePathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateShopRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.UpdateShop(r.Context(), actorID, role, shopID, shops.UpdateShopInput{
			Name:          payload.Name,
			Description:   payload.Description,
			Categories:    payload.Categories,
			Street:        payload.Street,
			BuildingFloor: payload.BuildingFloor,
			Phone:         payload.Phone,
			Email:         payload.Email,
			WhatsApp:      payload.WhatsApp,
			ProfileImage:  payload.ProfileImage,
			CoverImage:    payload.CoverImage,
			WorkingHours:  payload.WorkingHours,
			IsActive:      payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, shop)
	}
}

// ShopDelete removes the shop. Owner or admin only.
func ShopDelete(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopID, err := parsePathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteShop(r.Context(), actorID, role, shopID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type recordActivityRequest struct {
	Type   string `json:"type" validate:"required"`
	Detail string `json:"detail,omitempty" validate:"max=500"`
	Item   string `json:"item,omitempty" validate:"max=200"`
	Amount any    `json:"amount,omitempty"`
}

// ShopActivityRecord ingests a contact or sale event for a shop. Anonymous
// visitors can report calls; sales require the owner's token.
func ShopActivityRecord(svc activity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role := actorFromContext(r)

		shopID, err := parsePathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordActivityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Record(r.Context(), actorID, role, activity.RecordInput{
			ShopID: shopID,
			Type:   enums.ActivityType(validators.Normalize(payload.Type)),
			Detail: validators.SanitizeString(payload.Detail, 500),
			Item:   validators.SanitizeString(payload.Item, 200),
			Amount: payload.Amount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ShopActivityList serves the owner-facing ledger for a shop.
func ShopActivityList(svc activity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopID, err := parsePathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), actorID, role, shopID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
