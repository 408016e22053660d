package controllers

import (
	"net/http"

	"github.com/eastlify/eastlify-backend/api/responses"
	"github.com/eastlify/eastlify-backend/api/validators"
	"github.com/eastlify/eastlify-backend/internal/auth"
	"github.com/eastlify/eastlify-backend/internal/shops"
	"github.com/eastlify/eastlify-backend/pkg/logger"
)

type registerShopRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=120"`
	Description   string   `json:"description,omitempty" validate:"max=2000"`
	Categories    []string `json:"categories,omitempty" validate:"max=10,dive,min=1,max=60"`
	Street        string   `json:"street" validate:"required,min=1,max=120"`
	BuildingFloor string   `json:"building_floor,omitempty" validate:"max=60"`
	Phone         string   `json:"phone,omitempty" validate:"max=30"`
	Email         string   `json:"email,omitempty" validate:"omitempty,email"`
	WhatsApp      string   `json:"whatsapp,omitempty" validate:"max=30"`
}

type registerRequest struct {
	Name     string               `json:"name" validate:"required,min=2,max=120"`
	Email    string               `json:"email" validate:"required,email"`
	Phone    string               `json:"phone,omitempty" validate:"max=30"`
	Password string               `json:"password" validate:"required,min=8,max=128"`
	Shop     *registerShopRequest `json:"shop,omitempty"`
}

func (r registerRequest) toInput() auth.RegisterInput {
	input := auth.RegisterInput{
		Name:     validators.SanitizeString(r.Name, 120),
		Email:    validators.SanitizeString(r.Email, 254),
		Phone:    validators.SanitizeString(r.Phone, 30),
		Password: r.Password,
	}
	if r.Shop != nil {
		input.Shop = &shops.CreateShopInput{
			Name:          validators.SanitizeString(r.Shop.Name, 120),
			Description:   validators.SanitizeString(r.Shop.Description, 2000),
			Categories:    r.Shop.Categories,
			Street:        validators.SanitizeString(r.Shop.Street, 120),
			BuildingFloor: validators.SanitizeString(r.Shop.BuildingFloor, 60),
			Phone:         validators.SanitizeString(r.Shop.Phone, 30),
			Email:         validators.SanitizeString(r.Shop.Email, 254),
			WhatsApp:      validators.SanitizeString(r.Shop.WhatsApp, 30),
		}
	}
	return input
}

// Register creates an account, optionally with a shop, and returns a token.
func Register(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges credentials for a token.
func Login(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// Profile returns the authenticated user.
func Profile(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Profile(r.Context(), actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

type updateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// UpdateProfile adjusts the mutable profile fields.
func UpdateProfile(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateProfile(r.Context(), actorID, auth.UpdateProfileInput{
			Name:  payload.Name,
			Phone: payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}
