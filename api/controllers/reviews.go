package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/eastlify/eastlify-backend/api/responses"
	"github.com/eastlify/eastlify-backend/api/validators"
	"github.com/eastlify/eastlify-backend/internal/reviews"
	"github.com/eastlify/eastlify-backend/pkg/db/models"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	"github.com/eastlify/eastlify-backend/pkg/logger"
)

type createReviewRequest struct {
	Rating          int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText      string `json:"review_text,omitempty" validate:"max=1000"`
	InteractionType string `json:"interaction_type,omitempty"`
}

// ReviewCreate submits a review for a shop. Works for both authenticated
// users and anonymous visitors.
func ReviewCreate(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := parsePathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var userID *uuid.UUID
		if actorID, _ := actorFromContext(r); actorID != uuid.Nil {
			userID = &actorID
		}

		review, err := svc.CreateReview(r.Context(), reviews.CreateReviewInput{
			ShopID:          shopID,
			UserID:          userID,
			Rating:          payload.Rating,
			ReviewText:      validators.SanitizeString(payload.ReviewText, models.MaxReviewTextLen),
			InteractionType: enums.InteractionType(validators.Normalize(payload.InteractionType)),
			IPAddress:       clientIPForAudit(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ReviewsList serves the public review page for a shop.
func ReviewsList(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		result, err := svc.ListShopReviews(r.Context(), reviews.ListParams{
			ShopID: shopID,
			Sort:   validators.Normalize(r.URL.Query().Get("sort")),
			Params: params,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ReviewStats returns the live aggregate summary for a shop.
func ReviewStats(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := parsePathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.ShopStats(r.Context(), shopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}

type flagReviewRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// ReviewFlag hides a review from public view. Shop owner or admin only.
func ReviewFlag(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reviewID, err := parsePathUUID(r, "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload flagReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.FlagReview(r.Context(), actorID, role, reviewID, validators.SanitizeString(payload.Reason, 500))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, review)
	}
}

// AdminReviewsList serves the moderation queue, flagged reviews included.
func AdminReviewsList(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flaggedOnly, err := validators.ParseQueryBool(r, "flagged_only")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adminParams := reviews.AdminListParams{Params: params}
		if flaggedOnly != nil {
			adminParams.FlaggedOnly = *flaggedOnly
		}
		if raw := validators.Normalize(r.URL.Query().Get("shop_id")); raw != "" {
			shopID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid shop_id"))
				return
			}
			adminParams.ShopID = shopID
		}

		result, err := svc.AdminListReviews(r.Context(), adminParams)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ReviewDelete permanently removes a review. Admin only.
func ReviewDelete(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reviewID, err := parsePathUUID(r, "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteReview(r.Context(), role, reviewID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
