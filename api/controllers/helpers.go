package controllers

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eastlify/eastlify-backend/api/middleware"
	"github.com/eastlify/eastlify-backend/api/validators"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	"github.com/eastlify/eastlify-backend/pkg/pagination"
)

// actorFromContext extracts the authenticated identity seeded by the auth
// middleware. Anonymous requests yield a Nil actor and empty role.
func actorFromContext(r *http.Request) (uuid.UUID, enums.UserRole) {
	actorID := uuid.Nil
	if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
		if parsed, err := uuid.Parse(raw); err == nil {
			actorID = parsed
		}
	}
	return actorID, enums.UserRole(middleware.RoleFromContext(r.Context()))
}

func requireActor(r *http.Request) (uuid.UUID, enums.UserRole, error) {
	actorID, role := actorFromContext(r)
	if actorID == uuid.Nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return actorID, role, nil
}

func parsePathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := validators.Normalize(chi.URLParam(r, param))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").
			WithDetails(map[string]string{"param": param})
	}
	return id, nil
}

// clientIPForAudit extracts the submitter address stored alongside reviews.
func clientIPForAudit(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func parsePagination(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 0, 0, 1_000_000)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}
