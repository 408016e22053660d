// Package ownership holds the single guard every mutating shop-scoped
// operation runs through before touching the shop or anything it owns.
package ownership

import (
	"github.com/google/uuid"

	"github.com/eastlify/eastlify-backend/pkg/enums"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
)

// AssertOwner returns nil when the actor owns the resource or holds the
// admin role. It is a pure predicate with no side effects.
func AssertOwner(ownerID, actorID uuid.UUID, role enums.UserRole) error {
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if role == enums.UserRoleAdmin {
		return nil
	}
	if ownerID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to manage this resource")
	}
	return nil
}
