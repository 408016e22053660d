package ownership

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eastlify/eastlify-backend/pkg/enums"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
)

func TestAssertOwner(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name     string
		actor    uuid.UUID
		role     enums.UserRole
		wantCode pkgerrors.Code
	}{
		{name: "owner passes", actor: owner, role: enums.UserRoleShopOwner},
		{name: "admin passes without owning", actor: stranger, role: enums.UserRoleAdmin},
		{name: "stranger is forbidden", actor: stranger, role: enums.UserRoleShopOwner, wantCode: pkgerrors.CodeForbidden},
		{name: "customer is forbidden", actor: stranger, role: enums.UserRoleCustomer, wantCode: pkgerrors.CodeForbidden},
		{name: "missing identity is unauthorized", actor: uuid.Nil, role: enums.UserRoleShopOwner, wantCode: pkgerrors.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertOwner(owner, tt.actor, tt.role)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, tt.wantCode, typed.Code())
		})
	}
}
