package shops

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/pkg/db/models"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	"github.com/eastlify/eastlify-backend/pkg/pagination"
)

type stubShopsRepo struct {
	shops     map[uuid.UUID]*models.Shop
	listRows  []models.Shop
	listTotal int64
	lastQuery listQuery
	deleted   []uuid.UUID
}

func newStubShopsRepo() *stubShopsRepo {
	return &stubShopsRepo{shops: map[uuid.UUID]*models.Shop{}}
}

func (s *stubShopsRepo) Create(_ context.Context, shop *models.Shop) (*models.Shop, error) {
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	s.shops[shop.ID] = shop
	return shop, nil
}

func (s *stubShopsRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Shop, error) {
	if shop, ok := s.shops[id]; ok {
		return shop, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubShopsRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	for _, shop := range s.shops {
		if shop.OwnerID == ownerID {
			return shop, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubShopsRepo) Update(_ context.Context, shop *models.Shop) error {
	s.shops[shop.ID] = shop
	return nil
}

func (s *stubShopsRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.shops, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubShopsRepo) List(_ context.Context, opts listQuery) ([]models.Shop, int64, error) {
	s.lastQuery = opts
	return s.listRows, s.listTotal, nil
}

type stubUsersRepo struct {
	users    map[uuid.UUID]*models.User
	shopRefs map[uuid.UUID]*uuid.UUID
}

func newStubUsersRepo(seed ...*models.User) *stubUsersRepo {
	repo := &stubUsersRepo{
		users:    map[uuid.UUID]*models.User{},
		shopRefs: map[uuid.UUID]*uuid.UUID{},
	}
	for _, u := range seed {
		repo.users[u.ID] = u
	}
	return repo
}

func (s *stubUsersRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsersRepo) Update(_ context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUsersRepo) SetShop(_ context.Context, userID uuid.UUID, shopID *uuid.UUID) error {
	s.shopRefs[userID] = shopID
	return nil
}

func TestCreateShopLinksOwner(t *testing.T) {
	owner := &models.User{
		ID:    uuid.New(),
		Name:  "Lena",
		Email: "lena@example.com",
		Phone: "+15550001111",
		Role:  enums.UserRoleCustomer,
	}
	shopsRepo := newStubShopsRepo()
	usersRepo := newStubUsersRepo(owner)

	svc, err := NewService(shopsRepo, usersRepo)
	require.NoError(t, err)

	created, err := svc.CreateShop(context.Background(), owner.ID, CreateShopInput{
		Name:   "Lena's Leather",
		Street: "old-town",
	})
	require.NoError(t, err)

	// owner contact details fill the gaps
	assert.Equal(t, owner.Phone, created.Phone)
	assert.Equal(t, owner.Email, created.Email)
	assert.Equal(t, "08:00", created.WorkingHours.Open)

	require.NotNil(t, usersRepo.shopRefs[owner.ID])
	assert.Equal(t, created.ID, *usersRepo.shopRefs[owner.ID])
	assert.Equal(t, enums.UserRoleShopOwner, usersRepo.users[owner.ID].Role)
}

func TestCreateShopRejectsSecondShop(t *testing.T) {
	owner := &models.User{ID: uuid.New(), Role: enums.UserRoleShopOwner}
	shopsRepo := newStubShopsRepo()
	shopsRepo.shops[uuid.New()] = &models.Shop{ID: uuid.New(), OwnerID: owner.ID}

	svc, err := NewService(shopsRepo, newStubUsersRepo(owner))
	require.NoError(t, err)

	_, err = svc.CreateShop(context.Background(), owner.ID, CreateShopInput{Name: "Second"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestUpdateShopOwnershipGuard(t *testing.T) {
	ownerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: ownerID, Name: "Before"}
	shopsRepo := newStubShopsRepo()
	shopsRepo.shops[shop.ID] = shop

	svc, err := NewService(shopsRepo, newStubUsersRepo())
	require.NoError(t, err)
	ctx := context.Background()

	name := "After"
	_, err = svc.UpdateShop(ctx, uuid.New(), enums.UserRoleShopOwner, shop.ID, UpdateShopInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
	assert.Equal(t, "Before", shopsRepo.shops[shop.ID].Name)

	// admins bypass the guard
	updated, err := svc.UpdateShop(ctx, uuid.New(), enums.UserRoleAdmin, shop.ID, UpdateShopInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
}

func TestDeleteShopClearsUserLink(t *testing.T) {
	ownerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: ownerID}
	shopsRepo := newStubShopsRepo()
	shopsRepo.shops[shop.ID] = shop
	usersRepo := newStubUsersRepo()

	svc, err := NewService(shopsRepo, usersRepo)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShop(context.Background(), ownerID, enums.UserRoleShopOwner, shop.ID))
	assert.Contains(t, shopsRepo.deleted, shop.ID)

	ref, ok := usersRepo.shopRefs[ownerID]
	require.True(t, ok)
	assert.Nil(t, ref)
}

func TestListShopsNormalizesPagination(t *testing.T) {
	shopsRepo := newStubShopsRepo()
	shopsRepo.listRows = []models.Shop{{ID: uuid.New()}}
	shopsRepo.listTotal = 41

	svc, err := NewService(shopsRepo, newStubUsersRepo())
	require.NoError(t, err)

	result, err := svc.ListShops(context.Background(), ListParams{
		Category: "electronics",
		Params:   pagination.Params{Page: 0, Limit: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, pagination.DefaultLimit, result.Limit)
	assert.EqualValues(t, 41, result.Total)
	assert.EqualValues(t, 3, result.TotalPages)
	assert.Equal(t, "electronics", shopsRepo.lastQuery.category)
	assert.Zero(t, shopsRepo.lastQuery.offset)
}
