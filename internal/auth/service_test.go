package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/internal/shops"
	pkgauth "github.com/eastlify/eastlify-backend/pkg/auth"
	"github.com/eastlify/eastlify-backend/pkg/config"
	"github.com/eastlify/eastlify-backend/pkg/db/models"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
)

type stubUsersRepo struct {
	users map[uuid.UUID]*models.User
}

func newStubUsersRepo() *stubUsersRepo {
	return &stubUsersRepo{users: map[uuid.UUID]*models.User{}}
}

func (s *stubUsersRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *stubUsersRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsersRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsersRepo) Update(_ context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

type stubShopCreator struct {
	created *models.Shop
}

func (s *stubShopCreator) CreateShop(_ context.Context, actorID uuid.UUID, input shops.CreateShopInput) (*models.Shop, error) {
	s.created = &models.Shop{
		ID:      uuid.New(),
		OwnerID: actorID,
		Name:    input.Name,
		Street:  input.Street,
	}
	return s.created, nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "eastlify",
		ExpirationMinutes: 60,
	}
	// small argon params keep the test fast
	pwCfg := config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	return jwtCfg, pwCfg
}

func newAuthService(t *testing.T, usersRepo *stubUsersRepo, creator *stubShopCreator) Service {
	t.Helper()
	jwtCfg, pwCfg := testConfigs()
	svc, err := NewService(usersRepo, creator, jwtCfg, pwCfg)
	require.NoError(t, err)
	return svc
}

func TestRegisterCustomer(t *testing.T) {
	usersRepo := newStubUsersRepo()
	svc := newAuthService(t, usersRepo, &stubShopCreator{})

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Nia",
		Email:    "nia@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, enums.UserRoleCustomer, result.User.Role)
	assert.Nil(t, result.Shop)
	assert.NotEqual(t, "hunter22", result.User.PasswordHash)
}

func TestRegisterShopOwnerCreatesShop(t *testing.T) {
	usersRepo := newStubUsersRepo()
	creator := &stubShopCreator{}
	svc := newAuthService(t, usersRepo, creator)

	jwtCfg, _ := testConfigs()
	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Omar",
		Email:    "omar@example.com",
		Password: "hunter22",
		Shop: &shops.CreateShopInput{
			Name:   "Omar's Spices",
			Street: "food-court",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enums.UserRoleShopOwner, result.User.Role)
	require.NotNil(t, result.Shop)
	assert.Equal(t, result.User.ID, result.Shop.OwnerID)

	claims, err := pkgauth.ParseAccessToken(jwtCfg, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	require.NotNil(t, claims.ShopID)
	assert.Equal(t, result.Shop.ID, *claims.ShopID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	usersRepo := newStubUsersRepo()
	svc := newAuthService(t, usersRepo, &stubShopCreator{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "dup@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "dup@example.com", Password: "hunter22"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestLogin(t *testing.T) {
	usersRepo := newStubUsersRepo()
	svc := newAuthService(t, usersRepo, &stubShopCreator{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Nia", Email: "nia@example.com", Password: "hunter22"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "nia@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	// wrong password and unknown email fail identically
	_, badPass := svc.Login(ctx, "nia@example.com", "wrong")
	_, badEmail := svc.Login(ctx, "ghost@example.com", "hunter22")
	for _, err := range []error{badPass, badEmail} {
		require.Error(t, err)
		typed := pkgerrors.As(err)
		assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
		assert.Equal(t, "invalid credentials", typed.Message())
	}
}

func TestUpdateProfile(t *testing.T) {
	usersRepo := newStubUsersRepo()
	svc := newAuthService(t, usersRepo, &stubShopCreator{})
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Name: "Old", Email: "p@example.com", Password: "hunter22"})
	require.NoError(t, err)

	name, phone := "New", "+15550002222"
	updated, err := svc.UpdateProfile(ctx, registered.User.ID, UpdateProfileInput{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "+15550002222", updated.Phone)

	_, err = svc.UpdateProfile(ctx, uuid.New(), UpdateProfileInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
