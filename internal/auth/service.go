package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eastlify/eastlify-backend/internal/shops"
	pkgauth "github.com/eastlify/eastlify-backend/pkg/auth"
	"github.com/eastlify/eastlify-backend/pkg/config"
	"github.com/eastlify/eastlify-backend/pkg/db/models"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	"github.com/eastlify/eastlify-backend/pkg/security"
)

type usersRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type shopCreator interface {
	CreateShop(ctx context.Context, actorID uuid.UUID, input shops.CreateShopInput) (*models.Shop, error)
}

// Service exposes registration, login, and profile management.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.User, error)
}

type service struct {
	usersRepo usersRepository
	shopsSvc  shopCreator
	jwtCfg    config.JWTConfig
	pwCfg     config.PasswordConfig
	now       func() time.Time
}

// RegisterInput holds the signup fields. A non-nil Shop registers the user
// as a shop owner and creates the shop in the same flow.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Shop     *shops.CreateShopInput
}

// UpdateProfileInput carries a partial profile update.
type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

// AuthResult bundles the minted token with the authenticated identity.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
	Shop  *models.Shop `json:"shop,omitempty"`
}

// NewService builds an auth service backed by the provided repositories and
// crypto configuration.
func NewService(usersRepo usersRepository, shopsSvc shopCreator, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) (Service, error) {
	if usersRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if shopsSvc == nil {
		return nil, fmt.Errorf("shop service required")
	}
	return &service{
		usersRepo: usersRepo,
		shopsSvc:  shopsSvc,
		jwtCfg:    jwtCfg,
		pwCfg:     pwCfg,
		now:       time.Now,
	}, nil
}

// Register creates the user, optionally the shop, and mints a token.
func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if _, err := s.usersRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking email")
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	role := enums.UserRoleCustomer
	if input.Shop != nil {
		role = enums.UserRoleShopOwner
	}
	user, err := s.usersRepo.Create(ctx, &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}

	var shop *models.Shop
	if input.Shop != nil {
		shop, err = s.shopsSvc.CreateShop(ctx, user.ID, *input.Shop)
		if err != nil {
			return nil, err
		}
		user.ShopID = &shop.ID
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user, Shop: shop}, nil
}

// Login verifies credentials and mints a token. Unknown emails and wrong
// passwords fail identically.
func (s *service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.usersRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.usersRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.usersRepo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating user")
	}
	return user, nil
}

func (s *service) mintToken(user *models.User) (string, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		ShopID: user.ShopID,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}
	return token, nil
}
