package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eastlify/eastlify-backend/internal/activity"
	"github.com/eastlify/eastlify-backend/internal/auth"
	"github.com/eastlify/eastlify-backend/internal/products"
	"github.com/eastlify/eastlify-backend/internal/reviews"
	"github.com/eastlify/eastlify-backend/internal/shops"
	pkgauth "github.com/eastlify/eastlify-backend/pkg/auth"
	"github.com/eastlify/eastlify-backend/pkg/config"
	"github.com/eastlify/eastlify-backend/pkg/db/models"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	"github.com/eastlify/eastlify-backend/pkg/logger"
	"github.com/eastlify/eastlify-backend/pkg/pagination"
	"github.com/eastlify/eastlify-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return &auth.AuthResult{Token: "token", User: &models.User{}}, nil
}

func (stubAuthService) Login(ctx context.Context, email, password string) (*auth.AuthResult, error) {
	return &auth.AuthResult{Token: "token", User: &models.User{}}, nil
}

func (stubAuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return &models.User{ID: userID}, nil
}

func (stubAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input auth.UpdateProfileInput) (*models.User, error) {
	return &models.User{ID: userID}, nil
}

type stubShopsService struct{}

func (stubShopsService) CreateShop(ctx context.Context, actorID uuid.UUID, input shops.CreateShopInput) (*models.Shop, error) {
	return &models.Shop{ID: uuid.New(), OwnerID: actorID}, nil
}

func (stubShopsService) GetShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	return &models.Shop{ID: shopID}, nil
}

func (stubShopsService) GetMyShop(ctx context.Context, actorID uuid.UUID) (*models.Shop, error) {
	return &models.Shop{OwnerID: actorID}, nil
}

func (stubShopsService) ListShops(ctx context.Context, params shops.ListParams) (*shops.ListResult, error) {
	return &shops.ListResult{Items: []models.Shop{}}, nil
}

func (stubShopsService) UpdateShop(ctx context.Context, actorID uuid.UUID, role enums.UserRole, shopID uuid.UUID, input shops.UpdateShopInput) (*models.Shop, error) {
	return &models.Shop{ID: shopID}, nil
}

func (stubShopsService) DeleteShop(ctx context.Context, actorID uuid.UUID, role enums.UserRole, shopID uuid.UUID) error {
	return nil
}

type stubProductsService struct{}

func (stubProductsService) CreateProduct(ctx context.Context, actorID uuid.UUID, input products.CreateProductInput) (*models.Product, error) {
	return &models.Product{ID: uuid.New()}, nil
}

func (stubProductsService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return &models.Product{ID: productID}, nil
}

func (stubProductsService) ListProducts(ctx context.Context, params products.ListParams) (*products.ListResult, error) {
	return &products.ListResult{Items: []models.Product{}}, nil
}

func (stubProductsService) ListMyProducts(ctx context.Context, actorID uuid.UUID, params products.ListParams) (*products.ListResult, error) {
	return &products.ListResult{Items: []models.Product{}}, nil
}

func (stubProductsService) UpdateProduct(ctx context.Context, actorID uuid.UUID, role enums.UserRole, productID uuid.UUID, input products.UpdateProductInput) (*models.Product, error) {
	return &models.Product{ID: productID}, nil
}

func (stubProductsService) DeleteProduct(ctx context.Context, actorID uuid.UUID, role enums.UserRole, productID uuid.UUID) error {
	return nil
}

type stubReviewsService struct{}

func (stubReviewsService) CreateReview(ctx context.Context, input reviews.CreateReviewInput) (*models.Review, error) {
	return &models.Review{ID: uuid.New(), ShopID: input.ShopID}, nil
}

func (stubReviewsService) ListShopReviews(ctx context.Context, params reviews.ListParams) (*reviews.ListResult, error) {
	return &reviews.ListResult{Items: []models.Review{}}, nil
}

func (stubReviewsService) ShopStats(ctx context.Context, shopID uuid.UUID) (*reviews.Stats, error) {
	return &reviews.Stats{}, nil
}

func (stubReviewsService) FlagReview(ctx context.Context, actorID uuid.UUID, role enums.UserRole, reviewID uuid.UUID, reason string) (*models.Review, error) {
	return &models.Review{ID: reviewID, IsFlagged: true}, nil
}

func (stubReviewsService) AdminListReviews(ctx context.Context, params reviews.AdminListParams) (*reviews.ListResult, error) {
	return &reviews.ListResult{Items: []models.Review{}}, nil
}

func (stubReviewsService) DeleteReview(ctx context.Context, role enums.UserRole, reviewID uuid.UUID) error {
	return nil
}

type stubActivityService struct{}

func (stubActivityService) Record(ctx context.Context, actorID uuid.UUID, role enums.UserRole, input activity.RecordInput) (*activity.RecordResult, error) {
	return &activity.RecordResult{Activity: &models.Activity{ShopID: input.ShopID}}, nil
}

func (stubActivityService) List(ctx context.Context, actorID uuid.UUID, role enums.UserRole, shopID uuid.UUID, params pagination.Params) (*activity.ListResult, error) {
	return &activity.ListResult{Items: []models.Activity{}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "eastlify",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		nil,
		nil,
		Services{
			Auth:     stubAuthService{},
			Shops:    stubShopsService{},
			Products: stubProductsService{},
			Reviews:  stubReviewsService{},
			Activity: stubActivityService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestPublicDirectoryNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{
		"/api/shops",
		"/api/shops/" + uuid.NewString(),
		"/api/shops/" + uuid.NewString() + "/reviews",
		"/api/shops/" + uuid.NewString() + "/reviews/stats",
		"/api/products",
		"/api/products/" + uuid.NewString(),
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestOwnerRoutesRejectMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/profile"},
		{http.MethodGet, "/api/shops/my"},
		{http.MethodGet, "/api/products/my"},
		{http.MethodDelete, "/api/shops/" + uuid.NewString()},
		{http.MethodGet, "/api/shops/" + uuid.NewString() + "/activities"},
		{http.MethodPost, "/api/reviews/" + uuid.NewString() + "/flag"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s %s got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestOwnerRoutesAcceptValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/shops/my", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleShopOwner))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestAnonymousActivityIngestAllowed(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/shops/"+uuid.NewString()+"/activity",
		strings.NewReader(`{"type":"call"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for anonymous activity got %d", resp.Code)
	}
}

func TestOptionalAuthRejectsGarbageToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/shops/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/reviews", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/reviews", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}
