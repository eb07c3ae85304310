// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"orderup_backend/internal/app/router"
	addressadapters "orderup_backend/internal/feature/address/adapters"
	addressentity "orderup_backend/internal/feature/address/domain/entity"
	addresshandler "orderup_backend/internal/feature/address/transport/handler"
	addressusecase "orderup_backend/internal/feature/address/usecase"
	authadapters "orderup_backend/internal/feature/auth/adapters"
	authentity "orderup_backend/internal/feature/auth/domain/entity"
	authhandler "orderup_backend/internal/feature/auth/transport/handler"
	authusecase "orderup_backend/internal/feature/auth/usecase"
	cartadapters "orderup_backend/internal/feature/cart/adapters"
	cartentity "orderup_backend/internal/feature/cart/domain/entity"
	carthandler "orderup_backend/internal/feature/cart/transport/handler"
	cartusecase "orderup_backend/internal/feature/cart/usecase"
	catalogadapters "orderup_backend/internal/feature/catalog/adapters"
	catalogentity "orderup_backend/internal/feature/catalog/domain/entity"
	cataloghandler "orderup_backend/internal/feature/catalog/transport/handler"
	catalogusecase "orderup_backend/internal/feature/catalog/usecase"
	orderadapters "orderup_backend/internal/feature/order/adapters"
	orderentity "orderup_backend/internal/feature/order/domain/entity"
	orderhandler "orderup_backend/internal/feature/order/transport/handler"
	orderusecase "orderup_backend/internal/feature/order/usecase"
	profileadapters "orderup_backend/internal/feature/profile/adapters"
	profilehandler "orderup_backend/internal/feature/profile/transport/handler"
	profileusecase "orderup_backend/internal/feature/profile/usecase"
	reviewadapters "orderup_backend/internal/feature/review/adapters"
	reviewentity "orderup_backend/internal/feature/review/domain/entity"
	reviewhandler "orderup_backend/internal/feature/review/transport/handler"
	reviewusecase "orderup_backend/internal/feature/review/usecase"
	"orderup_backend/internal/platform/cache"
	jwtmw "orderup_backend/internal/platform/jwt"
	"orderup_backend/internal/platform/metrics"
	"orderup_backend/internal/platform/realtime"
	"orderup_backend/internal/platform/storage"
)

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&authentity.User{},
		&authadapters.SessionModel{},
		&catalogentity.FoodItem{},
		&cartentity.CartItem{},
		&orderentity.Order{},
		&orderentity.OrderItem{},
		&reviewentity.Review{},
		&addressentity.Address{},
	}
}

// SessionJanitor purges expired refresh sessions.
type SessionJanitor interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// Deps are the shared infrastructure components. Redis may be nil.
type Deps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Tokens     *jwtmw.Generator
	OTP        authusecase.OTPSender
	Images     *storage.LocalStorage
	Metrics    *metrics.Metrics
	Hub        *realtime.Hub
	SessionTTL time.Duration
	CacheTTL   time.Duration
}

// App is the assembled application.
type App struct {
	Handlers router.Handlers
	Sessions SessionJanitor
}

// NewApp wires repositories, usecases and handlers for every feature.
func NewApp(d Deps) *App {
	// Repository
	userRepo := authadapters.NewUserPostgres(d.DB)
	sessionRepo := NewSessionRepository(d.Redis, d.DB)
	foodRepo := cache.NewCachingFoodItemRepository(d.Redis, d.CacheTTL, catalogadapters.NewFoodItemPostgres(d.DB), "catalog", d.Metrics)
	cartRepo := cartadapters.NewCartPostgres(d.DB)
	orderRepo := orderadapters.NewOrderPostgres(d.DB)
	reviewRepo := reviewadapters.NewReviewPostgres(d.DB)
	addressRepo := addressadapters.NewAddressPostgres(d.DB)
	profileRepo := profileadapters.NewProfilePostgres(d.DB)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, d.Tokens, d.OTP, d.SessionTTL)
	catalogUC := catalogusecase.NewCatalogUsecase(foodRepo)
	cartUC := cartusecase.NewCartUsecase(cartRepo, foodRepo)
	orderUC := orderusecase.NewOrderUsecase(orderRepo, cartRepo, d.Hub, d.Metrics)
	reviewUC := reviewusecase.NewReviewUsecase(reviewRepo, foodRepo, d.Metrics)
	addressUC := addressusecase.NewAddressUsecase(addressRepo)
	profileUC := profileusecase.NewProfileUsecase(profileRepo, d.Images)

	// Handler
	return &App{
		Handlers: router.Handlers{
			Auth:    authhandler.NewAuthHandler(authUC),
			Catalog: cataloghandler.NewCatalogHandler(catalogUC),
			Cart:    carthandler.NewCartHandler(cartUC),
			Order:   orderhandler.NewOrderHandler(orderUC),
			Review:  reviewhandler.NewReviewHandler(reviewUC),
			Address: addresshandler.NewAddressHandler(addressUC),
			Profile: profilehandler.NewProfileHandler(profileUC),
		},
		Sessions: authUC,
	}
}
