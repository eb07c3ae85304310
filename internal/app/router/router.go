// Package router maps every HTTP route to its handler.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	addresshandler "orderup_backend/internal/feature/address/transport/handler"
	authhandler "orderup_backend/internal/feature/auth/transport/handler"
	carthandler "orderup_backend/internal/feature/cart/transport/handler"
	cataloghandler "orderup_backend/internal/feature/catalog/transport/handler"
	orderhandler "orderup_backend/internal/feature/order/transport/handler"
	profilehandler "orderup_backend/internal/feature/profile/transport/handler"
	reviewhandler "orderup_backend/internal/feature/review/transport/handler"
	"orderup_backend/internal/platform/http/handler"
	jwtmw "orderup_backend/internal/platform/jwt"
)

// Handlers groups the feature handlers.
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Catalog *cataloghandler.CatalogHandler
	Cart    *carthandler.CartHandler
	Order   *orderhandler.OrderHandler
	Review  *reviewhandler.ReviewHandler
	Address *addresshandler.AddressHandler
	Profile *profilehandler.ProfileHandler
}

// Options carries the cross-cutting pieces of the router.
type Options struct {
	Verifier       *jwtmw.Verifier
	Metrics        http.Handler
	Middleware     []gin.HandlerFunc
	OrderFeed      gin.HandlerFunc
	Ready          map[string]handler.Pinger
	AllowedOrigins []string
	UploadDir      string
}

// NewRouter builds the gin engine.
func NewRouter(h Handlers, opt Options) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(corsMiddleware(opt.AllowedOrigins))
	r.Use(opt.Middleware...)

	// No authentication
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(opt.Ready))
	if opt.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opt.Metrics))
	}
	if opt.UploadDir != "" {
		r.Static("/uploads", opt.UploadDir)
	}

	r.POST("/signup", h.Auth.Signup)
	r.POST("/verify-otp", h.Auth.VerifyOTP)
	r.POST("/resend-otp", h.Auth.ResendOTP)
	r.POST("/login", h.Auth.Login)
	r.POST("/refresh", h.Auth.Refresh)
	r.POST("/logout", h.Auth.Logout)

	r.GET("/food-items", h.Catalog.List)
	r.GET("/food-items/:id", h.Catalog.Get)

	// Bearer token required
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opt.Verifier))
	{
		auth.GET("/cart", h.Cart.List)
		auth.POST("/cart", h.Cart.Add)
		auth.PUT("/cart/:id", h.Cart.Update)
		auth.DELETE("/cart/:id", h.Cart.Remove)

		auth.GET("/orders", h.Order.List)
		auth.POST("/orders", h.Order.Place)
		auth.GET("/orders/:id", h.Order.Get)

		auth.GET("/addresses", h.Address.List)
		auth.POST("/addresses", h.Address.Create)
		auth.PUT("/addresses/:id", h.Address.Update)
		auth.DELETE("/addresses/:id", h.Address.Delete)

		auth.GET("/profile", h.Profile.Get)
		auth.PUT("/profile", h.Profile.Update)
		auth.POST("/profile/upload-image", h.Profile.UploadImage)
		auth.GET("/profile/stats", h.Profile.Stats)
		auth.GET("/profile/orders", h.Order.ListSummaries)

		auth.GET("/profile/reviews", h.Review.List)
		auth.POST("/profile/reviews", h.Review.Create)
		auth.GET("/profile/reviews/:id", h.Review.Get)
		auth.PUT("/profile/reviews/:id", h.Review.Update)
		auth.DELETE("/profile/reviews/:id", h.Review.Delete)
	}

	// Admin role required
	admin := r.Group("/admin")
	admin.Use(jwtmw.AuthRequired(opt.Verifier), jwtmw.AdminRequired())
	{
		admin.POST("/food-items", h.Catalog.Create)
		admin.PUT("/food-items/:id", h.Catalog.Update)
		admin.DELETE("/food-items/:id", h.Catalog.Delete)
		admin.PUT("/orders/:id", h.Order.UpdateStatus)
		if opt.OrderFeed != nil {
			admin.GET("/orders/ws", opt.OrderFeed)
		}
	}

	return r
}

// corsMiddleware allows every origin unless a list is configured.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
