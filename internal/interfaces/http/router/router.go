package router

import (
	"github.com/gin-gonic/gin"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/interfaces/http/handler"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/interfaces/http/middleware"
)

// Handlers bundles all HTTP handlers for route registration
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Review   *handler.ReviewHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Wishlist *handler.WishlistHandler
	Admin    *handler.AdminHandler
	System   *handler.SystemHandler
}

// Config holds route registration settings
type Config struct {
	Handlers Handlers
	JWT      middleware.JWTConfig
}

// Setup registers all routes on the engine under /api/v1
func Setup(engine *gin.Engine, cfg Config) {
	requireAuth := middleware.RequireAuth(cfg.JWT)
	requireAdmin := middleware.RequireAdmin()

	engine.GET("/health", cfg.Handlers.System.Health)

	api := engine.Group("/api/v1")

	// Public storefront routes
	api.POST("/auth/signup", cfg.Handlers.Auth.Signup)
	api.POST("/auth/login", cfg.Handlers.Auth.Login)
	api.GET("/products", cfg.Handlers.Product.List)
	api.GET("/products/:id", cfg.Handlers.Product.Get)
	api.GET("/products/:id/reviews", cfg.Handlers.Review.ListByProduct)

	// Authenticated customer routes
	authed := api.Group("")
	authed.Use(requireAuth)
	{
		authed.POST("/auth/logout", cfg.Handlers.Auth.Logout)
		authed.GET("/auth/me", cfg.Handlers.Auth.Me)

		authed.GET("/cart", cfg.Handlers.Cart.Get)
		authed.DELETE("/cart", cfg.Handlers.Cart.Clear)
		authed.POST("/cart/items", cfg.Handlers.Cart.AddItem)
		authed.PUT("/cart/items/:productId", cfg.Handlers.Cart.UpdateItem)
		authed.DELETE("/cart/items/:productId", cfg.Handlers.Cart.RemoveItem)

		authed.POST("/orders", cfg.Handlers.Order.Place)
		authed.GET("/orders", cfg.Handlers.Order.ListMine)
		authed.GET("/orders/all", requireAdmin, cfg.Handlers.Order.ListAll)
		authed.GET("/orders/:id", cfg.Handlers.Order.Get)
		authed.PATCH("/orders/:id/status", requireAdmin, cfg.Handlers.Order.UpdateStatus)

		authed.POST("/products/:id/reviews", cfg.Handlers.Review.Create)
		authed.PUT("/reviews/:id", cfg.Handlers.Review.Update)
		authed.DELETE("/reviews/:id", cfg.Handlers.Review.Delete)
		authed.POST("/reviews/:id/image", cfg.Handlers.Review.AttachImage)

		authed.GET("/wishlist", cfg.Handlers.Wishlist.List)
		authed.POST("/wishlist/:productId", cfg.Handlers.Wishlist.Add)
		authed.DELETE("/wishlist/:productId", cfg.Handlers.Wishlist.Remove)
	}

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(requireAuth, requireAdmin)
	{
		adminGroup.GET("/dashboard", cfg.Handlers.Admin.Dashboard)

		adminGroup.POST("/products", cfg.Handlers.Product.Create)
		adminGroup.PUT("/products/:id", cfg.Handlers.Product.Update)
		adminGroup.DELETE("/products/:id", cfg.Handlers.Product.Delete)
		adminGroup.POST("/products/:id/image", cfg.Handlers.Product.UploadMainImage)
		adminGroup.POST("/products/:id/gallery", cfg.Handlers.Product.AddGalleryImage)
		adminGroup.DELETE("/products/:id/gallery", cfg.Handlers.Product.RemoveGalleryImage)
	}
}
