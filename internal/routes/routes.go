package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"cedra_storefront/internal/handlers"
	"cedra_storefront/internal/middleware"
)

// Deps est ce dont les routes ont besoin en plus des handlers
type Deps struct {
	Storefront *handlers.Storefront
	Cookies    sessions.Store
	Redis      *redis.Client // optionnel : limite de tentatives
	Origins    []string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if len(d.Origins) > 0 {
		r.Use(middleware.CORS(d.Origins...))
	}

	r.GET("/health", handlers.Health)

	s := d.Storefront
	api := r.Group("/api/storefront", middleware.BrowserSession(d.Cookies))

	// Panier
	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", s.GetCart)
		cartGroup.DELETE("", s.ClearCart)
		cartGroup.POST("/items", s.AddCartItem)
		cartGroup.PUT("/items/:productId/:size", s.UpdateCartItem)
		cartGroup.DELETE("/items/:productId/:size", s.RemoveCartItem)
		cartGroup.POST("/coupon", s.ApplyCoupon)
		cartGroup.DELETE("/coupon", s.RemoveCoupon)
	}

	// Authentification
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", middleware.LoginRateLimit(d.Redis), s.Login)
		authGroup.POST("/signup", middleware.RegisterRateLimit(d.Redis), s.Signup)
		authGroup.POST("/logout", s.Logout)
		authGroup.GET("/google", s.GoogleStart)
		authGroup.GET("/google/callback", s.GoogleCallback)
		authGroup.GET("/me", s.Me)
		authGroup.PUT("/profile", s.UpdateProfile)
		authGroup.PUT("/password", s.UpdatePassword)
	}

	// Wishlist
	api.GET("/wishlist", s.GetWishlist)
	api.POST("/wishlist", s.AddToWishlist)
	api.DELETE("/wishlist/:productId", s.RemoveFromWishlist)

	// Newsletter
	api.POST("/subscribe", s.Subscribe)
}
