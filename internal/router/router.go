// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/ecommerce-api/internal/config"
	"github.com/iliyamo/ecommerce-api/internal/handler"
	"github.com/iliyamo/ecommerce-api/internal/middleware"
)

// Deps bundles everything route registration needs: the handlers, the
// JWT secret for the protected groups and the optional Redis-backed
// cache and rate-limit configuration for the public browse routes.
type Deps struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler

	JWTSecret string
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
}

// Register wires every route onto the provided Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	signedIn := middleware.RequireSignIn(d.JWTSecret)
	cached := middleware.ResponseCache(d.Cache, d.Redis)
	limited := middleware.RateLimit(d.RateLimit, d.Redis)

	registerAuth(e, d, signedIn)
	registerCategory(e, d, signedIn, cached)
	registerProduct(e, d, signedIn, cached, limited)
}

func registerAuth(e *echo.Echo, d Deps, signedIn echo.MiddlewareFunc) {
	g := e.Group("/api/v1/auth")
	g.POST("/register", d.Auth.Register)
	g.POST("/login", d.Auth.Login)
	g.POST("/forgot-password", d.Auth.ForgotPassword)

	g.GET("/user-auth", d.Auth.UserAuth, signedIn)
	g.PUT("/profile", d.Auth.UpdateProfile, signedIn)
	g.GET("/orders", d.Order.GetOrders, signedIn)

	g.GET("/test", d.Auth.Test, signedIn, middleware.RequireAdmin)
	g.GET("/admin-auth", d.Auth.AdminAuth, signedIn, middleware.RequireAdmin)
	g.GET("/all-orders", d.Order.GetAllOrders, signedIn, middleware.RequireAdmin)
	g.PUT("/order-status/:orderId", d.Order.OrderStatus, signedIn, middleware.RequireAdmin)
}

func registerCategory(e *echo.Echo, d Deps, signedIn, cached echo.MiddlewareFunc) {
	g := e.Group("/api/v1/category")
	g.POST("/create-category", d.Category.Create, signedIn, middleware.RequireAdmin)
	g.PUT("/update-category/:id", d.Category.Update, signedIn, middleware.RequireAdmin)
	g.DELETE("/delete-category/:id", d.Category.Delete, signedIn, middleware.RequireAdmin)

	g.GET("/get-category", d.Category.List, cached)
	g.GET("/single-category/:slug", d.Category.Single, cached)
}

func registerProduct(e *echo.Echo, d Deps, signedIn, cached, limited echo.MiddlewareFunc) {
	g := e.Group("/api/v1/product")
	g.POST("/create-product", d.Product.Create, signedIn, middleware.RequireAdmin)
	g.PUT("/update-product/:pid", d.Product.Update, signedIn, middleware.RequireAdmin)
	g.DELETE("/delete-product/:pid", d.Product.Delete, signedIn, middleware.RequireAdmin)

	g.GET("/get-product", d.Product.GetProducts, cached)
	g.GET("/get-product/:slug", d.Product.GetSingleProduct, cached)
	g.GET("/product-photo/:pid", d.Product.Photo, cached)
	g.GET("/product-count", d.Product.Count, cached)
	g.GET("/product-list/:page", d.Product.ListPage, cached)
	g.GET("/product-category/:slug", d.Product.ByCategory, cached)
	g.GET("/related-product/:pid/:cid", d.Product.Related, cached)
	g.GET("/search/:keyword", d.Product.Search, limited)
	g.POST("/product-filters", d.Product.Filters, limited)
}
