// Package router 注册全部HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Handlers 所有HTTP处理器(由Wire按字段注入)
type Handlers struct {
	User     *handler.UserHandler
	Author   *handler.AuthorHandler
	Category *handler.CategoryHandler
	Book     *handler.BookHandler
	Discount *handler.DiscountHandler
	Review   *handler.ReviewHandler
	Order    *handler.OrderHandler
}

// New 创建Gin引擎并注册路由
// 中间件顺序：Recovery → Logger(写入request_id) → CORS → Metrics
func New(cfg *config.Config, h *Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	if cfg.CORS.Enabled {
		r.Use(middleware.CORS(cfg.CORS))
	}
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger UI: http://localhost:8080/swagger/index.html
	if cfg.Server.Mode != "release" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()
	requireAdmin := auth.RequireAdmin()

	v1 := r.Group("/api/v1")

	// 认证(按IP限流)
	authGroup := v1.Group("/auth")
	authGroup.Use(middleware.RateLimit(cfg.RateLimit))
	{
		authGroup.POST("/register", h.User.Register)
		authGroup.POST("/login", h.User.Login)
		authGroup.POST("/refresh", h.User.Refresh)
		authGroup.POST("/logout", requireAuth, h.User.Logout)
	}

	users := v1.Group("/users")
	users.Use(requireAuth)
	{
		users.GET("/me", h.User.Profile)
		users.PUT("/me", h.User.UpdateProfile)
		users.PUT("/me/password", h.User.ChangePassword)

		users.GET("", requireAdmin, h.User.ListUsers)
		users.POST("", requireAdmin, h.User.CreateUser)
		users.DELETE("/:id", requireAdmin, h.User.DeleteUser)
	}

	authors := v1.Group("/authors")
	{
		authors.GET("", h.Author.List)
		authors.GET("/:id", h.Author.Get)
		authors.POST("", requireAuth, requireAdmin, h.Author.Create)
		authors.PUT("/:id", requireAuth, requireAdmin, h.Author.Update)
		authors.DELETE("/:id", requireAuth, requireAdmin, h.Author.Delete)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", requireAuth, requireAdmin, h.Category.Create)
		categories.PUT("/:id", requireAuth, requireAdmin, h.Category.Update)
		categories.DELETE("/:id", requireAuth, requireAdmin, h.Category.Delete)
	}

	// 静态路径要和/:id并列注册,gin会优先匹配静态段
	books := v1.Group("/books")
	{
		books.GET("", h.Book.ListBooks)
		books.GET("/discounts", h.Book.ListDiscounted)
		books.GET("/search", h.Book.Search)
		books.GET("/recommended", h.Book.Recommended)
		books.GET("/popular", h.Book.Popular)
		books.GET("/top-discounted", h.Book.TopDiscounted)
		books.GET("/:id", h.Book.GetBook)
		books.GET("/:id/price", h.Book.PriceQuote)
		books.GET("/:id/discounts", h.Book.Discounts)

		books.POST("", requireAuth, requireAdmin, h.Book.CreateBook)
		books.PUT("/:id", requireAuth, requireAdmin, h.Book.UpdateBook)
		books.DELETE("/:id", requireAuth, requireAdmin, h.Book.DeleteBook)
	}

	discounts := v1.Group("/discounts")
	discounts.Use(requireAuth, requireAdmin)
	{
		discounts.POST("", h.Discount.Create)
		discounts.PUT("/:id", h.Discount.Update)
		discounts.DELETE("/:id", h.Discount.Delete)
	}

	reviews := v1.Group("/reviews")
	{
		reviews.GET("/book/:book_id", h.Review.ListByBook)
		reviews.POST("", h.Review.Post)
	}

	orders := v1.Group("/orders")
	orders.Use(requireAuth)
	{
		orders.POST("", h.Order.CreateOrder)
		orders.GET("", h.Order.ListOrders)
		orders.GET("/:id", h.Order.GetOrder)
	}

	return r
}
