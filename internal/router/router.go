// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lweber/gameshop-backend/internal/config"
	"github.com/lweber/gameshop-backend/internal/handlers"
	"github.com/lweber/gameshop-backend/internal/middleware"
	"github.com/lweber/gameshop-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	mailer := services.NewSMTPMailer(cfg.Email)
	notificationService := services.NewNotificationService(mailer, cfg.Shop)
	accessCodeService := services.NewAccessCodeService(db, cfg.JWT)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(accessCodeService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	accessCodeHandler := handlers.NewAccessCodeHandler(accessCodeService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.Default())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	authRequired := middleware.AuthRequired(accessCodeService)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/export", productHandler.ExportProducts)
			products.GET("/:id", productHandler.GetProduct)

			protected := products.Group("")
			protected.Use(authRequired)
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(authRequired)
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/export", orderHandler.ExportOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// Access code routes
		accessCodes := v1.Group("/access-codes")
		accessCodes.Use(authRequired)
		{
			accessCodes.GET("", accessCodeHandler.GetAccessCodes)
			accessCodes.GET("/export", accessCodeHandler.ExportAccessCodes)
			accessCodes.GET("/:id", accessCodeHandler.GetAccessCode)
			accessCodes.POST("", accessCodeHandler.CreateAccessCode)
			accessCodes.PUT("/:id", accessCodeHandler.UpdateAccessCode)
			accessCodes.DELETE("/:id", accessCodeHandler.DeleteAccessCode)
		}
	}

	return r
}
