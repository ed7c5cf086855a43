package router

import (
	"fmt"
	"strings"

	"github.com/tienda-next/internal/cache"
	"github.com/tienda-next/internal/config"
	adminhandlers "github.com/tienda-next/internal/http/handlers/admin"
	publichandlers "github.com/tienda-next/internal/http/handlers/public"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires all storefront and console routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tn"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: 60,
		MaxRequests:   10,
		Message:       "Demasiados intentos de inicio de sesion. Intenta de nuevo en %d segundos.",
	}
	chatRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:chat", redisPrefix),
		WindowSeconds: 60,
		MaxRequests:   20,
		Message:       "Demasiadas consultas al asistente. Intenta de nuevo en %d segundos.",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// Catalog, open to anyone.
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)

		// Account endpoints.
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// Cart endpoints accept either a token or the X-Cliente-Id
		// header, so guests keep their cart across visits.
		cart := apiV1.Group("/cart")
		cart.Use(OptionalCustomerAuthMiddleware(cfg.UserJWT.SecretKey))
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("", publicHandler.UpsertCart)
			cart.PUT("/items/:productId", publicHandler.SetCartItemQuantity)
			cart.DELETE("/items/:productId", publicHandler.DeleteCartItem)
		}

		// Assistant endpoints, also open to guests.
		chat := apiV1.Group("/chatbot")
		{
			chat.GET("/health", publicHandler.ChatbotHealth)
			chat.POST("/prime", publicHandler.ChatbotPrime)
			chat.POST("/clear", publicHandler.ChatbotClear)
			chat.POST("/llm", RateLimitMiddleware(redisClient, chatRule, KeyByIP), publicHandler.Chat)
		}

		// Signed-in customer endpoints.
		customer := apiV1.Group("")
		customer.Use(CustomerAuthMiddleware(cfg.UserJWT.SecretKey))
		{
			customer.GET("/me", publicHandler.Profile)
			customer.POST("/orders", publicHandler.CreateOrder)
			customer.GET("/orders", publicHandler.ListOrders)
			customer.GET("/orders/:id", publicHandler.GetOrder)
			customer.PUT("/orders/:id/cancel", publicHandler.CancelOrder)

			// Legacy checkout steps, called by the client after a
			// successful order creation.
			customer.PUT("/products/stock", publicHandler.DecrementStock)
			customer.PUT("/carts/:id/close", publicHandler.CloseCart)

			customer.GET("/payment-methods", publicHandler.ListPaymentMethods)
			customer.POST("/payment-methods", publicHandler.SavePaymentMethod)
			customer.PUT("/payment-methods/:id", publicHandler.UpdatePaymentMethod)
			customer.DELETE("/payment-methods/:id", publicHandler.DeletePaymentMethod)
			customer.PUT("/payment-methods/:id/principal", publicHandler.MakePaymentMethodPrimary)
		}

		// Console endpoints.
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIP), adminHandler.Login)

			authorized := admin.Use(AdminAuthMiddleware(cfg.JWT.SecretKey))
			{
				authorized.GET("/products", adminHandler.ListProducts)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.PUT("/orders/:id/cancel", adminHandler.CancelOrder)

				authorized.GET("/shipping/pending", adminHandler.ListPendingShipments)
				authorized.GET("/shipping/shipped", adminHandler.ListShippedOrders)
				authorized.POST("/shipping/:id/tracking", adminHandler.AttachTracking)
				authorized.PUT("/shipping/:id/tracking", adminHandler.UpdateTracking)

				authorized.POST("/inventory/decrement", adminHandler.DecrementStock)
				authorized.POST("/inventory/restore", adminHandler.RestoreStock)
				authorized.POST("/inventory/close-cart", adminHandler.CloseCart)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
