package router

import (
	"fmt"
	"strings"

	"github.com/pricepulse/internal/cache"
	"github.com/pricepulse/internal/config"
	apihandlers "github.com/pricepulse/internal/http/handlers/api"
	"github.com/pricepulse/internal/logger"
	"github.com/pricepulse/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	apiHandler := apihandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pp"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 用户认证接口
	auth := r.Group("/auth")
	{
		auth.POST("/register", apiHandler.Register)
		auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), apiHandler.Login)
		auth.POST("/logout", JWTAuthMiddleware(c.AuthService), apiHandler.Logout)
	}

	// 业务接口（需鉴权）
	api := r.Group("/api")
	api.Use(JWTAuthMiddleware(c.AuthService))
	{
		products := api.Group("/products")
		{
			products.POST("", apiHandler.AddProduct)
			products.GET("", apiHandler.ListProducts)
			products.GET("/:id", apiHandler.GetProduct)
			products.PUT("/:id", apiHandler.UpdateProduct)
			products.DELETE("/:id", apiHandler.DeleteProduct)
			products.GET("/:id/price-history", apiHandler.ListPriceHistory)
			products.GET("/category/:category", apiHandler.ListProductsByCategory)
			products.GET("/brand/:brand", apiHandler.ListProductsByBrand)
			products.GET("/price", apiHandler.ListProductsByPriceRange)
		}

		userProducts := api.Group("/user-products")
		{
			userProducts.POST("", apiHandler.Follow)
			userProducts.DELETE("", apiHandler.Unfollow)
			userProducts.GET("/user/:userId", apiHandler.ListFollowsByUser)
			userProducts.GET("/product/:productId", apiHandler.ListFollowersByProduct)
			userProducts.PUT("/:id", apiHandler.UpdateFollowSettings)
		}
	}

	return r
}
