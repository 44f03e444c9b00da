package main

import (
	"time"

	"github.com/pricepulse/internal/config"
	"github.com/pricepulse/internal/constants"
	"github.com/pricepulse/internal/logger"
	"github.com/pricepulse/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示用户
	demoHash, err := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash demo password: %v", err)
	}
	demoUser := models.User{
		Username:     "demo",
		PasswordHash: string(demoHash),
		Status:       constants.UserStatusActive,
	}
	var existingUser models.User
	if err := models.DB.Where("username = ?", demoUser.Username).First(&existingUser).Error; err != nil {
		if err := models.DB.Create(&demoUser).Error; err != nil {
			stdLog.Printf("Failed to create demo user: %v", err)
		} else {
			stdLog.Printf("Created demo user: %s", demoUser.Username)
		}
	} else {
		demoUser = existingUser
		stdLog.Printf("Demo user already exists: %s", demoUser.Username)
	}

	// 添加演示商品
	now := time.Now()
	products := []models.Product{
		{
			Name:         "小米手环 9",
			URL:          "https://item.jd.com/100012043978.html",
			Platform:     constants.PlatformJD,
			PlatformID:   strPtr("100012043978"),
			Brand:        "小米",
			Category:     "智能穿戴",
			CurrentPrice: mustMoney("249.00"),
			SalesCount:   12000,
			ReviewCount:  8600,
			StockStatus:  constants.StockStatusIn,
			LastChecked:  &now,
			Status:       constants.ProductStatusActive,
		},
		{
			Name:         "无印良品 舒适颈枕",
			URL:          "https://detail.tmall.com/item.htm?id=5566001",
			Platform:     constants.PlatformTmall,
			PlatformID:   strPtr("5566001"),
			Brand:        "无印良品",
			Category:     "家居",
			CurrentPrice: mustMoney("78.00"),
			SalesCount:   3400,
			ReviewCount:  1200,
			StockStatus:  constants.StockStatusIn,
			LastChecked:  &now,
			Status:       constants.ProductStatusActive,
		},
		{
			Name:         "九阳 豆浆机 DJ13",
			URL:          "https://mobile.yangkeduo.com/goods.html?goods_id=7788002",
			Platform:     constants.PlatformPDD,
			PlatformID:   strPtr("7788002"),
			Brand:        "九阳",
			Category:     "厨房电器",
			CurrentPrice: mustMoney("199.00"),
			SalesCount:   9800,
			ReviewCount:  5200,
			StockStatus:  constants.StockStatusIn,
			LastChecked:  &now,
			Status:       constants.ProductStatusActive,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("platform = ? AND platform_id = ?", product.Platform, product.PlatformID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
				continue
			}
			stdLog.Printf("Created product: %s", product.Name)
			history := models.PriceHistory{
				ProductID: product.ID,
				Price:     product.CurrentPrice,
				Source:    constants.PriceSourceManual,
				CheckedAt: now,
			}
			if err := models.DB.Create(&history).Error; err != nil {
				stdLog.Printf("Failed to create price history for %s: %v", product.Name, err)
			}
		} else {
			product = existing
			stdLog.Printf("Product already exists: %s", product.Name)
		}

		// 演示用户默认关注全部演示商品
		var follow models.UserProduct
		if err := models.DB.Where("user_id = ? AND product_id = ?", demoUser.ID, product.ID).First(&follow).Error; err != nil {
			follow = models.UserProduct{
				UserID:              demoUser.ID,
				ProductID:           product.ID,
				NotificationEnabled: constants.NotificationEnabled,
				PriceDropThreshold:  mustMoney(constants.DefaultPriceDropThreshold),
			}
			if err := models.DB.Create(&follow).Error; err != nil {
				stdLog.Printf("Failed to create follow for %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created follow: %s -> %s", demoUser.Username, product.Name)
			}
		}
	}

	stdLog.Printf("Seed finished")
}

func strPtr(s string) *string {
	return &s
}

func mustMoney(s string) models.Money {
	money, err := models.NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return money
}
