package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pricepulse/internal/constants"
	"github.com/pricepulse/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.UserProduct{}, &models.PriceHistory{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, repo ProductRepository, platformID, category string, price int64, status int) *models.Product {
	t.Helper()
	pid := platformID
	product := &models.Product{
		Name:         "商品" + platformID,
		URL:          "https://example.com/" + platformID,
		Platform:     constants.PlatformJD,
		PlatformID:   &pid,
		Category:     category,
		CurrentPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		StockStatus:  constants.StockStatusIn,
		Status:       status,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("seed product %s failed: %v", platformID, err)
	}
	return product
}

func TestProductCreate_DuplicateKeyTranslated(t *testing.T) {
	repo := NewProductRepository(newRepoTestDB(t))

	seedProduct(t, repo, "9001", "数码", 100, constants.ProductStatusActive)

	pid := "9001"
	dup := &models.Product{
		Name:         "重复商品",
		URL:          "https://example.com/dup",
		Platform:     constants.PlatformJD,
		PlatformID:   &pid,
		CurrentPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(88)),
		Status:       constants.ProductStatusActive,
	}
	if err := repo.Create(dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}

	// platform_id 为空的商品不受唯一索引约束
	first := &models.Product{
		Name:         "无平台ID一",
		URL:          "https://example.com/n1",
		Platform:     constants.PlatformOther,
		CurrentPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Status:       constants.ProductStatusActive,
	}
	second := &models.Product{
		Name:         "无平台ID二",
		URL:          "https://example.com/n2",
		Platform:     constants.PlatformOther,
		CurrentPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		Status:       constants.ProductStatusActive,
	}
	if err := repo.Create(first); err != nil {
		t.Fatalf("create first without platform id failed: %v", err)
	}
	if err := repo.Create(second); err != nil {
		t.Fatalf("create second without platform id failed: %v", err)
	}
}

func TestProductList_FiltersAndPagination(t *testing.T) {
	repo := NewProductRepository(newRepoTestDB(t))

	seedProduct(t, repo, "8001", "数码", 100, constants.ProductStatusActive)
	seedProduct(t, repo, "8002", "数码", 300, constants.ProductStatusActive)
	seedProduct(t, repo, "8003", "家居", 200, constants.ProductStatusActive)
	seedProduct(t, repo, "8004", "数码", 150, constants.ProductStatusDeleted)

	// 仅在库
	_, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 active products, got %d", total)
	}

	// 分类过滤
	list, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, Category: "数码", OnlyActive: true})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 in category, got total=%d len=%d", total, len(list))
	}

	// 价格区间 + 升序
	minPrice := models.NewMoneyFromDecimal(decimal.NewFromInt(120))
	maxPrice := models.NewMoneyFromDecimal(decimal.NewFromInt(400))
	list, total, err = repo.List(ProductListFilter{
		Page: 1, PageSize: 10,
		MinPrice: &minPrice, MaxPrice: &maxPrice,
		OnlyActive: true,
		OrderBy:    "price_asc",
	})
	if err != nil {
		t.Fatalf("list by price range failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 in price range, got %d", total)
	}
	if !list[0].CurrentPrice.LessThan(list[1].CurrentPrice.Decimal) {
		t.Fatalf("expected ascending price order")
	}

	// 分页：每页 2 条，第 2 页剩 1 条
	list, total, err = repo.List(ProductListFilter{Page: 2, PageSize: 2, OnlyActive: true})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if total != 3 || len(list) != 1 {
		t.Fatalf("expected total=3 len=1 on page 2, got total=%d len=%d", total, len(list))
	}
}

func TestProductSoftDelete_RowsAffected(t *testing.T) {
	repo := NewProductRepository(newRepoTestDB(t))

	product := seedProduct(t, repo, "7001", "数码", 100, constants.ProductStatusActive)

	rows, err := repo.SoftDelete(product.ID)
	if err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}

	rows, err = repo.SoftDelete(9999)
	if err != nil {
		t.Fatalf("soft delete unknown id failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows affected for unknown id, got %d", rows)
	}

	fetched, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if fetched == nil || fetched.Status != constants.ProductStatusDeleted {
		t.Fatalf("expected soft-deleted row to remain with status=0")
	}
}
