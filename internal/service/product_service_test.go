package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pricepulse/internal/constants"
	"github.com/pricepulse/internal/models"
	"github.com/pricepulse/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
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

func newTestProductService(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t)
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewPriceHistoryRepository(db),
		nil,
	)
	return svc, db
}

func mustMoney(t *testing.T, raw string) models.Money {
	t.Helper()
	money, err := models.NewMoneyFromString(raw)
	if err != nil {
		t.Fatalf("parse money %q failed: %v", raw, err)
	}
	return money
}

func moneyPtr(t *testing.T, raw string) *models.Money {
	t.Helper()
	money := mustMoney(t, raw)
	return &money
}

func validProductInput(t *testing.T) ProductInput {
	t.Helper()
	return ProductInput{
		Name:         "测试商品",
		URL:          "https://item.jd.com/1001.html",
		Platform:     "JD",
		PlatformID:   "1001",
		Brand:        "测试品牌",
		Category:     "测试分类",
		CurrentPrice: moneyPtr(t, "99.90"),
	}
}

func TestAddProduct_OutOfStockPersisted(t *testing.T) {
	svc, db := newTestProductService(t)

	input := validProductInput(t)
	outOfStock := constants.StockStatusOut
	input.StockStatus = &outOfStock

	product, err := svc.Add(input)
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}

	// 回读落库行，确认缺货状态没有被列默认值覆盖
	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("load product row failed: %v", err)
	}
	if stored.StockStatus != constants.StockStatusOut {
		t.Fatalf("stored stock_status = %d, want %d", stored.StockStatus, constants.StockStatusOut)
	}
}

func TestAddProduct_Validation(t *testing.T) {
	svc, _ := newTestProductService(t)

	cases := []struct {
		name    string
		mutate  func(*ProductInput)
		wantErr error
	}{
		{"empty_name", func(in *ProductInput) { in.Name = "  " }, ErrProductNameEmpty},
		{"empty_url", func(in *ProductInput) { in.URL = "" }, ErrProductURLEmpty},
		{"empty_platform", func(in *ProductInput) { in.Platform = "" }, ErrPlatformEmpty},
		{"missing_price", func(in *ProductInput) { in.CurrentPrice = nil }, ErrPriceRequired},
		{"zero_price", func(in *ProductInput) { in.CurrentPrice = moneyPtr(t, "0") }, ErrPriceInvalid},
		{"negative_price", func(in *ProductInput) { in.CurrentPrice = moneyPtr(t, "-1.50") }, ErrPriceInvalid},
	}
	for _, tc := range cases {
		input := validProductInput(t)
		tc.mutate(&input)
		if _, err := svc.Add(input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestAddProduct_CreatesInitialPriceHistory(t *testing.T) {
	svc, db := newTestProductService(t)

	product, err := svc.Add(validProductInput(t))
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}
	if product.ID == 0 {
		t.Fatalf("expected non-zero product id")
	}
	if product.Status != constants.ProductStatusActive {
		t.Fatalf("expected active status, got %d", product.Status)
	}
	if product.StockStatus != constants.StockStatusIn {
		t.Fatalf("expected in-stock default, got %d", product.StockStatus)
	}

	fetched, err := svc.GetByID(product.ID)
	if err != nil {
		t.Fatalf("re-fetch failed: %v", err)
	}
	if fetched.ID != product.ID {
		t.Fatalf("expected id %d, got %d", product.ID, fetched.ID)
	}

	var histories []models.PriceHistory
	if err := db.Where("product_id = ?", product.ID).Find(&histories).Error; err != nil {
		t.Fatalf("load histories failed: %v", err)
	}
	if len(histories) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(histories))
	}
	if histories[0].Source != constants.PriceSourceManual {
		t.Fatalf("expected manual source, got %s", histories[0].Source)
	}
	if !histories[0].Price.Equal(product.CurrentPrice.Decimal) {
		t.Fatalf("expected history price %s, got %s", product.CurrentPrice, histories[0].Price)
	}
}

func TestAddProduct_DuplicatePlatformID(t *testing.T) {
	svc, _ := newTestProductService(t)

	if _, err := svc.Add(validProductInput(t)); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.Add(validProductInput(t)); !errors.Is(err, ErrProductExists) {
		t.Fatalf("expected ErrProductExists, got %v", err)
	}

	// 同平台 ID 不同平台不冲突
	other := validProductInput(t)
	other.Platform = "TAOBAO"
	if _, err := svc.Add(other); err != nil {
		t.Fatalf("add same platform id on other platform failed: %v", err)
	}
}

func TestAddProduct_UnknownPlatformNormalizedToOther(t *testing.T) {
	svc, _ := newTestProductService(t)

	input := validProductInput(t)
	input.Platform = "amazon"
	product, err := svc.Add(input)
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}
	if product.Platform != constants.PlatformOther {
		t.Fatalf("expected platform OTHER, got %s", product.Platform)
	}
}

func TestGetProduct_NotFoundCases(t *testing.T) {
	svc, _ := newTestProductService(t)

	if _, err := svc.GetByID(0); !errors.Is(err, ErrIDInvalid) {
		t.Fatalf("expected ErrIDInvalid, got %v", err)
	}
	if _, err := svc.GetByID(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	product, err := svc.Add(validProductInput(t))
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}
	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	// 已软删除的商品按不存在处理
	if _, err := svc.GetByID(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for soft-deleted, got %v", err)
	}
}

func TestDeleteProduct_ExcludedFromActiveList(t *testing.T) {
	svc, _ := newTestProductService(t)

	first, err := svc.Add(validProductInput(t))
	if err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	second := validProductInput(t)
	second.PlatformID = "1002"
	if _, err := svc.Add(second); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	if err := svc.Delete(first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeated delete, got %v", err)
	}

	list, total, err := svc.List(1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected 1 active product, got total=%d len=%d", total, len(list))
	}
	if list[0].ID == first.ID {
		t.Fatalf("soft-deleted product still listed")
	}
}

func TestUpdateProduct_PriceChangeAppendsHistory(t *testing.T) {
	svc, db := newTestProductService(t)

	product, err := svc.Add(validProductInput(t))
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}

	// 价格不变则不追加历史
	unchanged := validProductInput(t)
	if _, err := svc.Update(product.ID, unchanged); err != nil {
		t.Fatalf("update unchanged failed: %v", err)
	}
	var count int64
	if err := db.Model(&models.PriceHistory{}).Where("product_id = ?", product.ID).Count(&count).Error; err != nil {
		t.Fatalf("count histories failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 history after unchanged update, got %d", count)
	}

	dropped := validProductInput(t)
	dropped.CurrentPrice = moneyPtr(t, "79.90")
	updated, err := svc.Update(product.ID, dropped)
	if err != nil {
		t.Fatalf("update with price drop failed: %v", err)
	}
	if !updated.CurrentPrice.Equal(mustMoney(t, "79.90").Decimal) {
		t.Fatalf("expected price 79.90, got %s", updated.CurrentPrice)
	}
	if updated.LastChecked == nil {
		t.Fatalf("expected last_checked to be set")
	}

	var histories []models.PriceHistory
	if err := db.Where("product_id = ?", product.ID).Order("id").Find(&histories).Error; err != nil {
		t.Fatalf("load histories failed: %v", err)
	}
	if len(histories) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(histories))
	}
	if histories[1].Source != constants.PriceSourceUpdate {
		t.Fatalf("expected update source, got %s", histories[1].Source)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc, _ := newTestProductService(t)

	if _, err := svc.Update(42, validProductInput(t)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByCategoryAndBrand(t *testing.T) {
	svc, _ := newTestProductService(t)

	phone := validProductInput(t)
	phone.Category = "手机"
	phone.Brand = "小米"
	phone.PlatformID = "2001"
	if _, err := svc.Add(phone); err != nil {
		t.Fatalf("add phone failed: %v", err)
	}
	laptop := validProductInput(t)
	laptop.Category = "电脑"
	laptop.Brand = "联想"
	laptop.PlatformID = "2002"
	if _, err := svc.Add(laptop); err != nil {
		t.Fatalf("add laptop failed: %v", err)
	}

	if _, _, err := svc.ListByCategory("  ", 1, 20); !errors.Is(err, ErrCategoryEmpty) {
		t.Fatalf("expected ErrCategoryEmpty, got %v", err)
	}
	if _, _, err := svc.ListByBrand("", 1, 20); !errors.Is(err, ErrBrandEmpty) {
		t.Fatalf("expected ErrBrandEmpty, got %v", err)
	}

	byCategory, total, err := svc.ListByCategory("手机", 1, 20)
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 1 || byCategory[0].Category != "手机" {
		t.Fatalf("unexpected category result: total=%d", total)
	}

	byBrand, total, err := svc.ListByBrand("联想", 1, 20)
	if err != nil {
		t.Fatalf("list by brand failed: %v", err)
	}
	if total != 1 || byBrand[0].Brand != "联想" {
		t.Fatalf("unexpected brand result: total=%d", total)
	}
}

func TestListByPriceRange(t *testing.T) {
	svc, _ := newTestProductService(t)

	prices := []string{"50.00", "150.00", "300.00"}
	for i, price := range prices {
		input := validProductInput(t)
		input.PlatformID = fmt.Sprintf("30%02d", i)
		input.CurrentPrice = moneyPtr(t, price)
		if _, err := svc.Add(input); err != nil {
			t.Fatalf("add product %d failed: %v", i, err)
		}
	}

	if _, _, err := svc.ListByPriceRange(nil, moneyPtr(t, "100"), 1, 20); !errors.Is(err, ErrPriceRangeRequired) {
		t.Fatalf("expected ErrPriceRangeRequired, got %v", err)
	}
	if _, _, err := svc.ListByPriceRange(moneyPtr(t, "200"), moneyPtr(t, "100"), 1, 20); !errors.Is(err, ErrPriceRangeInvalid) {
		t.Fatalf("expected ErrPriceRangeInvalid for min>max, got %v", err)
	}
	if _, _, err := svc.ListByPriceRange(moneyPtr(t, "-1"), moneyPtr(t, "100"), 1, 20); !errors.Is(err, ErrPriceRangeInvalid) {
		t.Fatalf("expected ErrPriceRangeInvalid for negative, got %v", err)
	}

	list, total, err := svc.ListByPriceRange(moneyPtr(t, "40"), moneyPtr(t, "200"), 1, 20)
	if err != nil {
		t.Fatalf("list by price range failed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 products in range, got total=%d len=%d", total, len(list))
	}
	// 价格区间查询按价格升序返回
	if !list[0].CurrentPrice.LessThan(list[1].CurrentPrice.Decimal) {
		t.Fatalf("expected ascending price order, got %s then %s", list[0].CurrentPrice, list[1].CurrentPrice)
	}
}

func TestPriceHistory_Listing(t *testing.T) {
	svc, _ := newTestProductService(t)

	product, err := svc.Add(validProductInput(t))
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}
	update := validProductInput(t)
	update.CurrentPrice = moneyPtr(t, "88.00")
	if _, err := svc.Update(product.ID, update); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	records, total, err := svc.PriceHistory(product.ID, 1, 20)
	if err != nil {
		t.Fatalf("price history failed: %v", err)
	}
	if total != 2 || len(records) != 2 {
		t.Fatalf("expected 2 records, got total=%d len=%d", total, len(records))
	}

	if _, _, err := svc.PriceHistory(9999, 1, 20); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown product, got %v", err)
	}
}
