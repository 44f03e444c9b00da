package service

import (
	"errors"
	"strings"
	"time"

	"github.com/pricepulse/internal/constants"
	"github.com/pricepulse/internal/logger"
	"github.com/pricepulse/internal/models"
	"github.com/pricepulse/internal/queue"
	"github.com/pricepulse/internal/repository"

	"gorm.io/gorm"
)

// ProductService 商品业务服务
type ProductService struct {
	repo        repository.ProductRepository
	historyRepo repository.PriceHistoryRepository
	queueClient *queue.Client
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, historyRepo repository.PriceHistoryRepository, queueClient *queue.Client) *ProductService {
	return &ProductService{repo: repo, historyRepo: historyRepo, queueClient: queueClient}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name          string
	URL           string
	ImageURL      string
	Platform      string
	PlatformID    string
	Brand         string
	Category      string
	CurrentPrice  *models.Money
	OriginalPrice *models.Money
	DiscountRate  *models.Money
	SalesCount    *int
	Rating        *models.Money
	ReviewCount   *int
	StockStatus   *int
}

// Add 录入商品
func (s *ProductService) Add(input ProductInput) (*models.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	platformID := strings.TrimSpace(input.PlatformID)
	if platformID != "" {
		existing, err := s.repo.GetByPlatformID(platformID, input.Platform)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrProductExists
		}
	}

	product := models.Product{
		Name:          input.Name,
		URL:           input.URL,
		ImageURL:      strings.TrimSpace(input.ImageURL),
		Platform:      input.Platform,
		Brand:         strings.TrimSpace(input.Brand),
		Category:      strings.TrimSpace(input.Category),
		CurrentPrice:  *input.CurrentPrice,
		OriginalPrice: input.OriginalPrice,
		DiscountRate:  input.DiscountRate,
		Rating:        input.Rating,
		StockStatus:   constants.StockStatusIn,
		Status:        constants.ProductStatusActive,
	}
	if platformID != "" {
		product.PlatformID = &platformID
	}
	if input.SalesCount != nil {
		product.SalesCount = *input.SalesCount
	}
	if input.ReviewCount != nil {
		product.ReviewCount = *input.ReviewCount
	}
	if input.StockStatus != nil {
		product.StockStatus = normalizeStockStatus(*input.StockStatus)
	}
	now := time.Now()
	product.LastChecked = &now

	if err := s.repo.Create(&product); err != nil {
		// 并发录入同一平台商品时依赖唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProductExists
		}
		return nil, err
	}

	s.recordPrice(&product, constants.PriceSourceManual, now)
	return &product, nil
}

// GetByID 获取商品详情（已删除按不存在处理）
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrIDInvalid
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status == constants.ProductStatusDeleted {
		return nil, ErrNotFound
	}
	return product, nil
}

// List 获取在库商品列表
func (s *ProductService) List(page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		OnlyActive: true,
	})
}

// ListByCategory 按分类获取商品
func (s *ProductService) ListByCategory(category string, page, pageSize int) ([]models.Product, int64, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, 0, ErrCategoryEmpty
	}
	return s.repo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   category,
		OnlyActive: true,
	})
}

// ListByBrand 按品牌获取商品
func (s *ProductService) ListByBrand(brand string, page, pageSize int) ([]models.Product, int64, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return nil, 0, ErrBrandEmpty
	}
	return s.repo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Brand:      brand,
		OnlyActive: true,
	})
}

// ListByPriceRange 按价格区间获取商品（价格升序）
func (s *ProductService) ListByPriceRange(minPrice, maxPrice *models.Money, page, pageSize int) ([]models.Product, int64, error) {
	if minPrice == nil || maxPrice == nil {
		return nil, 0, ErrPriceRangeRequired
	}
	if minPrice.IsNegative() || maxPrice.IsNegative() || minPrice.GreaterThan(maxPrice.Decimal) {
		return nil, 0, ErrPriceRangeInvalid
	}
	return s.repo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		OnlyActive: true,
		OrderBy:    "price_asc",
	})
}

// Update 更新商品信息，价格变动时追加历史并触发降价提醒
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	if id == 0 {
		return nil, ErrIDInvalid
	}
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status == constants.ProductStatusDeleted {
		return nil, ErrNotFound
	}

	oldPrice := product.CurrentPrice
	now := time.Now()

	product.Name = input.Name
	product.URL = input.URL
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.Platform = input.Platform
	product.Brand = strings.TrimSpace(input.Brand)
	product.Category = strings.TrimSpace(input.Category)
	product.CurrentPrice = *input.CurrentPrice
	product.OriginalPrice = input.OriginalPrice
	product.DiscountRate = input.DiscountRate
	product.Rating = input.Rating
	if platformID := strings.TrimSpace(input.PlatformID); platformID != "" {
		product.PlatformID = &platformID
	}
	if input.SalesCount != nil {
		product.SalesCount = *input.SalesCount
	}
	if input.ReviewCount != nil {
		product.ReviewCount = *input.ReviewCount
	}
	if input.StockStatus != nil {
		product.StockStatus = normalizeStockStatus(*input.StockStatus)
	}
	product.LastChecked = &now

	rows, err := s.repo.Update(product)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProductExists
		}
		return nil, err
	}
	if rows == 0 {
		return nil, ErrPersistFailed
	}

	if !product.CurrentPrice.Equal(oldPrice.Decimal) {
		s.recordPrice(product, constants.PriceSourceUpdate, now)
	}
	if product.CurrentPrice.LessThan(oldPrice.Decimal) {
		s.enqueuePriceDropAlert(product.ID, oldPrice, product.CurrentPrice)
	}
	return product, nil
}

// Delete 软删除商品
func (s *ProductService) Delete(id uint) error {
	if id == 0 {
		return ErrIDInvalid
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil || product.Status == constants.ProductStatusDeleted {
		return ErrNotFound
	}
	rows, err := s.repo.SoftDelete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPersistFailed
	}
	return nil
}

// PriceHistory 获取商品价格历史（按记录时间倒序）
func (s *ProductService) PriceHistory(productID uint, page, pageSize int) ([]models.PriceHistory, int64, error) {
	if productID == 0 {
		return nil, 0, ErrIDInvalid
	}
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return nil, 0, err
	}
	if product == nil || product.Status == constants.ProductStatusDeleted {
		return nil, 0, ErrNotFound
	}
	return s.historyRepo.List(repository.PriceHistoryListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
	})
}

// recordPrice 追加一条价格历史，失败只记日志不阻断主流程
func (s *ProductService) recordPrice(product *models.Product, source string, checkedAt time.Time) {
	record := models.PriceHistory{
		ProductID:     product.ID,
		Price:         product.CurrentPrice,
		OriginalPrice: product.OriginalPrice,
		DiscountRate:  product.DiscountRate,
		Source:        source,
		CheckedAt:     checkedAt,
	}
	if err := s.historyRepo.Create(&record); err != nil {
		logger.Errorw("price_history_record_failed",
			"product_id", product.ID,
			"source", source,
			"error", err,
		)
	}
}

func (s *ProductService) enqueuePriceDropAlert(productID uint, oldPrice, newPrice models.Money) {
	if !s.queueClient.Enabled() {
		return
	}
	err := s.queueClient.EnqueuePriceDropAlert(queue.PriceDropAlertPayload{
		ProductID: productID,
		OldPrice:  oldPrice.StringFixed(2),
		NewPrice:  newPrice.StringFixed(2),
	})
	if err != nil {
		logger.Errorw("price_drop_alert_enqueue_failed",
			"product_id", productID,
			"error", err,
		)
		return
	}
	logger.Infow("price_drop_alert_enqueued",
		"product_id", productID,
		"old_price", oldPrice.StringFixed(2),
		"new_price", newPrice.StringFixed(2),
	)
}

// validateProductInput 校验输入并做平台归一化
func validateProductInput(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return ErrProductNameEmpty
	}
	input.URL = strings.TrimSpace(input.URL)
	if input.URL == "" {
		return ErrProductURLEmpty
	}
	if strings.TrimSpace(input.Platform) == "" {
		return ErrPlatformEmpty
	}
	input.Platform = normalizePlatform(input.Platform)
	if input.CurrentPrice == nil {
		return ErrPriceRequired
	}
	if !input.CurrentPrice.IsPositive() {
		return ErrPriceInvalid
	}
	return nil
}

// normalizePlatform 平台归一化，未知平台归入 OTHER
func normalizePlatform(raw string) string {
	value := strings.ToUpper(strings.TrimSpace(raw))
	for _, platform := range constants.Platforms {
		if value == platform {
			return platform
		}
	}
	return constants.PlatformOther
}

func normalizeStockStatus(raw int) int {
	if raw == constants.StockStatusOut {
		return constants.StockStatusOut
	}
	return constants.StockStatusIn
}
