package repository

import (
	"errors"
	"time"

	"github.com/pricepulse/internal/constants"
	"github.com/pricepulse/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetByPlatformID(platformID, platform string) (*models.Product, error)
	List(filter ProductListFilter) ([]models.Product, int64, error)
	Update(product *models.Product) (int64, error)
	SoftDelete(id uint) (int64, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create 创建商品。(platform, platform_id) 唯一索引冲突时
// 返回 gorm.ErrDuplicatedKey，由上层转换为重复商品错误。
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// GetByID 根据 ID 获取商品（不过滤状态，软删除策略由上层决定）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByPlatformID 根据平台与平台商品 ID 获取商品（用于去重预检）
func (r *GormProductRepository) GetByPlatformID(platformID, platform string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("platform_id = ? AND platform = ?", platformID, platform).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("status = ?", constants.ProductStatusActive)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.MinPrice != nil {
		query = query.Where("current_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("current_price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	order := "created_at DESC"
	if filter.OrderBy == "price_asc" {
		order = "current_price ASC"
	}

	var products []models.Product
	if err := query.Order(order).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Update 更新商品，返回受影响行数
func (r *GormProductRepository) Update(product *models.Product) (int64, error) {
	result := r.db.Save(product)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SoftDelete 软删除商品（状态翻转，不物理删除），返回受影响行数
func (r *GormProductRepository) SoftDelete(id uint) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     constants.ProductStatusDeleted,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
