package repository

import (
	"github.com/pricepulse/internal/models"

	"gorm.io/gorm"
)

// PriceHistoryRepository 价格历史数据访问接口
type PriceHistoryRepository interface {
	Create(record *models.PriceHistory) error
	List(filter PriceHistoryListFilter) ([]models.PriceHistory, int64, error)
}

// GormPriceHistoryRepository GORM 实现
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewPriceHistoryRepository 创建价格历史仓库
func NewPriceHistoryRepository(db *gorm.DB) *GormPriceHistoryRepository {
	return &GormPriceHistoryRepository{db: db}
}

// Create 追加价格记录
func (r *GormPriceHistoryRepository) Create(record *models.PriceHistory) error {
	return r.db.Create(record).Error
}

// List 价格历史列表（按记录时间倒序）
func (r *GormPriceHistoryRepository) List(filter PriceHistoryListFilter) ([]models.PriceHistory, int64, error) {
	query := r.db.Model(&models.PriceHistory{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var records []models.PriceHistory
	if err := query.Order("checked_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
