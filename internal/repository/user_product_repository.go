package repository

import (
	"errors"

	"github.com/pricepulse/internal/constants"
	"github.com/pricepulse/internal/models"

	"gorm.io/gorm"
)

// UserProductRepository 关注关系数据访问接口
type UserProductRepository interface {
	Create(follow *models.UserProduct) error
	GetByID(id uint) (*models.UserProduct, error)
	GetByUserAndProduct(userID, productID uint) (*models.UserProduct, error)
	ListByUser(userID uint) ([]models.FollowedProduct, error)
	ListByProduct(productID uint) ([]models.ProductFollower, error)
	ListEnabledByProduct(productID uint) ([]models.UserProduct, error)
	Update(follow *models.UserProduct) (int64, error)
	DeleteByUserAndProduct(userID, productID uint) (int64, error)
	CountByUser(userID uint) (int64, error)
	CountByProduct(productID uint) (int64, error)
}

// GormUserProductRepository GORM 实现
type GormUserProductRepository struct {
	db *gorm.DB
}

// NewUserProductRepository 创建关注关系仓库
func NewUserProductRepository(db *gorm.DB) *GormUserProductRepository {
	return &GormUserProductRepository{db: db}
}

// Create 创建关注记录。(user_id, product_id) 唯一索引冲突时
// 返回 gorm.ErrDuplicatedKey，由上层转换为重复关注错误。
func (r *GormUserProductRepository) Create(follow *models.UserProduct) error {
	return r.db.Create(follow).Error
}

// GetByID 根据 ID 获取关注记录
func (r *GormUserProductRepository) GetByID(id uint) (*models.UserProduct, error) {
	var follow models.UserProduct
	if err := r.db.First(&follow, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

// GetByUserAndProduct 根据用户与商品获取关注记录（用于去重预检）
func (r *GormUserProductRepository) GetByUserAndProduct(userID, productID uint) (*models.UserProduct, error) {
	var follow models.UserProduct
	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

// ListByUser 用户关注列表（仅通知开启的记录），左联商品概要用于展示
func (r *GormUserProductRepository) ListByUser(userID uint) ([]models.FollowedProduct, error) {
	var rows []models.FollowedProduct
	err := r.db.Model(&models.UserProduct{}).
		Select("user_products.*, products.name AS product_name, products.current_price AS product_price, products.image_url AS product_image").
		Joins("LEFT JOIN products ON user_products.product_id = products.id").
		Where("user_products.user_id = ? AND user_products.notification_enabled = ?", userID, constants.NotificationEnabled).
		Order("user_products.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByProduct 商品关注者列表（仅通知开启的记录），左联用户名用于展示
func (r *GormUserProductRepository) ListByProduct(productID uint) ([]models.ProductFollower, error) {
	var rows []models.ProductFollower
	err := r.db.Model(&models.UserProduct{}).
		Select("user_products.*, users.username AS username").
		Joins("LEFT JOIN users ON user_products.user_id = users.id").
		Where("user_products.product_id = ? AND user_products.notification_enabled = ?", productID, constants.NotificationEnabled).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListEnabledByProduct 商品的全部有效关注记录（降价提醒用）
func (r *GormUserProductRepository) ListEnabledByProduct(productID uint) ([]models.UserProduct, error) {
	var rows []models.UserProduct
	err := r.db.Where("product_id = ? AND notification_enabled = ?", productID, constants.NotificationEnabled).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update 更新关注记录，返回受影响行数
func (r *GormUserProductRepository) Update(follow *models.UserProduct) (int64, error) {
	result := r.db.Save(follow)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteByUserAndProduct 取消关注（物理删除），返回受影响行数
func (r *GormUserProductRepository) DeleteByUserAndProduct(userID, productID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.UserProduct{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountByUser 统计用户关注数量
func (r *GormUserProductRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.UserProduct{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByProduct 统计商品被关注数量
func (r *GormUserProductRepository) CountByProduct(productID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.UserProduct{}).
		Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
