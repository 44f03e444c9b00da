package service

import (
	"errors"

	"github.com/pricepulse/internal/constants"
	"github.com/pricepulse/internal/models"
	"github.com/pricepulse/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserProductService 商品关注业务服务
type UserProductService struct {
	repo        repository.UserProductRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewUserProductService 创建关注服务
func NewUserProductService(repo repository.UserProductRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) *UserProductService {
	return &UserProductService{repo: repo, productRepo: productRepo, userRepo: userRepo}
}

// FollowInput 关注/更新关注设置输入
type FollowInput struct {
	TargetPrice         *models.Money
	NotificationEnabled *int
	PriceDropThreshold  *models.Money
}

// Follow 关注商品
func (s *UserProductService) Follow(userID, productID uint, input FollowInput) (*models.UserProduct, error) {
	if userID == 0 {
		return nil, ErrUserIDRequired
	}
	if productID == 0 {
		return nil, ErrProductIDRequired
	}
	if err := validateFollowSettings(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status == constants.ProductStatusDeleted {
		return nil, ErrNotFound
	}

	existing, err := s.repo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyFollowing
	}

	follow := models.UserProduct{
		UserID:              userID,
		ProductID:           productID,
		TargetPrice:         input.TargetPrice,
		NotificationEnabled: constants.NotificationEnabled,
		PriceDropThreshold:  defaultThreshold(),
	}
	if input.NotificationEnabled != nil {
		follow.NotificationEnabled = normalizeNotification(*input.NotificationEnabled)
	}
	if input.PriceDropThreshold != nil {
		follow.PriceDropThreshold = *input.PriceDropThreshold
	}

	if err := s.repo.Create(&follow); err != nil {
		// 并发重复关注依赖 (user_id, product_id) 唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}
	return &follow, nil
}

// Unfollow 取消关注
func (s *UserProductService) Unfollow(userID, productID uint) error {
	if userID == 0 {
		return ErrUserIDRequired
	}
	if productID == 0 {
		return ErrProductIDRequired
	}
	rows, err := s.repo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFollowing
	}
	return nil
}

// ListByUser 获取用户关注列表（含商品概要）
func (s *UserProductService) ListByUser(userID uint) ([]models.FollowedProduct, int64, error) {
	if userID == 0 {
		return nil, 0, ErrUserIDRequired
	}
	rows, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListByProduct 获取商品关注者列表（含关注人数）
func (s *UserProductService) ListByProduct(productID uint) ([]models.ProductFollower, int64, error) {
	if productID == 0 {
		return nil, 0, ErrProductIDRequired
	}
	rows, err := s.repo.ListByProduct(productID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByProduct(productID)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateSettings 更新关注设置（目标价/通知开关/阈值）
func (s *UserProductService) UpdateSettings(id uint, input FollowInput) (*models.UserProduct, error) {
	if id == 0 {
		return nil, ErrIDInvalid
	}
	if err := validateFollowSettings(input); err != nil {
		return nil, err
	}

	follow, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if follow == nil {
		return nil, ErrNotFound
	}

	if input.TargetPrice != nil {
		follow.TargetPrice = input.TargetPrice
	}
	if input.NotificationEnabled != nil {
		follow.NotificationEnabled = normalizeNotification(*input.NotificationEnabled)
	}
	if input.PriceDropThreshold != nil {
		follow.PriceDropThreshold = *input.PriceDropThreshold
	}

	rows, err := s.repo.Update(follow)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrPersistFailed
	}
	return follow, nil
}

// validateFollowSettings 关注创建和设置更新共用同一套校验
func validateFollowSettings(input FollowInput) error {
	if input.TargetPrice != nil && !input.TargetPrice.IsPositive() {
		return ErrTargetPriceInvalid
	}
	if input.PriceDropThreshold != nil {
		threshold := input.PriceDropThreshold.Decimal
		if threshold.IsNegative() || threshold.GreaterThan(decimal.NewFromInt(100)) {
			return ErrThresholdInvalid
		}
	}
	return nil
}

func defaultThreshold() models.Money {
	threshold, _ := models.NewMoneyFromString(constants.DefaultPriceDropThreshold)
	return threshold
}

func normalizeNotification(raw int) int {
	if raw == constants.NotificationDisabled {
		return constants.NotificationDisabled
	}
	return constants.NotificationEnabled
}
