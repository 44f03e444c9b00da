package models

import "time"

// UserProduct 用户关注表（用户与商品的订阅关系）
type UserProduct struct {
	ID                  uint      `gorm:"primarykey" json:"id"`                                    // 主键
	UserID              uint      `gorm:"not null;uniqueIndex:idx_user_product" json:"user_id"`    // 用户 ID
	ProductID           uint      `gorm:"not null;uniqueIndex:idx_user_product" json:"product_id"` // 商品 ID
	TargetPrice         *Money    `gorm:"type:decimal(20,2)" json:"target_price"`                  // 期望价格（可空）
	NotificationEnabled int       `gorm:"not null" json:"notification_enabled"`                    // 通知开关（1=开启 0=关闭），默认值由服务层写入，避免零值被列默认值覆盖
	PriceDropThreshold  Money     `gorm:"type:decimal(20,2);not null" json:"price_drop_threshold"` // 降价提醒阈值（百分比）
	CreatedAt           time.Time `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt           time.Time `json:"updated_at"`                                              // 更新时间
}

// TableName 指定表名
func (UserProduct) TableName() string {
	return "user_products"
}

// FollowedProduct 关注列表展示行（关注记录 + 商品概要）
type FollowedProduct struct {
	UserProduct
	ProductName  string `json:"product_name"`  // 商品名称
	ProductPrice *Money `json:"product_price"` // 商品当前价格
	ProductImage string `json:"product_image"` // 商品主图
}

// ProductFollower 商品关注者展示行（关注记录 + 用户名）
type ProductFollower struct {
	UserProduct
	Username string `json:"username"` // 关注者用户名
}
