package models

import "time"

// Product 商品表
type Product struct {
	ID            uint       `gorm:"primarykey" json:"id"`                                                   // 主键
	Name          string     `gorm:"not null" json:"name"`                                                   // 商品名称
	URL           string     `gorm:"not null" json:"url"`                                                    // 商品链接
	ImageURL      string     `gorm:"default:''" json:"image_url"`                                            // 商品主图
	Platform      string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_platform_pid" json:"platform"` // 来源平台
	PlatformID    *string    `gorm:"uniqueIndex:idx_platform_pid" json:"platform_id"`                        // 平台侧商品 ID（可空）
	Brand         string     `gorm:"index;default:''" json:"brand"`                                          // 品牌
	Category      string     `gorm:"index;default:''" json:"category"`                                       // 分类
	CurrentPrice  Money      `gorm:"type:decimal(20,2);not null" json:"current_price"`                       // 当前价格
	OriginalPrice *Money     `gorm:"type:decimal(20,2)" json:"original_price"`                               // 原价
	DiscountRate  *Money     `gorm:"type:decimal(20,2)" json:"discount_rate"`                                // 折扣率
	SalesCount    int        `gorm:"not null;default:0" json:"sales_count"`                                  // 销量
	Rating        *Money     `gorm:"type:decimal(20,2)" json:"rating"`                                       // 评分
	ReviewCount   int        `gorm:"not null;default:0" json:"review_count"`                                 // 评价数
	StockStatus   int        `gorm:"not null" json:"stock_status"`                                           // 库存状态（1=有货 0=缺货），默认值由服务层写入
	LastChecked   *time.Time `json:"last_checked"`                                                           // 最近比价时间
	Status        int        `gorm:"not null;index" json:"status"`                                           // 状态（1=在库 0=已删除），默认值由服务层写入
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                                                // 创建时间
	UpdatedAt     time.Time  `json:"updated_at"`                                                             // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
