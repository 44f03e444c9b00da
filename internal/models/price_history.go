package models

import "time"

// PriceHistory 价格历史表（商品每次价格变动追加一行）
type PriceHistory struct {
	ID            uint      `gorm:"primarykey" json:"id"`                            // 主键
	ProductID     uint      `gorm:"not null;index" json:"product_id"`                // 商品 ID
	Price         Money     `gorm:"type:decimal(20,2);not null" json:"price"`        // 记录时价格
	OriginalPrice *Money    `gorm:"type:decimal(20,2)" json:"original_price"`        // 记录时原价
	DiscountRate  *Money    `gorm:"type:decimal(20,2)" json:"discount_rate"`         // 记录时折扣率
	Source        string    `gorm:"type:varchar(20);default:'update'" json:"source"` // 记录来源
	CheckedAt     time.Time `gorm:"index" json:"checked_at"`                         // 记录时间
}

// TableName 指定表名
func (PriceHistory) TableName() string {
	return "price_histories"
}
