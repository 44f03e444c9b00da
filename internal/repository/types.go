package repository

import "github.com/pricepulse/internal/models"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Brand      string
	MinPrice   *models.Money
	MaxPrice   *models.Money
	OnlyActive bool
	OrderBy    string // created_desc（默认）/ price_asc
}

// PriceHistoryListFilter 查询价格历史的过滤条件
type PriceHistoryListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
}
