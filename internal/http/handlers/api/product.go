package api

import (
	"github.com/pricepulse/internal/http/handlers/shared"
	"github.com/pricepulse/internal/http/response"
	"github.com/pricepulse/internal/models"
	"github.com/pricepulse/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name          string        `json:"name"`
	URL           string        `json:"url"`
	ImageURL      string        `json:"image_url"`
	Platform      string        `json:"platform"`
	PlatformID    string        `json:"platform_id"`
	Brand         string        `json:"brand"`
	Category      string        `json:"category"`
	CurrentPrice  *models.Money `json:"current_price"`
	OriginalPrice *models.Money `json:"original_price"`
	DiscountRate  *models.Money `json:"discount_rate"`
	SalesCount    *int          `json:"sales_count"`
	Rating        *models.Money `json:"rating"`
	ReviewCount   *int          `json:"review_count"`
	StockStatus   *int          `json:"stock_status"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:          r.Name,
		URL:           r.URL,
		ImageURL:      r.ImageURL,
		Platform:      r.Platform,
		PlatformID:    r.PlatformID,
		Brand:         r.Brand,
		Category:      r.Category,
		CurrentPrice:  r.CurrentPrice,
		OriginalPrice: r.OriginalPrice,
		DiscountRate:  r.DiscountRate,
		SalesCount:    r.SalesCount,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		StockStatus:   r.StockStatus,
	}
}

// AddProduct 录入商品
func (h *Handler) AddProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	product, err := h.ProductService.Add(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "商品添加成功", product)
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// ListProducts 获取在库商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	products, total, err := h.ProductService.List(page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"list":      products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "商品更新成功", product)
}

// DeleteProduct 删除商品（软删除）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "商品删除成功", nil)
}

// ListProductsByCategory 按分类获取商品
func (h *Handler) ListProductsByCategory(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	products, total, err := h.ProductService.ListByCategory(c.Param("category"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"list":      products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ListProductsByBrand 按品牌获取商品
func (h *Handler) ListProductsByBrand(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	products, total, err := h.ProductService.ListByBrand(c.Param("brand"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"list":      products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ListProductsByPriceRange 按价格区间获取商品
func (h *Handler) ListProductsByPriceRange(c *gin.Context) {
	minPrice, ok := parsePriceQuery(c, "minPrice")
	if !ok {
		return
	}
	maxPrice, ok := parsePriceQuery(c, "maxPrice")
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	products, total, err := h.ProductService.ListByPriceRange(minPrice, maxPrice, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"list":      products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ListPriceHistory 获取商品价格历史
func (h *Handler) ListPriceHistory(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	records, total, err := h.ProductService.PriceHistory(id, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"list":      records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// parsePriceQuery 解析价格查询参数，缺失时返回 nil。
func parsePriceQuery(c *gin.Context, name string) (*models.Money, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	price, err := models.NewMoneyFromString(raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "价格区间无效", nil)
		return nil, false
	}
	return &price, true
}
