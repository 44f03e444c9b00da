package api

import (
	"strconv"

	"github.com/pricepulse/internal/http/handlers/shared"
	"github.com/pricepulse/internal/http/response"
	"github.com/pricepulse/internal/models"
	"github.com/pricepulse/internal/service"

	"github.com/gin-gonic/gin"
)

// FollowRequest 关注商品请求
type FollowRequest struct {
	UserID              uint          `json:"user_id"`
	ProductID           uint          `json:"product_id"`
	TargetPrice         *models.Money `json:"target_price"`
	NotificationEnabled *int          `json:"notification_enabled"`
	PriceDropThreshold  *models.Money `json:"price_drop_threshold"`
}

// FollowSettingsRequest 更新关注设置请求
type FollowSettingsRequest struct {
	TargetPrice         *models.Money `json:"target_price"`
	NotificationEnabled *int          `json:"notification_enabled"`
	PriceDropThreshold  *models.Money `json:"price_drop_threshold"`
}

// Follow 关注商品
func (h *Handler) Follow(c *gin.Context) {
	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	// 未显式传 user_id 时取当前登录用户
	if req.UserID == 0 {
		userID, ok := shared.GetContextUint(c, contextUserIDKey)
		if !ok {
			return
		}
		req.UserID = userID
	}

	follow, err := h.UserProductService.Follow(req.UserID, req.ProductID, service.FollowInput{
		TargetPrice:         req.TargetPrice,
		NotificationEnabled: req.NotificationEnabled,
		PriceDropThreshold:  req.PriceDropThreshold,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "关注成功", follow)
}

// Unfollow 取消关注
func (h *Handler) Unfollow(c *gin.Context) {
	userID, ok := parseUintQuery(c, "userId")
	if !ok {
		return
	}
	if userID == 0 {
		current, ok := shared.GetContextUint(c, contextUserIDKey)
		if !ok {
			return
		}
		userID = current
	}
	productID, ok := parseUintQuery(c, "productId")
	if !ok {
		return
	}

	if err := h.UserProductService.Unfollow(userID, productID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "已取消关注", nil)
}

// ListFollowsByUser 获取用户关注列表
func (h *Handler) ListFollowsByUser(c *gin.Context) {
	userID, ok := shared.ParseUintParam(c, "userId")
	if !ok {
		return
	}
	follows, total, err := h.UserProductService.ListByUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"list":  follows,
		"total": total,
	})
}

// ListFollowersByProduct 获取商品关注者列表
func (h *Handler) ListFollowersByProduct(c *gin.Context) {
	productID, ok := shared.ParseUintParam(c, "productId")
	if !ok {
		return
	}
	followers, total, err := h.UserProductService.ListByProduct(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"list":  followers,
		"total": total,
	})
}

// UpdateFollowSettings 更新关注设置
func (h *Handler) UpdateFollowSettings(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req FollowSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	follow, err := h.UserProductService.UpdateSettings(id, service.FollowInput{
		TargetPrice:         req.TargetPrice,
		NotificationEnabled: req.NotificationEnabled,
		PriceDropThreshold:  req.PriceDropThreshold,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "设置更新成功", follow)
}

// parseUintQuery 解析查询参数中的非负整数，缺失按 0 处理。
func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "ID无效", nil)
		return 0, false
	}
	return uint(value), true
}
