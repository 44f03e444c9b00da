package api

import (
	"errors"

	"github.com/pricepulse/internal/http/handlers/shared"
	"github.com/pricepulse/internal/http/response"
	"github.com/pricepulse/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}

// knownBusinessErrors 业务错误统一按 400 返回，消息取错误文案本身。
var knownBusinessErrors = []error{
	service.ErrNotFound,
	service.ErrIDInvalid,
	service.ErrPersistFailed,
	service.ErrProductExists,
	service.ErrProductNameEmpty,
	service.ErrProductURLEmpty,
	service.ErrPlatformEmpty,
	service.ErrPriceRequired,
	service.ErrPriceInvalid,
	service.ErrCategoryEmpty,
	service.ErrBrandEmpty,
	service.ErrPriceRangeRequired,
	service.ErrPriceRangeInvalid,
	service.ErrUserIDRequired,
	service.ErrProductIDRequired,
	service.ErrAlreadyFollowing,
	service.ErrNotFollowing,
	service.ErrTargetPriceInvalid,
	service.ErrThresholdInvalid,
	service.ErrUsernameRequired,
	service.ErrPasswordRequired,
	service.ErrUserExists,
	service.ErrInvalidCredentials,
	service.ErrUserDisabled,
}

// respondServiceError 将业务错误映射为响应，未识别的错误按 500 处理。
func respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrTokenInvalid) {
		respondError(c, response.CodeUnauthorized, service.ErrTokenInvalid.Error(), nil)
		return
	}
	for _, target := range knownBusinessErrors {
		if errors.Is(err, target) {
			respondError(c, response.CodeBadRequest, target.Error(), nil)
			return
		}
	}
	respondError(c, response.CodeInternal, "系统繁忙，请稍后重试", err)
}
