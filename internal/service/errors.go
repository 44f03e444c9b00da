package service

import "errors"

// 业务错误定义，handler 层通过 errors.Is 映射为响应码和提示文案
var (
	// 通用
	ErrNotFound      = errors.New("记录不存在")
	ErrIDInvalid     = errors.New("ID无效")
	ErrPersistFailed = errors.New("数据保存失败")

	// 商品
	ErrProductExists      = errors.New("该商品已存在")
	ErrProductNameEmpty   = errors.New("商品名称不能为空")
	ErrProductURLEmpty    = errors.New("商品链接不能为空")
	ErrPlatformEmpty      = errors.New("商品平台不能为空")
	ErrPriceRequired      = errors.New("商品价格不能为空")
	ErrPriceInvalid       = errors.New("商品价格必须大于0")
	ErrCategoryEmpty      = errors.New("商品分类不能为空")
	ErrBrandEmpty         = errors.New("商品品牌不能为空")
	ErrPriceRangeRequired = errors.New("价格区间不能为空")
	ErrPriceRangeInvalid  = errors.New("价格区间无效")

	// 关注
	ErrUserIDRequired     = errors.New("用户ID无效")
	ErrProductIDRequired  = errors.New("商品ID无效")
	ErrAlreadyFollowing   = errors.New("已关注该商品")
	ErrNotFollowing       = errors.New("未关注该商品")
	ErrTargetPriceInvalid = errors.New("目标价格必须大于0")
	ErrThresholdInvalid   = errors.New("降价提醒阈值必须在0-100之间")

	// 用户
	ErrUsernameRequired   = errors.New("用户名不能为空")
	ErrPasswordRequired   = errors.New("密码不能为空")
	ErrUserExists         = errors.New("用户名已存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("用户已被禁用")
	ErrTokenInvalid       = errors.New("登录凭证无效")
)
