package constants

// 电商平台常量
const (
	PlatformTaobao = "TAOBAO"
	PlatformTmall  = "TMALL"
	PlatformJD     = "JD"
	PlatformPDD    = "PDD"
	PlatformOther  = "OTHER"
)

// Platforms 支持的平台列表（按展示顺序）
var Platforms = []string{
	PlatformTaobao,
	PlatformTmall,
	PlatformJD,
	PlatformPDD,
	PlatformOther,
}

// 商品状态常量（软删除标记）
const (
	ProductStatusDeleted = 0
	ProductStatusActive  = 1
)

// 库存状态常量
const (
	StockStatusOut = 0
	StockStatusIn  = 1
)

// 通知开关常量
const (
	NotificationDisabled = 0
	NotificationEnabled  = 1
)

// 用户状态常量
const (
	UserStatusDisabled = 0
	UserStatusActive   = 1
)

// DefaultPriceDropThreshold 降价提醒默认阈值（百分比）
const DefaultPriceDropThreshold = "5.00"

// 价格历史来源常量
const (
	PriceSourceManual = "manual"
	PriceSourceUpdate = "update"
)

// QueueDefault 默认队列名称
const QueueDefault = "default"

// TaskPriceDropAlert 降价提醒任务名称
const TaskPriceDropAlert = "alert:price_drop"
