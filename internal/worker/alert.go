package worker

import (
	"github.com/pricepulse/internal/constants"
	"github.com/pricepulse/internal/models"

	"github.com/shopspring/decimal"
)

// AlertReason 提醒触发原因
type AlertReason string

const (
	AlertReasonNone        AlertReason = ""
	AlertReasonTargetPrice AlertReason = "target_price_reached"
	AlertReasonThreshold   AlertReason = "drop_threshold_reached"
)

// EvaluateAlert 判断一条关注记录是否需要触发降价提醒。
// 命中目标价优先于命中降幅阈值。
func EvaluateAlert(follow models.UserProduct, oldPrice, newPrice models.Money) AlertReason {
	if follow.NotificationEnabled != constants.NotificationEnabled {
		return AlertReasonNone
	}
	if !newPrice.LessThan(oldPrice.Decimal) {
		return AlertReasonNone
	}

	if follow.TargetPrice != nil && newPrice.LessThanOrEqual(follow.TargetPrice.Decimal) {
		return AlertReasonTargetPrice
	}

	if oldPrice.IsPositive() {
		dropPercent := oldPrice.Sub(newPrice.Decimal).
			Div(oldPrice.Decimal).
			Mul(decimal.NewFromInt(100))
		if dropPercent.GreaterThanOrEqual(follow.PriceDropThreshold.Decimal) {
			return AlertReasonThreshold
		}
	}
	return AlertReasonNone
}
