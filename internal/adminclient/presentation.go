package adminclient

import (
	"fmt"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/domain/trade"
)

// Tag is a colored status label
type Tag struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Tag colors
const (
	ColorDefault    = "default"
	ColorSuccess    = "success"
	ColorProcessing = "processing"
	ColorWarning    = "warning"
	ColorError      = "error"
	ColorCyan       = "cyan"
	ColorGreen      = "green"
	ColorOrange     = "orange"
	ColorRed        = "red"
	ColorBlue       = "blue"
	ColorPurple     = "purple"
)

var orderStatusTags = map[int]Tag{
	trade.OrderCancelled: {"已取消", ColorDefault},
	trade.OrderUnpaid:    {"待付款", ColorWarning},
	trade.OrderToShip:    {"待发货", ColorProcessing},
	trade.OrderShipped:   {"待收货", ColorCyan},
	trade.OrderCompleted: {"已完成", ColorSuccess},
}

// OrderStatusTag labels an order status
func OrderStatusTag(status int) Tag {
	if t, ok := orderStatusTags[status]; ok {
		return t
	}
	return Tag{Text: fmt.Sprintf("未知(%d)", status), Color: ColorDefault}
}

var payTypeNames = map[int]string{
	trade.PayWechat: "微信支付",
	trade.PayAlipay: "支付宝",
}

// PayTypeText names a pay type; unknown types render as "-"
func PayTypeText(payType int) string {
	if s, ok := payTypeNames[payType]; ok {
		return s
	}
	return "-"
}

// ProductStatusTag labels a product's sale status
func ProductStatusTag(status int) Tag {
	if status == shared.StatusEnabled {
		return Tag{"上架", ColorSuccess}
	}
	return Tag{"未上架", ColorDefault}
}

var evaluateTags = map[int]Tag{
	0: {"好评", ColorGreen},
	1: {"中评", ColorOrange},
	2: {"差评", ColorRed},
}

// CommentEvaluateTag labels a review's rating
func CommentEvaluateTag(evaluate int) Tag {
	if t, ok := evaluateTags[evaluate]; ok {
		return t
	}
	return Tag{"-", ColorDefault}
}

// CommentStatusTag labels a review's moderation status
func CommentStatusTag(status int) Tag {
	switch status {
	case catalog.CommApproved:
		return Tag{"已通过", ColorSuccess}
	case catalog.CommRejected:
		return Tag{"不通过", ColorError}
	default:
		return Tag{"待审核", ColorProcessing}
	}
}

// ReplyTag labels whether a review was answered
func ReplyTag(replySts int) Tag {
	if replySts == 1 {
		return Tag{"已回复", ColorSuccess}
	}
	return Tag{"未回复", ColorDefault}
}

// EnabledTag labels the status of categories and product tags
func EnabledTag(status int) Tag {
	if status == shared.StatusEnabled {
		return Tag{"正常", ColorSuccess}
	}
	return Tag{"禁用", ColorError}
}

var prodTagStyles = map[int]string{
	0: "一列一个",
	1: "一列两个",
	2: "一列三个",
}

// ProdTagStyleText names a product tag's list style
func ProdTagStyleText(style int) string {
	if s, ok := prodTagStyles[style]; ok {
		return s
	}
	return "-"
}

var areaLevelTags = map[int]Tag{
	region.LevelProvince: {"省", ColorBlue},
	region.LevelCity:     {"市", ColorGreen},
	region.LevelDistrict: {"区/县", ColorOrange},
	region.LevelTown:     {"镇/街道", ColorPurple},
}

// AreaLevelTag labels an area level
func AreaLevelTag(level int) Tag {
	if t, ok := areaLevelTags[level]; ok {
		return t
	}
	return Tag{fmt.Sprintf("级别%d", level), ColorDefault}
}

// NoticeStatusTag labels whether a notice is published
func NoticeStatusTag(status int) Tag {
	if status == shared.StatusEnabled {
		return Tag{"已公布", ColorSuccess}
	}
	return Tag{"已撤回", ColorDefault}
}

// NoticeTopTag labels whether a notice is pinned
func NoticeTopTag(isTop int) Tag {
	if isTop == 1 {
		return Tag{"置顶", ColorProcessing}
	}
	return Tag{"否", ColorDefault}
}

// HotSearchStatusTag labels a hot search term
func HotSearchStatusTag(status int) Tag {
	if status == shared.StatusEnabled {
		return Tag{"正常", ColorSuccess}
	}
	return Tag{"下线", ColorDefault}
}

// MemberStatusTag labels a member account
func MemberStatusTag(status int) Tag {
	if status == shared.StatusEnabled {
		return Tag{"正常", ColorSuccess}
	}
	return Tag{"无效", ColorError}
}
