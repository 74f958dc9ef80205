package catalog

import (
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// Comment evaluations
const (
	EvaluateGood    = 0
	EvaluateNeutral = 1
	EvaluateBad     = 2
)

// Comment review statuses
const (
	CommRejected = -1
	CommPending  = 0
	CommApproved = 1
)

// ProdComm is a customer review of a product
type ProdComm struct {
	ProdCommID   int64      `gorm:"column:prod_comm_id;primaryKey;autoIncrement" json:"prodCommId"`
	ProdID       int64      `gorm:"column:prod_id;not null;index" json:"prodId"`
	ProdName     string     `gorm:"-" json:"prodName"`
	OrderItemID  int64      `gorm:"column:order_item_id" json:"orderItemId"`
	UserID       string     `gorm:"column:user_id;type:varchar(36)" json:"userId"`
	NickName     string     `gorm:"-" json:"nickName"`
	Content      string     `gorm:"column:content;type:varchar(500)" json:"content"`
	ReplyContent string     `gorm:"column:reply_content;type:varchar(500)" json:"replyContent"`
	RecTime      time.Time  `gorm:"column:rec_time;autoCreateTime" json:"recTime"`
	ReplyTime    *time.Time `gorm:"column:reply_time" json:"replyTime"`
	ReplySts     int        `gorm:"column:reply_sts;not null;default:0" json:"replySts"`
	PostIP       string     `gorm:"column:postip;type:varchar(16)" json:"postip"`
	Score        int        `gorm:"column:score;not null" json:"score"`
	UsefulCounts int        `gorm:"column:useful_counts;not null;default:0" json:"usefulCounts"`
	Pics         string     `gorm:"column:pics;type:varchar(1000)" json:"pics"`
	IsAnonymous  int        `gorm:"column:is_anonymous;not null;default:0" json:"isAnonymous"`
	Status       int        `gorm:"column:status;not null;default:0" json:"status"`
	Evaluate     int        `gorm:"column:evaluate;not null;default:0" json:"evaluate"`
}

// TableName returns the table name for GORM
func (ProdComm) TableName() string {
	return "tz_prod_comm"
}

func (c ProdComm) GetID() int64 { return c.ProdCommID }

// Reply records the shop's answer and review decision
func (c *ProdComm) Reply(content string, replySts, status int, now time.Time) error {
	if status != CommRejected && status != CommPending && status != CommApproved {
		return shared.InvalidInput("Status must be -1, 0 or 1")
	}
	content = strings.TrimSpace(content)
	if replySts == 1 && content == "" {
		return shared.InvalidInput("Reply content is required")
	}
	if len([]rune(content)) > 500 {
		return shared.InvalidInput("Reply cannot exceed 500 characters")
	}
	c.Status = status
	if content != "" && content != c.ReplyContent {
		c.ReplyContent = content
		c.ReplyTime = &now
	}
	c.ReplySts = shared.BoolFlag(c.ReplyContent != "")
	return nil
}
