// Package marketing holds storefront content managed from the back-office:
// hot search words, carousel images and notices.
package marketing

import (
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// HotSearch is a suggested search term shown on the storefront
type HotSearch struct {
	HotSearchID int64     `gorm:"column:hot_search_id;primaryKey;autoIncrement" json:"hotSearchId"`
	ShopID      int64     `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	Title       string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Content     string    `gorm:"column:content;type:varchar(255)" json:"content"`
	Seq         int       `gorm:"column:seq;not null;default:0" json:"seq"`
	Status      int       `gorm:"column:status;not null" json:"status"`
	RecDate     time.Time `gorm:"column:rec_date;autoCreateTime" json:"recDate"`
}

// TableName returns the table name for GORM
func (HotSearch) TableName() string {
	return "tz_hot_search"
}

func (h HotSearch) GetID() int64 { return h.HotSearchID }

// Validate checks a hot search before it is stored
func (h *HotSearch) Validate() error {
	h.Title = strings.TrimSpace(h.Title)
	if h.Title == "" {
		return shared.InvalidInput("Title is required")
	}
	if h.Status != shared.StatusEnabled && h.Status != shared.StatusDisabled {
		return shared.InvalidInput("Status must be 0 or 1")
	}
	return nil
}

// Carousel relation types
const (
	IndexImgRelationProduct = 0
)

// IndexImg is a home page carousel image
type IndexImg struct {
	ImgID      int64     `gorm:"column:img_id;primaryKey;autoIncrement" json:"imgId"`
	ShopID     int64     `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	ImgURL     string    `gorm:"column:img_url;type:varchar(200);not null" json:"imgUrl"`
	Des        string    `gorm:"column:des;type:varchar(200)" json:"des"`
	Title      string    `gorm:"column:title;type:varchar(200)" json:"title"`
	Link       string    `gorm:"column:link;type:varchar(200)" json:"link"`
	Status     int       `gorm:"column:status;not null" json:"status"`
	Seq        int       `gorm:"column:seq;not null;default:0" json:"seq"`
	UploadTime time.Time `gorm:"column:upload_time;autoCreateTime" json:"uploadTime"`
	Type       int       `gorm:"column:type;not null" json:"type"`
	Relation   int64     `gorm:"column:relation" json:"relation"`
	Pic        string    `gorm:"-" json:"pic,omitempty"`
	ProdName   string    `gorm:"-" json:"prodName,omitempty"`
}

// TableName returns the table name for GORM
func (IndexImg) TableName() string {
	return "tz_index_img"
}

func (i IndexImg) GetID() int64 { return i.ImgID }

// Validate checks a carousel image before it is stored
func (i *IndexImg) Validate() error {
	if strings.TrimSpace(i.ImgURL) == "" {
		return shared.InvalidInput("Image is required")
	}
	if i.Type == IndexImgRelationProduct && i.Relation == 0 {
		return shared.InvalidInput("A product must be selected for product carousel images")
	}
	if i.Type != IndexImgRelationProduct {
		i.Relation = 0
	}
	return nil
}

// LinksProduct reports whether the image points at a product
func (i *IndexImg) LinksProduct() bool {
	return i.Type == IndexImgRelationProduct && i.Relation != 0
}

// Notice is a storefront announcement
type Notice struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ShopID      int64      `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	Title       string     `gorm:"column:title;type:varchar(36);not null" json:"title"`
	Content     string     `gorm:"column:content;type:text" json:"content"`
	Status      int        `gorm:"column:status;not null;default:0" json:"status"`
	IsTop       int        `gorm:"column:is_top;not null;default:0" json:"isTop"`
	PublishTime *time.Time `gorm:"column:publish_time" json:"publishTime"`
	UpdateTime  time.Time  `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

// TableName returns the table name for GORM
func (Notice) TableName() string {
	return "tz_notice"
}

func (n Notice) GetID() int64 { return n.ID }

// Notice statuses
const (
	NoticeDraft     = 0
	NoticePublished = 1
)

// Validate checks a notice before it is stored
func (n *Notice) Validate() error {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return shared.InvalidInput("Notice title is required")
	}
	if len([]rune(n.Title)) > 36 {
		return shared.InvalidInput("Notice title cannot exceed 36 characters")
	}
	if n.Status != NoticeDraft && n.Status != NoticePublished {
		return shared.InvalidInput("Status must be 0 or 1")
	}
	return nil
}

// StampPublish records the publish time when a notice moves into published.
// previous is the stored status (-1 for a new notice).
func (n *Notice) StampPublish(previous int, now time.Time) {
	if n.Status == NoticePublished && previous != NoticePublished {
		n.PublishTime = &now
	}
}

// HotSearchRepository defines persistence for hot searches
type HotSearchRepository interface {
	shared.CrudRepository[HotSearch]
}

// IndexImgRepository defines persistence for carousel images
type IndexImgRepository interface {
	shared.CrudRepository[IndexImg]
}

// NoticeRepository defines persistence for notices
type NoticeRepository interface {
	shared.CrudRepository[Notice]
}
