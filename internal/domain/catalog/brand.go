package catalog

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Brand is a product brand
type Brand struct {
	BrandID    int64     `gorm:"column:brand_id;primaryKey;autoIncrement" json:"brandId" form:"brandId"`
	BrandName  string    `gorm:"column:brand_name;type:varchar(30);not null;uniqueIndex" json:"brandName" form:"brandName"`
	BrandPic   string    `gorm:"column:brand_pic;type:varchar(255)" json:"brandPic" form:"brandPic"`
	UserID     string    `gorm:"column:user_id;type:varchar(36)" json:"userId" form:"userId"`
	Memo       string    `gorm:"column:memo;type:varchar(50)" json:"memo" form:"memo"`
	Seq        int       `gorm:"column:seq;not null" json:"seq" form:"seq"`
	Status     int       `gorm:"column:status;not null" json:"status" form:"status"`
	Brief      string    `gorm:"column:brief;type:varchar(250)" json:"brief" form:"brief"`
	Content    string    `gorm:"column:content;type:text" json:"content" form:"content"`
	FirstChar  string    `gorm:"column:first_char;type:char(1)" json:"firstChar" form:"firstChar"`
	RecTime    time.Time `gorm:"column:rec_time;autoCreateTime" json:"recTime"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "tz_brand"
}

func (b Brand) GetID() int64 { return b.BrandID }

// Validate checks a brand and fills in its first character
func (b *Brand) Validate() error {
	b.BrandName = strings.TrimSpace(b.BrandName)
	if b.BrandName == "" {
		return shared.InvalidInput("Brand name is required")
	}
	if b.Status != shared.StatusEnabled && b.Status != shared.StatusDisabled {
		return shared.InvalidInput("Status must be 0 or 1")
	}
	b.FirstChar = strings.ToUpper(strings.TrimSpace(b.FirstChar))
	if b.FirstChar == "" {
		b.FirstChar = FirstChar(b.BrandName)
	}
	return nil
}

// FirstChar returns the upper-case initial of a name, or "#" when the name
// does not start with a latin letter or digit. Accents are folded first.
func FirstChar(name string) string {
	folded, _, err := transform.String(accentFolder(), strings.TrimSpace(name))
	if err != nil {
		folded = strings.TrimSpace(name)
	}
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return string(unicode.ToUpper(r))
		}
		return "#"
	}
	return "#"
}

// BrandRepository defines persistence for brands
type BrandRepository interface {
	shared.CrudRepository[Brand]
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
}

func accentFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
