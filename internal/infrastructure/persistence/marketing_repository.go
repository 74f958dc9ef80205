package persistence

import (
	"github.com/Darkingtail/mall4r/internal/domain/marketing"
	"gorm.io/gorm"
)

// GormHotSearchRepository implements HotSearchRepository using GORM
type GormHotSearchRepository struct {
	*GormCrudRepository[marketing.HotSearch]
}

// NewGormHotSearchRepository creates a new GormHotSearchRepository
func NewGormHotSearchRepository(db *gorm.DB) *GormHotSearchRepository {
	return &GormHotSearchRepository{newCrudRepository[marketing.HotSearch](db, querySpec{
		primaryKey: "hot_search_id",
		filters: map[string]filterFunc{
			"title":   like("title"),
			"content": like("content"),
			"status":  eq("status"),
		},
		sortable:     map[string]string{"seq": "seq", "recDate": "rec_date"},
		defaultOrder: "seq ASC, hot_search_id DESC",
		immutable:    []string{"rec_date"},
	})}
}

// GormIndexImgRepository implements IndexImgRepository using GORM
type GormIndexImgRepository struct {
	*GormCrudRepository[marketing.IndexImg]
}

// NewGormIndexImgRepository creates a new GormIndexImgRepository
func NewGormIndexImgRepository(db *gorm.DB) *GormIndexImgRepository {
	return &GormIndexImgRepository{newCrudRepository[marketing.IndexImg](db, querySpec{
		primaryKey: "img_id",
		filters: map[string]filterFunc{
			"status": eq("status"),
		},
		sortable:     map[string]string{"seq": "seq"},
		defaultOrder: "seq ASC, img_id DESC",
		immutable:    []string{"upload_time"},
	})}
}

// GormNoticeRepository implements NoticeRepository using GORM
type GormNoticeRepository struct {
	*GormCrudRepository[marketing.Notice]
}

// NewGormNoticeRepository creates a new GormNoticeRepository
func NewGormNoticeRepository(db *gorm.DB) *GormNoticeRepository {
	return &GormNoticeRepository{newCrudRepository[marketing.Notice](db, querySpec{
		primaryKey: "id",
		filters: map[string]filterFunc{
			"title":  like("title"),
			"status": eq("status"),
			"isTop":  eq("is_top"),
		},
		defaultOrder: "is_top DESC, update_time DESC",
	})}
}

var (
	_ marketing.HotSearchRepository = (*GormHotSearchRepository)(nil)
	_ marketing.IndexImgRepository  = (*GormIndexImgRepository)(nil)
	_ marketing.NoticeRepository    = (*GormNoticeRepository)(nil)
)
