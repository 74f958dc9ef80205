package marketing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotSearch_Validate(t *testing.T) {
	h := &HotSearch{Title: " 手机 ", Status: 1}
	require.NoError(t, h.Validate())
	assert.Equal(t, "手机", h.Title)

	assert.Error(t, (&HotSearch{Title: ""}).Validate())
	assert.Error(t, (&HotSearch{Title: "x", Status: 3}).Validate())
}

func TestIndexImg_Validate(t *testing.T) {
	assert.Error(t, (&IndexImg{}).Validate())
	assert.Error(t, (&IndexImg{ImgURL: "a.png", Type: IndexImgRelationProduct}).Validate())

	img := &IndexImg{ImgURL: "a.png", Type: -1, Relation: 5}
	require.NoError(t, img.Validate())
	assert.Equal(t, int64(0), img.Relation)
	assert.False(t, img.LinksProduct())

	img = &IndexImg{ImgURL: "a.png", Type: 0, Relation: 5}
	require.NoError(t, img.Validate())
	assert.True(t, img.LinksProduct())
}

func TestNotice(t *testing.T) {
	n := &Notice{Title: "上新", Status: NoticePublished}
	require.NoError(t, n.Validate())

	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	n.StampPublish(-1, now)
	require.NotNil(t, n.PublishTime)
	assert.Equal(t, now, *n.PublishTime)

	later := now.Add(time.Hour)
	n.StampPublish(NoticePublished, later)
	assert.Equal(t, now, *n.PublishTime, "re-saving a published notice keeps its publish time")

	assert.Error(t, (&Notice{Title: "一二三四五六七八九十一二三四五六七八九十一二三四五六七八九十一二三四五六七"}).Validate())
}
