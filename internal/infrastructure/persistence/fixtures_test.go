package persistence

import (
	"github.com/Darkingtail/mall4r/internal/domain/marketing"
	"github.com/Darkingtail/mall4r/internal/domain/region"
)

func hotSearchFixture(title string, seq int) marketing.HotSearch {
	return marketing.HotSearch{Title: title, Content: title, Seq: seq, Status: 1}
}

// seedAreas creates a province with two cities and a district under the first city
func seedAreas(create func(*region.Area) error) (province, city, otherCity, district region.Area) {
	province = region.Area{AreaName: "广东省", Level: region.LevelProvince}
	_ = create(&province)
	city = region.Area{AreaName: "广州市", ParentID: province.AreaID, Level: region.LevelCity}
	_ = create(&city)
	otherCity = region.Area{AreaName: "深圳市", ParentID: province.AreaID, Level: region.LevelCity}
	_ = create(&otherCity)
	district = region.Area{AreaName: "天河区", ParentID: city.AreaID, Level: region.LevelDistrict}
	_ = create(&district)
	return
}
