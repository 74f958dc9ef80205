package trade

// Courier is a delivery company orders can be shipped with
type Courier struct {
	DvyID   int64  `json:"dvyId"`
	DvyName string `json:"dvyName"`
}

var couriers = []Courier{
	{DvyID: 1, DvyName: "顺丰速运"},
	{DvyID: 2, DvyName: "中通快递"},
	{DvyID: 3, DvyName: "圆通速递"},
	{DvyID: 4, DvyName: "申通快递"},
	{DvyID: 5, DvyName: "韵达快递"},
	{DvyID: 6, DvyName: "百世快递"},
	{DvyID: 7, DvyName: "邮政EMS"},
	{DvyID: 8, DvyName: "京东物流"},
	{DvyID: 9, DvyName: "极兔速递"},
	{DvyID: 10, DvyName: "德邦快递"},
}

// Couriers returns the known delivery companies
func Couriers() []Courier {
	out := make([]Courier, len(couriers))
	copy(out, couriers)
	return out
}

// IsCourier reports whether id names a known delivery company
func IsCourier(id int64) bool {
	for _, c := range couriers {
		if c.DvyID == id {
			return true
		}
	}
	return false
}
