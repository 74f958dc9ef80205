package shared

// Entity is implemented by every back-office record. IDs are the numeric
// surrogate keys the admin screens address records by.
type Entity interface {
	GetID() int64
}

// Status values shared by records that can be switched on and off.
const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

// Flag is a 0/1 integer switch as stored and transported by the admin API.
type Flag = int

// BoolFlag converts a bool to its wire flag.
func BoolFlag(b bool) Flag {
	if b {
		return 1
	}
	return 0
}
