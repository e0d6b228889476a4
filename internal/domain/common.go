package domain

// Location - адрес с координатами, в том виде, в каком его вводит житель
type Location struct {
	Address string  `json:"address" db:"address"`
	City    string  `json:"city" db:"city"`
	Lat     float64 `json:"lat" db:"lat"`
	Lng     float64 `json:"lng" db:"lng"`
}
