package domain

type Promotion struct {
	ID          int64   `json:"id"`
	Destination string  `json:"destination"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	OldPrice    float64 `json:"old_price"`
	NewPrice    float64 `json:"new_price"`
	Discount    float64 `json:"discount"`
}
