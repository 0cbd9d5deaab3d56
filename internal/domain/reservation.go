package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
)

type Passenger struct {
	Name           string `json:"name"`
	PassportNumber string `json:"passport_number"`
}

type Reservation struct {
	ID         int64             `json:"id"`
	Reference  string            `json:"reference"`
	UserID     int64             `json:"user_id"`
	FlightID   int64             `json:"flight_id"`
	Passengers int               `json:"passengers"`
	Details    []Passenger       `json:"passengers_details"`
	Class      string            `json:"class"`
	TotalPrice float64           `json:"total_price"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
