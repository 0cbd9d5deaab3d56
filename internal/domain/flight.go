package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusCancelled FlightStatus = "cancelled"
)

type Flight struct {
	ID           int64        `json:"id"`
	Number       string       `json:"number"`
	Departure    string       `json:"departure"`
	Arrival      string       `json:"arrival"`
	Plane        string       `json:"plane"`
	Crew         string       `json:"crew"`
	Schedule     time.Time    `json:"schedule"`
	Price        string       `json:"price"`
	PriceNumeric float64      `json:"price_numeric"`
	Promotion    string       `json:"promotion"`
	Status       FlightStatus `json:"status"`
	Date         time.Time    `json:"date"`
	Passengers   int          `json:"passengers"`
	Capacity     int          `json:"capacity"`
	Class        string       `json:"class"`
	Company      string       `json:"company"`
	Duration     float64      `json:"duration"`
	Stops        string       `json:"stops"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// FlightFilter narrows flight searches. Zero values mean no constraint.
type FlightFilter struct {
	ID          int64
	Departure   string
	Arrival     string
	Date        string // day portion of the schedule, YYYY-MM-DD
	MaxPrice    float64
	Class       string
	Company     string
	MaxDuration float64
	Stops       string
}

// CityIndex holds the distinct departure and arrival cities currently served.
type CityIndex struct {
	Departures []string `json:"departures"`
	Arrivals   []string `json:"arrivals"`
}
