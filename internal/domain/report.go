package domain

// DestinationStat annotates an arrival city with how many flights serve it
// and how many passengers those flights carry.
type DestinationStat struct {
	Destination string `json:"destination"`
	Flights     int    `json:"flights"`
	Passengers  int    `json:"passengers"`
}

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

type DestinationCount struct {
	Destination string `json:"destination"`
	Count       int    `json:"count"`
}

// ReportSummary aggregates flight activity over a reporting window.
type ReportSummary struct {
	TotalFlights            int                `json:"total_flights"`
	TotalPassengers         int                `json:"total_passengers"`
	TotalRevenues           float64            `json:"total_revenues"`
	OccupancyRate           float64            `json:"occupancy_rate"`
	TopDestinations         []DestinationStat  `json:"top_destinations"`
	FlightsPerMonth         []MonthCount       `json:"flights_per_month"`
	DestinationDistribution []DestinationCount `json:"destination_distribution"`
}
