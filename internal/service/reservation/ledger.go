package reservation

import (
	"context"
	"fmt"

	"github.com/skydesk/reservations/internal/domain"
	"github.com/skydesk/reservations/internal/repository"
)

// CapacityLedger enforces the seats-sold-never-exceed-capacity invariant.
// CheckAvailability gives a friendly early rejection against a snapshot of
// the flight; Adjust is the authoritative step, a single conditional atomic
// increment at the store, so two concurrent bookings cannot overbook even
// when both snapshots looked fine.
type CapacityLedger struct {
	flights repository.FlightRepository
}

func NewCapacityLedger(flights repository.FlightRepository) *CapacityLedger {
	return &CapacityLedger{flights: flights}
}

// AvailableSeats reports how many seats a request may still take. exempt is
// the passenger count of a reservation being replaced, which does not count
// against its own update.
func (l *CapacityLedger) AvailableSeats(flight *domain.Flight, exempt int) int {
	return flight.Capacity - flight.Passengers + exempt
}

func (l *CapacityLedger) CheckAvailability(flight *domain.Flight, requested, exempt int) error {
	if available := l.AvailableSeats(flight, exempt); requested > available {
		return fmt.Errorf("%w: requested %d, %d available on flight %d",
			domain.ErrInsufficientCapacity, requested, available, flight.ID)
	}
	return nil
}

func (l *CapacityLedger) Adjust(ctx context.Context, flightID int64, delta int) error {
	return l.flights.AdjustPassengers(ctx, flightID, delta)
}
