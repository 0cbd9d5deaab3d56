package reservation

import (
	"testing"

	"github.com/skydesk/reservations/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCapacityLedger_AvailableSeats(t *testing.T) {
	ledger := NewCapacityLedger(nil)
	flight := &domain.Flight{ID: 1, Capacity: 10, Passengers: 7}

	assert.Equal(t, 3, ledger.AvailableSeats(flight, 0))
	// Seats held by the reservation being replaced count as free.
	assert.Equal(t, 5, ledger.AvailableSeats(flight, 2))
}

func TestCapacityLedger_CheckAvailability(t *testing.T) {
	ledger := NewCapacityLedger(nil)
	flight := &domain.Flight{ID: 1, Capacity: 10, Passengers: 7}

	assert.NoError(t, ledger.CheckAvailability(flight, 3, 0))
	assert.ErrorIs(t, ledger.CheckAvailability(flight, 4, 0), domain.ErrInsufficientCapacity)
	assert.NoError(t, ledger.CheckAvailability(flight, 4, 1))

	full := &domain.Flight{ID: 2, Capacity: 10, Passengers: 10}
	assert.ErrorIs(t, ledger.CheckAvailability(full, 1, 0), domain.ErrInsufficientCapacity)
	assert.NoError(t, ledger.CheckAvailability(full, 10, 10))
}
