// Package pricing computes the total price of a reservation. A flight that
// carries a promotion marker is priced from the promotion currently targeting
// its arrival city; the resulting total is frozen on the reservation at write
// time and never re-derived.
package pricing

import (
	"context"
	"errors"

	"github.com/skydesk/reservations/internal/domain"
	"github.com/skydesk/reservations/internal/repository"
)

type PriceResolver interface {
	Resolve(ctx context.Context, flight *domain.Flight, passengerCount int) (float64, error)
}

type Service struct {
	promotions repository.PromotionRepository
}

func NewService(promotions repository.PromotionRepository) *Service {
	return &Service{promotions: promotions}
}

// Resolve returns passengerCount times the effective per-seat price. The
// promotion lookup is keyed by the flight's arrival city, not by a stored
// reference; a marker with no matching promotion falls back to the base
// price without error.
func (s *Service) Resolve(ctx context.Context, flight *domain.Flight, passengerCount int) (float64, error) {
	total := float64(passengerCount) * flight.PriceNumeric

	if flight.Promotion == "" {
		return total, nil
	}

	promo, err := s.promotions.GetByDestination(ctx, flight.Arrival)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return total, nil
		}
		return 0, err
	}
	return float64(passengerCount) * promo.NewPrice, nil
}

var _ PriceResolver = (*Service)(nil)
