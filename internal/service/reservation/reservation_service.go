// Package reservation orchestrates the reservation lifecycle: it validates
// requests, prices them, and keeps each flight's booked-passenger counter in
// step with the reservations that reference it.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/skydesk/reservations/internal/domain"
	"github.com/skydesk/reservations/internal/kafka"
	"github.com/skydesk/reservations/internal/repository"
)

type ReservationUseCase interface {
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	Update(ctx context.Context, id int64, input UpdateReservationInput) (*domain.Reservation, error)
	Cancel(ctx context.Context, id, userID int64) error
	List(ctx context.Context, userID int64) ([]domain.Reservation, error)
}

type PriceResolver interface {
	Resolve(ctx context.Context, flight *domain.Flight, passengerCount int) (float64, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateReservationInput struct {
	UserID     int64              `json:"-"`
	FlightID   int64              `json:"flight_id"`
	Passengers int                `json:"passengers"`
	Details    []domain.Passenger `json:"passengers_details"`
	Class      string             `json:"class"`
}

type UpdateReservationInput struct {
	UserID     int64              `json:"-"`
	FlightID   int64              `json:"flight_id"`
	Passengers int                `json:"passengers"`
	Details    []domain.Passenger `json:"passengers_details"`
	Class      string             `json:"class"`
	Status     string             `json:"status"`
}

type Service struct {
	reservations       repository.ReservationRepository
	flights            repository.FlightRepository
	ledger             *CapacityLedger
	pricing            PriceResolver
	producer           Producer
	eventsTopic        string
	notificationsTopic string
}

type ServiceOption func(*Service)

func WithNotificationsTopic(topic string) ServiceOption {
	return func(s *Service) {
		s.notificationsTopic = topic
	}
}

func NewService(
	reservations repository.ReservationRepository,
	flights repository.FlightRepository,
	pricing PriceResolver,
	producer Producer,
	eventsTopic string,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		reservations: reservations,
		flights:      flights,
		ledger:       NewCapacityLedger(flights),
		pricing:      pricing,
		producer:     producer,
		eventsTopic:  eventsTopic,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateShape(flightID int64, passengers int, details []domain.Passenger, class string) error {
	if flightID == 0 {
		return fmt.Errorf("%w: flight_id is required", domain.ErrValidation)
	}
	if passengers <= 0 {
		return fmt.Errorf("%w: passenger count must be positive", domain.ErrValidation)
	}
	if class == "" {
		return fmt.Errorf("%w: class is required", domain.ErrValidation)
	}
	if len(details) != passengers {
		return fmt.Errorf("%w: passenger count does not match the details provided", domain.ErrValidation)
	}
	for _, p := range details {
		if p.Name == "" || p.PassportNumber == "" {
			return fmt.Errorf("%w: every passenger needs a name and a passport number", domain.ErrValidation)
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error) {
	if err := validateShape(input.FlightID, input.Passengers, input.Details, input.Class); err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.CheckAvailability(flight, input.Passengers, 0); err != nil {
		return nil, err
	}

	total, err := s.pricing.Resolve(ctx, flight, input.Passengers)
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		Reference:  uuid.NewString(),
		UserID:     input.UserID,
		FlightID:   input.FlightID,
		Passengers: input.Passengers,
		Details:    input.Details,
		Class:      input.Class,
		TotalPrice: total,
		Status:     domain.ReservationStatusConfirmed,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	if err := s.ledger.Adjust(ctx, input.FlightID, input.Passengers); err != nil {
		if errors.Is(err, domain.ErrInsufficientCapacity) {
			// Lost the race against a concurrent booking: the snapshot check
			// passed but the conditional increment did not. Undo the write.
			if delErr := s.reservations.Delete(ctx, res.ID); delErr != nil {
				return nil, fmt.Errorf("%w: seat adjustment rejected and rollback failed: %v", domain.ErrConsistency, delErr)
			}
			return nil, err
		}
		return nil, fmt.Errorf("%w: adjust passengers after create: %v", domain.ErrConsistency, err)
	}

	s.publish(ctx, "reservation_created", res)
	return res, nil
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateReservationInput) (*domain.Reservation, error) {
	if err := validateShape(input.FlightID, input.Passengers, input.Details, input.Class); err != nil {
		return nil, err
	}

	current, err := s.reservations.GetForUser(ctx, id, input.UserID)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	// The current reservation's seats only offset its own capacity check when
	// it stays on the same flight; a hold against the old flight says nothing
	// about room on a new one.
	sameFlight := flight.ID == current.FlightID
	exempt := 0
	if sameFlight {
		exempt = current.Passengers
	}
	if err := s.ledger.CheckAvailability(flight, input.Passengers, exempt); err != nil {
		return nil, err
	}

	total, err := s.pricing.Resolve(ctx, flight, input.Passengers)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.FlightID = input.FlightID
	updated.Passengers = input.Passengers
	updated.Details = input.Details
	updated.Class = input.Class
	updated.TotalPrice = total
	if input.Status != "" {
		updated.Status = domain.ReservationStatus(input.Status)
	}
	if err := s.reservations.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if sameFlight {
		if err := s.adjustSameFlight(ctx, current, &updated); err != nil {
			return nil, err
		}
	} else {
		if err := s.moveBetweenFlights(ctx, current, &updated); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, "reservation_updated", &updated)
	return &updated, nil
}

func (s *Service) adjustSameFlight(ctx context.Context, current, updated *domain.Reservation) error {
	delta := updated.Passengers - current.Passengers
	if delta == 0 {
		return nil
	}

	if err := s.ledger.Adjust(ctx, updated.FlightID, delta); err != nil {
		if errors.Is(err, domain.ErrInsufficientCapacity) {
			if restoreErr := s.reservations.Update(ctx, current); restoreErr != nil {
				return fmt.Errorf("%w: seat adjustment rejected and rollback failed: %v", domain.ErrConsistency, restoreErr)
			}
			return err
		}
		return fmt.Errorf("%w: adjust passengers after update: %v", domain.ErrConsistency, err)
	}
	return nil
}

// moveBetweenFlights releases the hold on the old flight before acquiring one
// on the new flight. When the acquire loses a capacity race the whole move is
// compensated: old hold re-acquired, old row restored.
func (s *Service) moveBetweenFlights(ctx context.Context, current, updated *domain.Reservation) error {
	if err := s.ledger.Adjust(ctx, current.FlightID, -current.Passengers); err != nil {
		return fmt.Errorf("%w: release seats on flight %d: %v", domain.ErrConsistency, current.FlightID, err)
	}

	if err := s.ledger.Adjust(ctx, updated.FlightID, updated.Passengers); err != nil {
		if errors.Is(err, domain.ErrInsufficientCapacity) {
			if reErr := s.ledger.Adjust(ctx, current.FlightID, current.Passengers); reErr != nil {
				return fmt.Errorf("%w: acquire rejected and old hold lost: %v", domain.ErrConsistency, reErr)
			}
			if restoreErr := s.reservations.Update(ctx, current); restoreErr != nil {
				return fmt.Errorf("%w: acquire rejected and rollback failed: %v", domain.ErrConsistency, restoreErr)
			}
			return err
		}
		return fmt.Errorf("%w: acquire seats on flight %d: %v", domain.ErrConsistency, updated.FlightID, err)
	}
	return nil
}

func (s *Service) Cancel(ctx context.Context, id, userID int64) error {
	current, err := s.reservations.GetForUser(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.ledger.Adjust(ctx, current.FlightID, -current.Passengers); err != nil {
		return fmt.Errorf("%w: release seats on flight %d: %v", domain.ErrConsistency, current.FlightID, err)
	}

	if err := s.reservations.Delete(ctx, current.ID); err != nil {
		if reErr := s.ledger.Adjust(ctx, current.FlightID, current.Passengers); reErr != nil {
			return fmt.Errorf("%w: delete failed and seats already released: %v", domain.ErrConsistency, reErr)
		}
		return err
	}

	s.publish(ctx, "reservation_cancelled", current)
	return nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}

func (s *Service) publish(ctx context.Context, eventType string, res *domain.Reservation) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:       eventType,
		Reference:  res.Reference,
		UserID:     res.UserID,
		FlightID:   res.FlightID,
		Passengers: res.Passengers,
		TotalPrice: res.TotalPrice,
		Status:     string(res.Status),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, res.Reference, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for reservation %s: %v", eventType, res.Reference, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, res.Reference, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for reservation %s: %v", eventType, res.Reference, err)
		}
	}
}

var _ ReservationUseCase = (*Service)(nil)
