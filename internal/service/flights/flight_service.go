package flights

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/skydesk/reservations/internal/domain"
	"github.com/skydesk/reservations/internal/repository"
)

type FlightUseCase interface {
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	Cities(ctx context.Context) (*domain.CityIndex, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightInput struct {
	Number    string              `json:"number"`
	Departure string              `json:"departure"`
	Arrival   string              `json:"arrival"`
	Plane     string              `json:"plane"`
	Crew      string              `json:"crew"`
	Schedule  time.Time           `json:"schedule"`
	Price     string              `json:"price"`
	Promotion string              `json:"promotion"`
	Status    domain.FlightStatus `json:"status"`
	Date      time.Time           `json:"date"`
	Capacity  int                 `json:"capacity"`
	Class     string              `json:"class"`
	Company   string              `json:"company"`
	Duration  float64             `json:"duration"`
	Stops     string              `json:"stops"`
}

type Service struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewService(repo repository.FlightRepository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Search serves the full, unfiltered list from cache when possible; filtered
// queries always hit the store.
func (s *Service) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	unfiltered := filter == (domain.FlightFilter{})
	if unfiltered && s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if unfiltered && s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	flight, err := flightFromInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *Service) Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	flight, err := flightFromInput(input)
	if err != nil {
		return nil, err
	}
	flight.ID = id

	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Cities(ctx context.Context) (*domain.CityIndex, error) {
	return s.repo.Cities(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

func flightFromInput(input FlightInput) (*domain.Flight, error) {
	if input.Number == "" || input.Departure == "" || input.Arrival == "" ||
		input.Plane == "" || input.Crew == "" || input.Schedule.IsZero() ||
		input.Price == "" || input.Status == "" {
		return nil, fmt.Errorf("%w: number, departure, arrival, plane, crew, schedule, price and status are required", domain.ErrValidation)
	}
	if input.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", domain.ErrValidation)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	class := input.Class
	if class == "" {
		class = "economy"
	}
	stops := input.Stops
	if stops == "" {
		stops = "0"
	}

	return &domain.Flight{
		Number:       input.Number,
		Departure:    input.Departure,
		Arrival:      input.Arrival,
		Plane:        input.Plane,
		Crew:         input.Crew,
		Schedule:     input.Schedule,
		Price:        input.Price,
		PriceNumeric: parsePriceNumeric(input.Price),
		Promotion:    input.Promotion,
		Status:       input.Status,
		Date:         date,
		Capacity:     input.Capacity,
		Class:        class,
		Company:      input.Company,
		Duration:     input.Duration,
		Stops:        stops,
	}, nil
}

// parsePriceNumeric extracts the leading number from a display price such as
// "150 €". An unparseable price degrades to 0 rather than failing the edit.
func parsePriceNumeric(price string) float64 {
	fields := strings.Fields(price)
	if len(fields) == 0 {
		return 0
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return value
}

var _ FlightUseCase = (*Service)(nil)
