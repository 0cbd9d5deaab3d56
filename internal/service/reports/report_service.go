// Package reports aggregates flight activity over caller-selected date
// windows for the admin dashboard.
package reports

import (
	"context"
	"math"
	"time"

	"github.com/skydesk/reservations/internal/domain"
	"github.com/skydesk/reservations/internal/repository"
)

const topDestinationsLimit = 3

type ReportUseCase interface {
	Report(ctx context.Context, period string) (*domain.ReportSummary, error)
}

type Cache interface {
	GetReport(ctx context.Context, period string) (*domain.ReportSummary, error)
	SetReport(ctx context.Context, period string, summary *domain.ReportSummary) error
}

type Service struct {
	repo  repository.ReportRepository
	cache Cache
	now   func() time.Time
}

func NewService(repo repository.ReportRepository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// Reports over an unrecognized or absent period cover the whole collection.
var (
	windowMin = time.Time{}
	windowMax = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// periodWindow resolves a period token to a half-open interval [start, end).
func periodWindow(period string, now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	switch period {
	case "this_month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	case "last_3_months":
		return now.AddDate(0, -3, 0), now
	case "this_year":
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	default:
		return windowMin, windowMax
	}
}

func (s *Service) Report(ctx context.Context, period string) (*domain.ReportSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetReport(ctx, period); err == nil && cached != nil {
			return cached, nil
		}
	}

	start, end := periodWindow(period, s.now())

	totals, err := s.repo.Totals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopDestinations(ctx, start, end, topDestinationsLimit)
	if err != nil {
		return nil, err
	}
	months, err := s.repo.FlightsPerMonth(ctx, start, end)
	if err != nil {
		return nil, err
	}
	distribution, err := s.repo.DestinationDistribution(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := &domain.ReportSummary{
		TotalFlights:            totals.Flights,
		TotalPassengers:         totals.Passengers,
		TotalRevenues:           totals.Revenues,
		OccupancyRate:           occupancyRate(totals.Passengers, totals.Capacity),
		TopDestinations:         top,
		FlightsPerMonth:         months,
		DestinationDistribution: distribution,
	}

	if s.cache != nil {
		_ = s.cache.SetReport(ctx, period, summary)
	}
	return summary, nil
}

func occupancyRate(passengers, capacity int) float64 {
	if capacity == 0 {
		return 0
	}
	rate := float64(passengers) / float64(capacity) * 100
	return math.Round(rate*100) / 100
}

var _ ReportUseCase = (*Service)(nil)
