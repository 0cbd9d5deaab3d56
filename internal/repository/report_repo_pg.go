package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skydesk/reservations/internal/domain"
)

// ReportRepository runs the aggregate queries behind operational reports.
// Every method is scoped to flights whose date falls in [start, end).
type ReportRepository interface {
	Totals(ctx context.Context, start, end time.Time) (*ReportTotals, error)
	TopDestinations(ctx context.Context, start, end time.Time, limit uint64) ([]domain.DestinationStat, error)
	FlightsPerMonth(ctx context.Context, start, end time.Time) ([]domain.MonthCount, error)
	DestinationDistribution(ctx context.Context, start, end time.Time) ([]domain.DestinationCount, error)
}

type ReportTotals struct {
	Flights    int
	Passengers int
	Revenues   float64
	Capacity   int
}

type PGReportRepository struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func dateWindow(start, end time.Time) sq.Sqlizer {
	return sq.And{sq.GtOrEq{"date": start}, sq.Lt{"date": end}}
}

func (r *PGReportRepository) Totals(ctx context.Context, start, end time.Time) (*ReportTotals, error) {
	sqlStr, args, err := r.sb.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(passengers), 0)",
			"COALESCE(SUM(price_numeric * passengers), 0)",
			"COALESCE(SUM(capacity), 0)",
		).
		From("flights").
		Where(dateWindow(start, end)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build report totals sql: %w", err)
	}

	var totals ReportTotals
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&totals.Flights, &totals.Passengers, &totals.Revenues, &totals.Capacity); err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *PGReportRepository) TopDestinations(ctx context.Context, start, end time.Time, limit uint64) ([]domain.DestinationStat, error) {
	sqlStr, args, err := r.sb.
		Select("arrival", "COUNT(*) AS flights", "COALESCE(SUM(passengers), 0) AS passengers").
		From("flights").
		Where(dateWindow(start, end)).
		GroupBy("arrival").
		OrderBy("flights DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top destinations sql: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.DestinationStat, 0)
	for rows.Next() {
		var s domain.DestinationStat
		if err := rows.Scan(&s.Destination, &s.Flights, &s.Passengers); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *PGReportRepository) FlightsPerMonth(ctx context.Context, start, end time.Time) ([]domain.MonthCount, error) {
	sqlStr, args, err := r.sb.
		Select("to_char(date, 'YYYY-MM') AS month", "COUNT(*)").
		From("flights").
		Where(dateWindow(start, end)).
		GroupBy("month").
		OrderBy("month").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build flights per month sql: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	months := make([]domain.MonthCount, 0)
	for rows.Next() {
		var m domain.MonthCount
		if err := rows.Scan(&m.Month, &m.Count); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

func (r *PGReportRepository) DestinationDistribution(ctx context.Context, start, end time.Time) ([]domain.DestinationCount, error) {
	sqlStr, args, err := r.sb.
		Select("arrival", "COUNT(*) AS count").
		From("flights").
		Where(dateWindow(start, end)).
		GroupBy("arrival").
		OrderBy("count DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build destination distribution sql: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.DestinationCount, 0)
	for rows.Next() {
		var c domain.DestinationCount
		if err := rows.Scan(&c.Destination, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

var _ ReportRepository = (*PGReportRepository)(nil)
