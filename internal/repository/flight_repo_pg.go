package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skydesk/reservations/internal/domain"
)

type FlightRepository interface {
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	AdjustPassengers(ctx context.Context, id int64, delta int) error
	Cities(ctx context.Context) (*domain.CityIndex, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var flightColumns = []string{
	"id", "number", "departure", "arrival", "plane", "crew", "schedule",
	"price", "price_numeric", "promotion", "status", "date", "passengers",
	"capacity", "class", "company", "duration", "stops", "created_at", "updated_at",
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.Number, &f.Departure, &f.Arrival, &f.Plane, &f.Crew,
		&f.Schedule, &f.Price, &f.PriceNumeric, &f.Promotion, &f.Status, &f.Date,
		&f.Passengers, &f.Capacity, &f.Class, &f.Company, &f.Duration, &f.Stops,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query := r.sb.Select(flightColumns...).From("flights").OrderBy("schedule")

	if filter.ID != 0 {
		query = query.Where(sq.Eq{"id": filter.ID})
	}
	if filter.Departure != "" {
		query = query.Where(sq.Eq{"departure": filter.Departure})
	}
	if filter.Arrival != "" {
		query = query.Where(sq.Eq{"arrival": filter.Arrival})
	}
	if filter.Date != "" {
		query = query.Where(sq.Expr("schedule >= ?::date AND schedule < ?::date + interval '1 day'", filter.Date, filter.Date))
	}
	if filter.MaxPrice > 0 {
		query = query.Where(sq.LtOrEq{"price_numeric": filter.MaxPrice})
	}
	if filter.Class != "" {
		query = query.Where(sq.Eq{"class": filter.Class})
	}
	if filter.Company != "" {
		query = query.Where(sq.ILike{"company": "%" + filter.Company + "%"})
	}
	if filter.MaxDuration > 0 {
		query = query.Where(sq.LtOrEq{"duration": filter.MaxDuration})
	}
	if filter.Stops != "" {
		query = query.Where(sq.Eq{"stops": filter.Stops})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search flights sql: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT id, number, departure, arrival, plane, crew, schedule, price, price_numeric, promotion, status, date, passengers, capacity, class, company, duration, stops, created_at, updated_at FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (number, departure, arrival, plane, crew, schedule, price, price_numeric, promotion, status, date, passengers, capacity, class, company, duration, stops)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at`,
		flight.Number, flight.Departure, flight.Arrival, flight.Plane, flight.Crew,
		flight.Schedule, flight.Price, flight.PriceNumeric, flight.Promotion, flight.Status,
		flight.Date, flight.Passengers, flight.Capacity, flight.Class, flight.Company,
		flight.Duration, flight.Stops).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

// Update replaces the administrative attributes of a flight. The passengers
// counter is owned by AdjustPassengers and is deliberately left out.
func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET number=$1, departure=$2, arrival=$3, plane=$4, crew=$5, schedule=$6, price=$7, price_numeric=$8, promotion=$9, status=$10, date=$11, capacity=$12, class=$13, company=$14, duration=$15, stops=$16, updated_at=now() WHERE id=$17`,
		flight.Number, flight.Departure, flight.Arrival, flight.Plane, flight.Crew,
		flight.Schedule, flight.Price, flight.PriceNumeric, flight.Promotion, flight.Status,
		flight.Date, flight.Capacity, flight.Class, flight.Company, flight.Duration,
		flight.Stops, flight.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustPassengers applies delta to the booked-passenger counter as one
// conditional update. The guard keeps the counter inside [0, capacity], so
// two concurrent adjustments can never overbook the flight: whichever lands
// second simply matches zero rows.
func (r *PGFlightRepository) AdjustPassengers(ctx context.Context, id int64, delta int) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET passengers = passengers + $1, updated_at = now() WHERE id=$2 AND passengers + $1 >= 0 AND passengers + $1 <= capacity`, delta, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientCapacity
	}
	return nil
}

func (r *PGFlightRepository) Cities(ctx context.Context) (*domain.CityIndex, error) {
	departures, err := r.distinctCities(ctx, "departure")
	if err != nil {
		return nil, err
	}
	arrivals, err := r.distinctCities(ctx, "arrival")
	if err != nil {
		return nil, err
	}
	return &domain.CityIndex{Departures: departures, Arrivals: arrivals}, nil
}

func (r *PGFlightRepository) distinctCities(ctx context.Context, column string) ([]string, error) {
	sqlStr, args, err := r.sb.
		Select("DISTINCT " + column).
		From("flights").
		Where(sq.NotEq{column: ""}).
		OrderBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cities sql: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]string, 0)
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
