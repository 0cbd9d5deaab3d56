package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skydesk/reservations/internal/domain"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	GetForUser(ctx context.Context, id, userID int64) (*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

func (r *PGReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	details, err := json.Marshal(reservation.Details)
	if err != nil {
		return fmt.Errorf("encode passenger details: %w", err)
	}

	return r.db.QueryRow(ctx, `INSERT INTO reservations (reference, user_id, flight_id, passengers, details, class, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		reservation.Reference, reservation.UserID, reservation.FlightID, reservation.Passengers,
		details, reservation.Class, reservation.TotalPrice, reservation.Status).
		Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
}

// GetForUser loads a reservation only when it belongs to userID. A missing
// row and a row owned by someone else are indistinguishable to the caller.
func (r *PGReservationRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT id, reference, user_id, flight_id, passengers, details, class, total_price, status, created_at, updated_at FROM reservations WHERE id=$1 AND user_id=$2`, id, userID)
	return scanReservation(row)
}

func (r *PGReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	details, err := json.Marshal(reservation.Details)
	if err != nil {
		return fmt.Errorf("encode passenger details: %w", err)
	}

	err = r.db.QueryRow(ctx, `UPDATE reservations SET flight_id=$1, passengers=$2, details=$3, class=$4, total_price=$5, status=$6, updated_at=now() WHERE id=$7 RETURNING updated_at`,
		reservation.FlightID, reservation.Passengers, details, reservation.Class,
		reservation.TotalPrice, reservation.Status, reservation.ID).
		Scan(&reservation.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGReservationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGReservationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT id, reference, user_id, flight_id, passengers, details, class, total_price, status, created_at, updated_at FROM reservations WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	var details []byte
	err := row.Scan(&res.ID, &res.Reference, &res.UserID, &res.FlightID, &res.Passengers,
		&details, &res.Class, &res.TotalPrice, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(details, &res.Details); err != nil {
		return nil, fmt.Errorf("decode passenger details: %w", err)
	}
	return &res, nil
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
