package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skydesk/reservations/internal/domain"
)

// Planes and crews are plain administrative records with no invariant beyond
// storage, so both repositories are straight CRUD.

type PlaneRepository interface {
	List(ctx context.Context) ([]domain.Plane, error)
	Create(ctx context.Context, plane *domain.Plane) error
	Update(ctx context.Context, plane *domain.Plane) error
	Delete(ctx context.Context, id int64) error
}

type CrewRepository interface {
	List(ctx context.Context) ([]domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) error
	Update(ctx context.Context, crew *domain.Crew) error
	Delete(ctx context.Context, id int64) error
}

type PGPlaneRepository struct {
	db *pgxpool.Pool
}

func NewPlaneRepository(db *pgxpool.Pool) PlaneRepository {
	return &PGPlaneRepository{db: db}
}

func (r *PGPlaneRepository) List(ctx context.Context) ([]domain.Plane, error) {
	rows, err := r.db.Query(ctx, `SELECT id, model, registration, capacity, available FROM planes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	planes := make([]domain.Plane, 0)
	for rows.Next() {
		var p domain.Plane
		if err := rows.Scan(&p.ID, &p.Model, &p.Registration, &p.Capacity, &p.Available); err != nil {
			return nil, err
		}
		planes = append(planes, p)
	}
	return planes, rows.Err()
}

func (r *PGPlaneRepository) Create(ctx context.Context, plane *domain.Plane) error {
	return r.db.QueryRow(ctx, `INSERT INTO planes (model, registration, capacity, available) VALUES ($1, $2, $3, $4) RETURNING id`,
		plane.Model, plane.Registration, plane.Capacity, plane.Available).
		Scan(&plane.ID)
}

func (r *PGPlaneRepository) Update(ctx context.Context, plane *domain.Plane) error {
	res, err := r.db.Exec(ctx, `UPDATE planes SET model=$1, registration=$2, capacity=$3, available=$4 WHERE id=$5`,
		plane.Model, plane.Registration, plane.Capacity, plane.Available, plane.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPlaneRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM planes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

func (r *PGCrewRepository) List(ctx context.Context) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, members, main_role, available FROM crews ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.Name, &c.Members, &c.MainRole, &c.Available); err != nil {
			return nil, err
		}
		crews = append(crews, c)
	}
	return crews, rows.Err()
}

func (r *PGCrewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	return r.db.QueryRow(ctx, `INSERT INTO crews (name, members, main_role, available) VALUES ($1, $2, $3, $4) RETURNING id`,
		crew.Name, crew.Members, crew.MainRole, crew.Available).
		Scan(&crew.ID)
}

func (r *PGCrewRepository) Update(ctx context.Context, crew *domain.Crew) error {
	res, err := r.db.Exec(ctx, `UPDATE crews SET name=$1, members=$2, main_role=$3, available=$4 WHERE id=$5`,
		crew.Name, crew.Members, crew.MainRole, crew.Available, crew.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGCrewRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM crews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var (
	_ PlaneRepository = (*PGPlaneRepository)(nil)
	_ CrewRepository  = (*PGCrewRepository)(nil)
)
