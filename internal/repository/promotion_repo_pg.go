package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skydesk/reservations/internal/domain"
)

type PromotionRepository interface {
	List(ctx context.Context) ([]domain.Promotion, error)
	GetByDestination(ctx context.Context, destination string) (*domain.Promotion, error)
	Create(ctx context.Context, promotion *domain.Promotion) error
	Update(ctx context.Context, promotion *domain.Promotion) error
	Delete(ctx context.Context, id int64) error
}

type PGPromotionRepository struct {
	db *pgxpool.Pool
}

func NewPromotionRepository(db *pgxpool.Pool) PromotionRepository {
	return &PGPromotionRepository{db: db}
}

func (r *PGPromotionRepository) List(ctx context.Context) ([]domain.Promotion, error) {
	rows, err := r.db.Query(ctx, `SELECT id, destination, description, image, old_price, new_price, discount FROM promotions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promotions := make([]domain.Promotion, 0)
	for rows.Next() {
		var p domain.Promotion
		if err := rows.Scan(&p.ID, &p.Destination, &p.Description, &p.Image, &p.OldPrice, &p.NewPrice, &p.Discount); err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}
	return promotions, rows.Err()
}

func (r *PGPromotionRepository) GetByDestination(ctx context.Context, destination string) (*domain.Promotion, error) {
	row := r.db.QueryRow(ctx, `SELECT id, destination, description, image, old_price, new_price, discount FROM promotions WHERE destination=$1 LIMIT 1`, destination)
	var p domain.Promotion
	if err := row.Scan(&p.ID, &p.Destination, &p.Description, &p.Image, &p.OldPrice, &p.NewPrice, &p.Discount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPromotionRepository) Create(ctx context.Context, promotion *domain.Promotion) error {
	return r.db.QueryRow(ctx, `INSERT INTO promotions (destination, description, image, old_price, new_price, discount)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		promotion.Destination, promotion.Description, promotion.Image,
		promotion.OldPrice, promotion.NewPrice, promotion.Discount).
		Scan(&promotion.ID)
}

func (r *PGPromotionRepository) Update(ctx context.Context, promotion *domain.Promotion) error {
	res, err := r.db.Exec(ctx, `UPDATE promotions SET destination=$1, description=$2, image=$3, old_price=$4, new_price=$5, discount=$6 WHERE id=$7`,
		promotion.Destination, promotion.Description, promotion.Image,
		promotion.OldPrice, promotion.NewPrice, promotion.Discount, promotion.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPromotionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM promotions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ PromotionRepository = (*PGPromotionRepository)(nil)
