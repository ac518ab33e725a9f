package repository

import (
	"context"
	"errors"

	"viewerhub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RankRepository struct {
	db *pgxpool.Pool
}

func NewRankRepository(db *pgxpool.Pool) *RankRepository {
	return &RankRepository{db: db}
}

func (r *RankRepository) Get(ctx context.Context, id int32) (*domain.Rank, error) {
	var rk domain.Rank
	var seconds int64
	var nanos int32
	err := r.db.QueryRow(ctx,
		`SELECT id, name, sorting, requirement_seconds, requirement_nanos FROM ranks WHERE id = $1`,
		id,
	).Scan(&rk.ID, &rk.Name, &rk.Sorting, &seconds, &nanos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rk.SetRequirement(seconds, nanos)
	return &rk, nil
}

// List returns all ranks, highest sorting first. Equal sorting is broken by
// id ascending so selection stays deterministic.
func (r *RankRepository) List(ctx context.Context) ([]domain.Rank, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, sorting, requirement_seconds, requirement_nanos
		 FROM ranks ORDER BY sorting DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranks []domain.Rank
	for rows.Next() {
		var rk domain.Rank
		var seconds int64
		var nanos int32
		if err := rows.Scan(&rk.ID, &rk.Name, &rk.Sorting, &seconds, &nanos); err != nil {
			return nil, err
		}
		rk.SetRequirement(seconds, nanos)
		ranks = append(ranks, rk)
	}
	return ranks, rows.Err()
}

func (r *RankRepository) Create(ctx context.Context, rk *domain.Rank) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO ranks (name, sorting, requirement_seconds, requirement_nanos)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		rk.Name, rk.Sorting, rk.RequirementSeconds(), rk.RequirementNanos(),
	).Scan(&rk.ID)
}

func (r *RankRepository) Update(ctx context.Context, rk *domain.Rank) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE ranks SET name = $1, sorting = $2, requirement_seconds = $3, requirement_nanos = $4
		 WHERE id = $5`,
		rk.Name, rk.Sorting, rk.RequirementSeconds(), rk.RequirementNanos(), rk.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RankRepository) Delete(ctx context.Context, id int32) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ranks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
