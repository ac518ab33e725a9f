package repository

import (
	"context"
	"errors"

	"viewerhub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GroupRepository struct {
	db *pgxpool.Pool
}

func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Get(ctx context.Context, id int32) (*domain.Group, error) {
	var g domain.Group
	err := r.db.QueryRow(ctx,
		`SELECT id, name, bonus_payout, sorting FROM groups WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.Name, &g.BonusPayout, &g.Sorting)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// List returns all groups, highest sorting first (display order).
func (r *GroupRepository) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, bonus_payout, sorting FROM groups ORDER BY sorting DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGroups(rows)
}

func (r *GroupRepository) Create(ctx context.Context, g *domain.Group) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO groups (name, bonus_payout, sorting) VALUES ($1, $2, $3) RETURNING id`,
		g.Name, g.BonusPayout, g.Sorting,
	).Scan(&g.ID)
}

func (r *GroupRepository) Update(ctx context.Context, g *domain.Group) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE groups SET name = $1, bonus_payout = $2, sorting = $3 WHERE id = $4`,
		g.Name, g.BonusPayout, g.Sorting, g.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GroupRepository) Delete(ctx context.Context, id int32) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetForUser returns the groups a viewer belongs to, lowest sorting first.
// Permission resolution folds over this order so that higher-priority groups
// overwrite lower ones.
func (r *GroupRepository) GetForUser(ctx context.Context, channelID string) ([]domain.Group, error) {
	rows, err := r.db.Query(ctx,
		`SELECT g.id, g.name, g.bonus_payout, g.sorting
		 FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.channel_id = $1
		 ORDER BY g.sorting ASC, g.id ASC`,
		channelID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGroups(rows)
}

func (r *GroupRepository) AddMember(ctx context.Context, groupID int32, channelID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO group_members (group_id, channel_id) VALUES ($1, $2)
		 ON CONFLICT (group_id, channel_id) DO NOTHING`,
		groupID, channelID,
	)
	return err
}

func (r *GroupRepository) RemoveMember(ctx context.Context, groupID int32, channelID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND channel_id = $2`,
		groupID, channelID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GroupRepository) Members(ctx context.Context, groupID int32) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT channel_id FROM group_members WHERE group_id = $1 ORDER BY channel_id`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, rows.Err()
}

func collectGroups(rows pgx.Rows) ([]domain.Group, error) {
	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.BonusPayout, &g.Sorting); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
