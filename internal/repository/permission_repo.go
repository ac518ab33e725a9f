package repository

import (
	"context"

	"viewerhub/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PermissionRepository handles both group-level and user-level permission
// records. A record is one (owner, permission) pair; grants and revocations
// are upserts so the last write wins.
type PermissionRepository struct {
	db *pgxpool.Pool
}

func NewPermissionRepository(db *pgxpool.Pool) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetForGroup(ctx context.Context, groupID int32) ([]domain.GroupPermission, error) {
	rows, err := r.db.Query(ctx,
		`SELECT group_id, permission, granted FROM group_permissions
		 WHERE group_id = $1 ORDER BY permission`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []domain.GroupPermission
	for rows.Next() {
		var p domain.GroupPermission
		if err := rows.Scan(&p.GroupID, &p.Permission, &p.Granted); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *PermissionRepository) SetForGroup(ctx context.Context, p domain.GroupPermission) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO group_permissions (group_id, permission, granted) VALUES ($1, $2, $3)
		 ON CONFLICT (group_id, permission) DO UPDATE SET granted = EXCLUDED.granted`,
		p.GroupID, p.Permission, p.Granted,
	)
	return err
}

func (r *PermissionRepository) DeleteForGroup(ctx context.Context, groupID int32, permission string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM group_permissions WHERE group_id = $1 AND permission = $2`,
		groupID, permission,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PermissionRepository) GetForUser(ctx context.Context, channelID string) ([]domain.UserPermission, error) {
	rows, err := r.db.Query(ctx,
		`SELECT channel_id, permission, granted FROM user_permissions
		 WHERE channel_id = $1 ORDER BY permission`,
		channelID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []domain.UserPermission
	for rows.Next() {
		var p domain.UserPermission
		if err := rows.Scan(&p.ChannelID, &p.Permission, &p.Granted); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *PermissionRepository) SetForUser(ctx context.Context, p domain.UserPermission) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_permissions (channel_id, permission, granted) VALUES ($1, $2, $3)
		 ON CONFLICT (channel_id, permission) DO UPDATE SET granted = EXCLUDED.granted`,
		p.ChannelID, p.Permission, p.Granted,
	)
	return err
}

func (r *PermissionRepository) DeleteForUser(ctx context.Context, channelID, permission string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_permissions WHERE channel_id = $1 AND permission = $2`,
		channelID, permission,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
