package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"viewerhub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `channel_id, COALESCE(display_name, ''), watch_seconds, watch_nanos, money, first_seen_at, last_seen_at`

// Sortable fields accepted by UserFilter.Sort.
const (
	SortWatchTime = "watch_time"
	SortMoney     = "money"
)

// UserFilter narrows and orders a user listing. Zero values mean "no
// constraint"; bounds are pointers so zero is a usable bound.
type UserFilter struct {
	ChannelID   string
	DisplayName string // case-insensitive substring match
	MinWatch    *time.Duration
	MaxWatch    *time.Duration
	MinMoney    *float64
	MaxMoney    *float64
	Sort        string // "", SortWatchTime or SortMoney
	Desc        bool
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var seconds int64
	var nanos int32
	if err := row.Scan(
		&u.ChannelID,
		&u.DisplayName,
		&seconds,
		&nanos,
		&u.Money,
		&u.FirstSeenAt,
		&u.LastSeenAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.SetWatch(seconds, nanos)
	return &u, nil
}

func (r *UserRepository) Get(ctx context.Context, channelID string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE channel_id = $1`,
		channelID,
	)
	return scanUser(row)
}

func (r *UserRepository) Exists(ctx context.Context, channelID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE channel_id = $1)`,
		channelID,
	).Scan(&exists)
	return exists, err
}

// Upsert creates or replaces the aggregate keyed by channel id. The write is
// a single statement so concurrent readers see either the old or the new row.
func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (channel_id, display_name, watch_seconds, watch_nanos, money, first_seen_at, last_seen_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (channel_id) DO UPDATE
		 SET display_name = EXCLUDED.display_name,
		     watch_seconds = EXCLUDED.watch_seconds,
		     watch_nanos = EXCLUDED.watch_nanos,
		     money = EXCLUDED.money,
		     last_seen_at = EXCLUDED.last_seen_at`,
		u.ChannelID,
		u.DisplayName,
		u.WatchSeconds(),
		u.WatchNanos(),
		u.Money,
		u.FirstSeenAt,
		u.LastSeenAt,
	)
	return err
}

// List returns users matching the filter in the requested order. An unknown
// sort field is the caller's mistake and yields ErrInvalidFilter.
func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]domain.User, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.ChannelID != "" {
		conds = append(conds, "channel_id = "+arg(f.ChannelID))
	}
	if f.DisplayName != "" {
		conds = append(conds, "display_name ILIKE "+arg("%"+f.DisplayName+"%"))
	}
	if f.MinWatch != nil {
		conds = append(conds, "(watch_seconds * 1000000000 + watch_nanos) >= "+arg(f.MinWatch.Nanoseconds()))
	}
	if f.MaxWatch != nil {
		conds = append(conds, "(watch_seconds * 1000000000 + watch_nanos) <= "+arg(f.MaxWatch.Nanoseconds()))
	}
	if f.MinMoney != nil {
		conds = append(conds, "money >= "+arg(*f.MinMoney))
	}
	if f.MaxMoney != nil {
		conds = append(conds, "money <= "+arg(*f.MaxMoney))
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	dir := " ASC"
	if f.Desc {
		dir = " DESC"
	}
	switch f.Sort {
	case "":
	case SortWatchTime:
		query += " ORDER BY watch_seconds" + dir + ", watch_nanos" + dir
	case SortMoney:
		query += " ORDER BY money" + dir
	default:
		return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidFilter, f.Sort)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Delete removes the given users. Missing ids are not an error; the caller
// only learns how many rows actually went away.
func (r *UserRepository) Delete(ctx context.Context, channelIDs []string) (int64, error) {
	if len(channelIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx,
		`DELETE FROM users WHERE channel_id = ANY($1)`,
		channelIDs,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
