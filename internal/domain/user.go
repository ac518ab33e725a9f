package domain

import "time"

// User is the aggregate record for a single viewer, keyed by the stable
// channel id of the chat account. Watch time and money only grow during
// accrual; direct admin updates may set arbitrary non-negative values.
type User struct {
	ChannelID   string        `db:"channel_id" json:"channel_id"`
	DisplayName string        `db:"display_name" json:"display_name"`
	WatchTime   time.Duration `db:"-" json:"-"`
	Money       float64       `db:"money" json:"money"`
	FirstSeenAt time.Time     `db:"first_seen_at" json:"first_seen_at"`
	LastSeenAt  time.Time     `db:"last_seen_at" json:"last_seen_at"`
}

// WatchSeconds and WatchNanos split WatchTime into the stored form
// (whole seconds plus sub-second remainder).
func (u *User) WatchSeconds() int64 {
	return int64(u.WatchTime / time.Second)
}

func (u *User) WatchNanos() int32 {
	return int32(u.WatchTime % time.Second)
}

// SetWatch recombines the stored columns into the duration field.
func (u *User) SetWatch(seconds int64, nanos int32) {
	u.WatchTime = time.Duration(seconds)*time.Second + time.Duration(nanos)
}
