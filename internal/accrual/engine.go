package accrual

import (
	"time"

	"viewerhub/internal/domain"
)

// Config is the accrual policy, passed in explicitly so the engine stays a
// pure function of its inputs.
type Config struct {
	// ActiveWindow is the largest gap between two messages for the viewer to
	// count as continuously watching. Gaps at or above it accrue nothing.
	ActiveWindow time.Duration
	// BasePayoutPerMin is the currency earned per minute of active watch
	// time, before group bonuses.
	BasePayoutPerMin float64
}

// Accrue applies one chat event to a viewer's aggregate and returns the
// updated record. prior is nil for a never-seen channel id. The caller
// persists the result.
//
// Elapsed time below zero (out-of-order or replayed events) accrues nothing
// and never moves last_seen backward, so replays are idempotent.
func Accrue(prior *domain.User, ev domain.ChatEvent, now time.Time, cfg Config, groups []domain.Group) domain.User {
	if prior == nil {
		return domain.User{
			ChannelID:   ev.ChannelID,
			DisplayName: ev.DisplayName,
			FirstSeenAt: now,
			LastSeenAt:  now,
		}
	}

	u := *prior
	u.DisplayName = ev.DisplayName

	elapsed := now.Sub(prior.LastSeenAt)
	if elapsed < 0 {
		return u
	}

	if elapsed < cfg.ActiveWindow {
		u.WatchTime += elapsed

		rate := cfg.BasePayoutPerMin
		for _, g := range groups {
			rate += g.BonusPayout
		}
		u.Money += rate * elapsed.Seconds() / 60
	}

	u.LastSeenAt = now
	return u
}
