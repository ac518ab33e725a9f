package ingest

import (
	"context"
	"errors"
	"time"

	"viewerhub/internal/accrual"
	"viewerhub/internal/domain"
	"viewerhub/internal/logger"
	"viewerhub/internal/repository"
)

// Storage slices the loop needs, satisfied by repository.UserRepository and
// repository.GroupRepository.
type userStore interface {
	Get(ctx context.Context, channelID string) (*domain.User, error)
	Upsert(ctx context.Context, u *domain.User) error
}

type membershipStore interface {
	GetForUser(ctx context.Context, channelID string) ([]domain.Group, error)
}

// Loop is the single sequential consumer of the chat feed. At most one event
// is in flight; a failure on one event is logged and the loop moves on, so a
// bad message never stalls accrual for everyone else.
type Loop struct {
	source Source
	users  userStore
	groups membershipStore
	cfg    accrual.Config

	// now is swappable for tests.
	now func() time.Time
}

func NewLoop(source Source, users userStore, groups membershipStore, cfg accrual.Config) *Loop {
	return &Loop{
		source: source,
		users:  users,
		groups: groups,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Run consumes the feed until it closes or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	events := l.source.Events()
	logger.Info("ingest loop started",
		"active_window", l.cfg.ActiveWindow,
		"base_payout_per_min", l.cfg.BasePayoutPerMin,
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				logger.Info("chat feed closed, ingest loop stopping")
				return nil
			}
			feedEvents.Inc()
			l.process(ctx, ev)
		}
	}
}

func (l *Loop) process(ctx context.Context, ev domain.ChatEvent) {
	if ev.ChannelID == "" {
		logger.Warn("malformed chat event, skipping", "display_name", ev.DisplayName)
		eventsSkipped.WithLabelValues("malformed").Inc()
		return
	}

	prior, err := l.users.Get(ctx, ev.ChannelID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.Error("load aggregate failed, skipping event", "channel_id", ev.ChannelID, "error", err)
		eventsSkipped.WithLabelValues("store_error").Inc()
		return
	}

	var groups []domain.Group
	if prior != nil {
		groups, err = l.groups.GetForUser(ctx, ev.ChannelID)
		if err != nil {
			logger.Error("load groups failed, skipping event", "channel_id", ev.ChannelID, "error", err)
			eventsSkipped.WithLabelValues("store_error").Inc()
			return
		}
	}

	updated := accrual.Accrue(prior, ev, l.now(), l.cfg, groups)

	if err := l.users.Upsert(ctx, &updated); err != nil {
		logger.Error("persist aggregate failed, skipping event", "channel_id", ev.ChannelID, "error", err)
		eventsSkipped.WithLabelValues("store_error").Inc()
		return
	}

	eventsApplied.Inc()
	if prior != nil {
		lastAccrualSeconds.Set((updated.WatchTime - prior.WatchTime).Seconds())
	}
}
