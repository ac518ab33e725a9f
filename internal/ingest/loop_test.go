package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"viewerhub/internal/accrual"
	"viewerhub/internal/domain"
	"viewerhub/internal/repository"
)

type fakeSource struct {
	events chan domain.ChatEvent
}

func newFakeSource(evs ...domain.ChatEvent) *fakeSource {
	ch := make(chan domain.ChatEvent, len(evs))
	for _, ev := range evs {
		ch <- ev
	}
	close(ch)
	return &fakeSource{events: ch}
}

func (f *fakeSource) Events() <-chan domain.ChatEvent { return f.events }
func (f *fakeSource) Close() error                    { return nil }

type fakeStore struct {
	users      map[string]domain.User
	groups     map[string][]domain.Group
	failUpsert map[string]bool
	upserts    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[string]domain.User),
		groups:     make(map[string][]domain.Group),
		failUpsert: make(map[string]bool),
	}
}

func (f *fakeStore) Get(ctx context.Context, channelID string) (*domain.User, error) {
	u, ok := f.users[channelID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeStore) Upsert(ctx context.Context, u *domain.User) error {
	if f.failUpsert[u.ChannelID] {
		return errors.New("store unavailable")
	}
	f.upserts++
	f.users[u.ChannelID] = *u
	return nil
}

func (f *fakeStore) GetForUser(ctx context.Context, channelID string) ([]domain.Group, error) {
	return f.groups[channelID], nil
}

var loopCfg = accrual.Config{ActiveWindow: 300 * time.Second, BasePayoutPerMin: 60}

func runLoop(t *testing.T, l *Loop) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.Run(ctx); err != nil {
		t.Fatalf("loop: %v", err)
	}
}

func TestLoopCreatesAndAccrues(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	source := newFakeSource(
		domain.ChatEvent{ChannelID: "abc", DisplayName: "Abc"},
		domain.ChatEvent{ChannelID: "abc", DisplayName: "Abc"},
	)

	clock := t0
	l := NewLoop(source, store, store, loopCfg)
	l.now = func() time.Time {
		now := clock
		clock = clock.Add(30 * time.Second)
		return now
	}

	runLoop(t, l)

	u := store.users["abc"]
	if u.WatchTime != 30*time.Second {
		t.Fatalf("watch time = %v; want 30s", u.WatchTime)
	}
	if u.Money != 30.0 {
		t.Fatalf("money = %v; want 30.0", u.Money)
	}
	if !u.FirstSeenAt.Equal(t0) || !u.LastSeenAt.Equal(t0.Add(30*time.Second)) {
		t.Fatalf("timestamps wrong: %+v", u)
	}
}

func TestLoopSkipsMalformedAndContinues(t *testing.T) {
	store := newFakeStore()
	source := newFakeSource(
		domain.ChatEvent{ChannelID: "", DisplayName: "ghost"},
		domain.ChatEvent{ChannelID: "abc", DisplayName: "Abc"},
	)

	l := NewLoop(source, store, store, loopCfg)
	runLoop(t, l)

	if _, ok := store.users["abc"]; !ok {
		t.Fatal("event after a malformed one must still be processed")
	}
	if store.upserts != 1 {
		t.Fatalf("upserts = %d; want 1", store.upserts)
	}
}

func TestLoopSkipsStoreFailureAndContinues(t *testing.T) {
	store := newFakeStore()
	store.failUpsert["bad"] = true
	source := newFakeSource(
		domain.ChatEvent{ChannelID: "bad", DisplayName: "Bad"},
		domain.ChatEvent{ChannelID: "good", DisplayName: "Good"},
	)

	l := NewLoop(source, store, store, loopCfg)
	runLoop(t, l)

	if _, ok := store.users["good"]; !ok {
		t.Fatal("a persistence failure must not stall later events")
	}
	if _, ok := store.users["bad"]; ok {
		t.Fatal("failed upsert must not be applied")
	}
}

func TestLoopAppliesGroupBonus(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.users["abc"] = domain.User{
		ChannelID:   "abc",
		DisplayName: "Abc",
		FirstSeenAt: t0,
		LastSeenAt:  t0,
	}
	store.groups["abc"] = []domain.Group{{ID: 1, Name: "subs", BonusPayout: 60}}
	source := newFakeSource(domain.ChatEvent{ChannelID: "abc", DisplayName: "Abc"})

	l := NewLoop(source, store, store, loopCfg)
	l.now = func() time.Time { return t0.Add(30 * time.Second) }

	runLoop(t, l)

	// (60 + 60)/min over 30s
	if got := store.users["abc"].Money; got != 60.0 {
		t.Fatalf("money = %v; want 60.0", got)
	}
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	store := newFakeStore()
	source := &fakeSource{events: make(chan domain.ChatEvent)}
	l := NewLoop(source, store, store, loopCfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v; want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}
