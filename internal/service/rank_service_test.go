package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"viewerhub/internal/domain"
)

type fakeRankStore struct {
	ranks []domain.Rank
}

func (f *fakeRankStore) List(ctx context.Context) ([]domain.Rank, error) {
	rs := append([]domain.Rank(nil), f.ranks...)
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Sorting != rs[j].Sorting {
			return rs[i].Sorting > rs[j].Sorting
		}
		return rs[i].ID < rs[j].ID
	})
	return rs, nil
}

func TestSelectRank(t *testing.T) {
	store := &fakeRankStore{ranks: []domain.Rank{
		{ID: 1, Name: "regular", Sorting: 1, Requirement: time.Hour},
		{ID: 2, Name: "veteran", Sorting: 2, Requirement: 10 * time.Hour},
		{ID: 3, Name: "legend", Sorting: 3, Requirement: 100 * time.Hour},
	}}
	svc := NewRankService(store)

	cases := []struct {
		watch time.Duration
		want  string
	}{
		{0, DefaultRankName},
		{30 * time.Minute, DefaultRankName},
		{time.Hour, "regular"},
		{9 * time.Hour, "regular"},
		{10 * time.Hour, "veteran"},
		{500 * time.Hour, "legend"},
	}

	for _, tc := range cases {
		got, err := svc.Select(context.Background(), tc.watch)
		if err != nil {
			t.Fatalf("select(%v): %v", tc.watch, err)
		}
		if got != tc.want {
			t.Fatalf("select(%v) = %q; want %q", tc.watch, got, tc.want)
		}
	}
}

func TestSelectRankTieBrokenByID(t *testing.T) {
	store := &fakeRankStore{ranks: []domain.Rank{
		{ID: 7, Name: "late", Sorting: 5, Requirement: time.Minute},
		{ID: 3, Name: "early", Sorting: 5, Requirement: time.Minute},
	}}
	svc := NewRankService(store)

	got, err := svc.Select(context.Background(), time.Hour)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got != "early" {
		t.Fatalf("tie on sorting must resolve to lowest id, got %q", got)
	}
}
