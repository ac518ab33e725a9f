package service

import (
	"context"
	"time"

	"viewerhub/internal/domain"
)

// DefaultRankName is returned for viewers below every rank's requirement.
const DefaultRankName = "default"

type rankStore interface {
	// List must return ranks ordered by sorting descending, ties by id
	// ascending.
	List(ctx context.Context) ([]domain.Rank, error)
}

// RankService picks the rank label a viewer has earned with their watch time.
type RankService struct {
	ranks rankStore
}

func NewRankService(ranks rankStore) *RankService {
	return &RankService{ranks: ranks}
}

// Select returns the qualifying rank with the highest sorting. The store's
// order makes the first qualifying rank the answer; two ranks sharing a
// sorting value resolve to the one with the lower id.
func (s *RankService) Select(ctx context.Context, watchTime time.Duration) (string, error) {
	ranks, err := s.ranks.List(ctx)
	if err != nil {
		return DefaultRankName, err
	}

	for _, r := range ranks {
		if r.Requirement <= watchTime {
			return r.Name, nil
		}
	}
	return DefaultRankName, nil
}
