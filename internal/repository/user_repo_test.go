package repository

import (
	"context"
	"errors"
	"testing"
)

func TestListRejectsUnknownSortField(t *testing.T) {
	// validation happens before any query is issued, so no pool is needed
	r := NewUserRepository(nil)

	_, err := r.List(context.Background(), UserFilter{Sort: "first_seen"})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("err = %v; want ErrInvalidFilter", err)
	}
}
