package service

import (
	"context"
	"sort"
	"testing"

	"viewerhub/internal/domain"
)

type fakePermStore struct {
	groups     map[string][]domain.Group
	groupPerms map[int32][]domain.GroupPermission
	userPerms  map[string][]domain.UserPermission
}

func (f *fakePermStore) GetForUser(ctx context.Context, channelID string) ([]domain.Group, error) {
	gs := append([]domain.Group(nil), f.groups[channelID]...)
	sort.Slice(gs, func(i, j int) bool {
		if gs[i].Sorting != gs[j].Sorting {
			return gs[i].Sorting < gs[j].Sorting
		}
		return gs[i].ID < gs[j].ID
	})
	return gs, nil
}

func (f *fakePermStore) GetForGroup(ctx context.Context, groupID int32) ([]domain.GroupPermission, error) {
	return f.groupPerms[groupID], nil
}

// fakeUserPermStore reuses fakePermStore but exposes the user-permission
// variant of GetForUser, which clashes with the group lookup on the base type.
type fakeUserPermStore struct {
	*fakePermStore
}

func (f *fakePermStore) userPermStore() *fakeUserPermStore {
	return &fakeUserPermStore{f}
}

func (f *fakeUserPermStore) GetForUser(ctx context.Context, channelID string) ([]domain.UserPermission, error) {
	return f.userPerms[channelID], nil
}

func TestResolveGroupPriorityOrder(t *testing.T) {
	store := &fakePermStore{
		groups: map[string][]domain.Group{
			"abc": {
				{ID: 2, Name: "g2", Sorting: 2},
				{ID: 1, Name: "g1", Sorting: 1},
			},
		},
		groupPerms: map[int32][]domain.GroupPermission{
			1: {{GroupID: 1, Permission: "p", Granted: false}},
			2: {{GroupID: 2, Permission: "p", Granted: true}},
		},
		userPerms: map[string][]domain.UserPermission{},
	}
	svc := NewPermissionService(store, store.userPermStore())

	got, err := svc.Resolve(context.Background(), "abc", "p", false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !got {
		t.Fatal("higher-priority group grant must win over lower-priority denial")
	}
}

func TestResolveUserOverrideWins(t *testing.T) {
	store := &fakePermStore{
		groups: map[string][]domain.Group{
			"abc": {
				{ID: 1, Name: "g1", Sorting: 1},
				{ID: 2, Name: "g2", Sorting: 2},
			},
		},
		groupPerms: map[int32][]domain.GroupPermission{
			1: {{GroupID: 1, Permission: "p", Granted: false}},
			2: {{GroupID: 2, Permission: "p", Granted: true}},
		},
		userPerms: map[string][]domain.UserPermission{
			"abc": {{ChannelID: "abc", Permission: "p", Granted: false}},
		},
	}
	svc := NewPermissionService(store, store.userPermStore())

	got, err := svc.Resolve(context.Background(), "abc", "p", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got {
		t.Fatal("user-level denial must override every group grant")
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	store := &fakePermStore{
		groups:     map[string][]domain.Group{},
		groupPerms: map[int32][]domain.GroupPermission{},
		userPerms:  map[string][]domain.UserPermission{},
	}
	svc := NewPermissionService(store, store.userPermStore())

	for _, def := range []bool{true, false} {
		got, err := svc.Resolve(context.Background(), "nobody", "p", def)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got != def {
			t.Fatalf("resolve with no records = %v; want default %v", got, def)
		}
	}
}

func TestResolveIgnoresOtherPermissionNames(t *testing.T) {
	store := &fakePermStore{
		groups: map[string][]domain.Group{
			"abc": {{ID: 1, Name: "g1", Sorting: 1}},
		},
		groupPerms: map[int32][]domain.GroupPermission{
			1: {{GroupID: 1, Permission: "other", Granted: true}},
		},
		userPerms: map[string][]domain.UserPermission{},
	}
	svc := NewPermissionService(store, store.userPermStore())

	got, err := svc.Resolve(context.Background(), "abc", "p", false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got {
		t.Fatal("records for unrelated permission names must not apply")
	}
}
