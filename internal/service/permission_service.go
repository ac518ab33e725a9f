package service

import (
	"context"

	"viewerhub/internal/domain"
)

// Storage slices consumed by permission resolution, satisfied by
// repository.GroupRepository and repository.PermissionRepository. Kept as
// interfaces so the fold is testable against in-memory fakes.
type groupStore interface {
	// GetForUser must return the user's groups lowest sorting first.
	GetForUser(ctx context.Context, channelID string) ([]domain.Group, error)
}

type permissionStore interface {
	GetForGroup(ctx context.Context, groupID int32) ([]domain.GroupPermission, error)
	GetForUser(ctx context.Context, channelID string) ([]domain.UserPermission, error)
}

// PermissionService resolves the effective grant for a (user, permission)
// pair from layered group and user records.
type PermissionService struct {
	groups groupStore
	perms  permissionStore
}

func NewPermissionService(groups groupStore, perms permissionStore) *PermissionService {
	return &PermissionService{groups: groups, perms: perms}
}

// Resolve folds the user's group records in ascending sorting order, each
// explicit record overwriting the running result, then applies the user's own
// record, which wins unconditionally. Names with no record anywhere resolve
// to def. This is last-writer-wins, not a union: a high-priority denial beats
// a low-priority grant.
func (s *PermissionService) Resolve(ctx context.Context, channelID, permission string, def bool) (bool, error) {
	result := def

	groups, err := s.groups.GetForUser(ctx, channelID)
	if err != nil {
		return def, err
	}

	for _, g := range groups {
		records, err := s.perms.GetForGroup(ctx, g.ID)
		if err != nil {
			return def, err
		}
		for _, p := range records {
			if p.Permission == permission {
				result = p.Granted
			}
		}
	}

	userRecords, err := s.perms.GetForUser(ctx, channelID)
	if err != nil {
		return def, err
	}
	for _, p := range userRecords {
		if p.Permission == permission {
			result = p.Granted
		}
	}

	return result, nil
}
