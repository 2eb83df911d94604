package service

import (
	"context"
	"fmt"
	"log/slog"

	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// GroupService manages groups and their membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create persists a new group. The creator is always a member.
func (s *GroupService) Create(ctx context.Context, group *models.Group) error {
	if group.Name == "" {
		return fmt.Errorf("%w: group name is required", ledger.ErrInvalidInput)
	}
	if !group.HasMember(group.CreatedBy) {
		group.Members = append(group.Members, group.CreatedBy)
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", group.Name, "error", err)
		return err
	}
	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "members", len(group.Members))
	return nil
}

// Get retrieves a group with its member list.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListForUser returns every group the user belongs to.
func (s *GroupService) ListForUser(ctx context.Context, userID models.UserID) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, userID)
}

// AddMembers adds users to an existing group. Adding an existing member is a
// no-op.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, members []models.UserID) error {
	if len(members) == 0 {
		return fmt.Errorf("%w: no members to add", ledger.ErrInvalidInput)
	}
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return err
	}
	if err := s.store.AddGroupMembers(ctx, groupID, members); err != nil {
		slog.Error("AddGroupMembers failed", "group_id", groupID, "error", err)
		return err
	}
	slog.Info("Members added", "group_id", groupID, "count", len(members))
	return nil
}

// Activities returns the group's activity feed, newest first.
func (s *GroupService) Activities(ctx context.Context, groupID string) ([]*models.Activity, error) {
	return s.store.ListActivitiesByGroup(ctx, groupID)
}
