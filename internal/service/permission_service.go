package service

import (
	"context"

	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/types"
)

// ============================================
// Permission Service
// ============================================

type PermissionService interface {
	// ActiveMember returns the user's ACTIVE membership in the workspace, or
	// nil when the user has none.
	ActiveMember(ctx context.Context, workspaceID, userID string) (*repository.TeamMember, error)

	// RequireCapability returns the actor's ACTIVE membership when it carries
	// the capability, ErrForbidden otherwise.
	RequireCapability(ctx context.Context, workspaceID, userID, capability string) (*repository.TeamMember, error)

	// EffectivePermissions resolves a membership's capabilities, defaulting
	// from the role when none were set explicitly.
	EffectivePermissions(member *repository.TeamMember) []string
}

type permissionService struct {
	memberRepo repository.MemberRepository
}

func NewPermissionService(memberRepo repository.MemberRepository) PermissionService {
	return &permissionService{memberRepo: memberRepo}
}

func (s *permissionService) ActiveMember(ctx context.Context, workspaceID, userID string) (*repository.TeamMember, error) {
	member, err := s.memberRepo.FindByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.Status != types.MemberActive {
		return nil, nil
	}
	return member, nil
}

func (s *permissionService) RequireCapability(ctx context.Context, workspaceID, userID, capability string) (*repository.TeamMember, error) {
	member, err := s.ActiveMember(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrForbidden
	}

	for _, p := range s.EffectivePermissions(member) {
		if p == capability {
			return member, nil
		}
	}
	return nil, ErrForbidden
}

func (s *permissionService) EffectivePermissions(member *repository.TeamMember) []string {
	if len(member.Permissions) > 0 {
		return member.Permissions
	}
	return types.DefaultPermissions[member.Role]
}
