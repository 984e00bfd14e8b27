package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/socket"
)

// Notification types
const (
	TypeWorkspaceProvisioned = "WORKSPACE_PROVISIONED"
	TypeWindDownNotice       = "WORKSPACE_WIND_DOWN"
	TypeWorkspaceDissolved   = "WORKSPACE_DISSOLVED"
	TypeWorkspaceReactivated = "WORKSPACE_REACTIVATED"
	TypeAccessRevoked        = "ACCESS_REVOKED"
	TypeTasksReassigned      = "TASKS_REASSIGNED"
)

// Service persists in-app notifications and pushes them over the websocket
// hub. Delivery is best-effort: callers treat a returned error as loggable,
// never fatal.
type Service struct {
	notificationRepo repository.NotificationRepository
	broadcaster      *socket.Broadcaster
}

func NewService(notificationRepo repository.NotificationRepository) *Service {
	return &Service{notificationRepo: notificationRepo}
}

func (s *Service) SetBroadcaster(b *socket.Broadcaster) {
	s.broadcaster = b
}

func (s *Service) send(ctx context.Context, userID, notifType, title, message string, data map[string]interface{}) error {
	n := &repository.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.SendNotification(userID, map[string]interface{}{
			"id":        n.ID,
			"type":      n.Type,
			"title":     n.Title,
			"message":   n.Message,
			"data":      n.Data,
			"read":      n.Read,
			"createdAt": n.CreatedAt,
		})
	}
	return nil
}

// SendWindDownNotice tells a member their workspace entered WINDING_DOWN.
func (s *Service) SendWindDownNotice(ctx context.Context, userID, workspaceName, workspaceID string, retentionDays int) error {
	log.Printf("[Notification] Wind-down notice for user %s, workspace %s", userID, workspaceID)
	return s.send(ctx, userID, TypeWindDownNotice,
		"Workspace winding down",
		fmt.Sprintf("The workspace %q is winding down and will be dissolved after %d days of retention.", workspaceName, retentionDays),
		map[string]interface{}{"workspaceId": workspaceID},
	)
}

// SendDissolutionNotice tells a member their workspace was dissolved.
func (s *Service) SendDissolutionNotice(ctx context.Context, userID, workspaceName, workspaceID, reason string) error {
	log.Printf("[Notification] Dissolution notice for user %s, workspace %s (%s)", userID, workspaceID, reason)
	return s.send(ctx, userID, TypeWorkspaceDissolved,
		"Workspace dissolved",
		fmt.Sprintf("The workspace %q has been dissolved.", workspaceName),
		map[string]interface{}{"workspaceId": workspaceID, "reason": reason},
	)
}

// SendRevocationNotice tells a member their access was revoked.
func (s *Service) SendRevocationNotice(ctx context.Context, userID, workspaceName, workspaceID, reason string) error {
	log.Printf("[Notification] Revocation notice for user %s, workspace %s", userID, workspaceID)
	return s.send(ctx, userID, TypeAccessRevoked,
		"Workspace access revoked",
		fmt.Sprintf("Your access to the workspace %q has been revoked: %s", workspaceName, reason),
		map[string]interface{}{"workspaceId": workspaceID, "reason": reason},
	)
}

// SendReassignmentNotice tells a manager they received a departing member's tasks.
func (s *Service) SendReassignmentNotice(ctx context.Context, userID, workspaceName, workspaceID string, taskCount int) error {
	log.Printf("[Notification] Reassignment notice for user %s, workspace %s (%d tasks)", userID, workspaceID, taskCount)
	return s.send(ctx, userID, TypeTasksReassigned,
		"Tasks reassigned to you",
		fmt.Sprintf("%d open task(s) in workspace %q were reassigned to you.", taskCount, workspaceName),
		map[string]interface{}{"workspaceId": workspaceID, "taskCount": taskCount},
	)
}

// SendReactivationNotice tells a member their workspace is active again.
func (s *Service) SendReactivationNotice(ctx context.Context, userID, workspaceName, workspaceID string) error {
	log.Printf("[Notification] Reactivation notice for user %s, workspace %s", userID, workspaceID)
	return s.send(ctx, userID, TypeWorkspaceReactivated,
		"Workspace reactivated",
		fmt.Sprintf("The workspace %q has been reactivated.", workspaceName),
		map[string]interface{}{"workspaceId": workspaceID},
	)
}
