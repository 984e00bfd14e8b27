// internal/socket/broadcaster.go
package socket

// Broadcaster is the service-facing API for pushing realtime updates. It keeps
// services free of hub internals.
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// SendNotification pushes a persisted notification to a user in real time.
func (b *Broadcaster) SendNotification(userID string, payload map[string]interface{}) {
	if b == nil || b.hub == nil {
		return
	}
	b.hub.SendToUser(userID, MessageNotification, payload)
}

// WorkspaceLifecycleChanged tells every listed member that a workspace moved
// to a new lifecycle state.
func (b *Broadcaster) WorkspaceLifecycleChanged(userIDs []string, msgType MessageType, workspaceID, status string) {
	if b == nil || b.hub == nil {
		return
	}
	payload := map[string]interface{}{
		"workspaceId": workspaceID,
		"status":      status,
	}
	for _, userID := range userIDs {
		b.hub.SendToUser(userID, msgType, payload)
	}
}

// TaskReassigned notifies the receiving manager about tasks moved to them.
func (b *Broadcaster) TaskReassigned(userID, workspaceID string, taskIDs []string) {
	if b == nil || b.hub == nil {
		return
	}
	b.hub.SendToUser(userID, MessageTaskReassigned, map[string]interface{}{
		"workspaceId": workspaceID,
		"taskIds":     taskIDs,
	})
}
