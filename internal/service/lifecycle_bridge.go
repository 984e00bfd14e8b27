package service

import "context"

// EventLifecycleBridge decouples the event domain from workspace
// orchestration: event writes call these hooks after committing, and every
// hook is fire-and-forget from the event side.
type EventLifecycleBridge interface {
	OnEventCreated(ctx context.Context, eventID, organizerID string)
	OnEventStatusChanged(ctx context.Context, eventID, oldStatus, newStatus string)
}

type eventLifecycleBridge struct {
	lifecycle LifecycleService
}

func NewEventLifecycleBridge(lifecycle LifecycleService) EventLifecycleBridge {
	return &eventLifecycleBridge{lifecycle: lifecycle}
}

func (b *eventLifecycleBridge) OnEventCreated(ctx context.Context, eventID, organizerID string) {
	b.lifecycle.OnEventCreated(ctx, eventID, organizerID)
}

func (b *eventLifecycleBridge) OnEventStatusChanged(ctx context.Context, eventID, oldStatus, newStatus string) {
	b.lifecycle.OnEventStatusChanged(ctx, eventID, oldStatus, newStatus)
}
