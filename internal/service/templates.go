package service

import (
	"context"
	"fmt"
	"log"

	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/types"
)

// ============================================
// Workspace Templates
// ============================================

type starterTask struct {
	Title    string
	Category string
	Priority string
}

// WorkspaceTemplate pre-configures a workspace for a common event shape:
// extra channels, task categories and a starter task list.
type WorkspaceTemplate struct {
	ID             string
	Name           string
	Channels       []string
	TaskCategories []string
	StarterTasks   []starterTask
}

var builtinTemplates = map[string]WorkspaceTemplate{
	"conference": {
		ID:             "conference",
		Name:           "Conference",
		Channels:       []string{"speakers", "sponsors", "venue"},
		TaskCategories: []string{"logistics", "program", "marketing", "sponsorship", "av"},
		StarterTasks: []starterTask{
			{Title: "Confirm venue booking", Category: "logistics", Priority: types.PriorityHigh},
			{Title: "Open call for papers", Category: "program", Priority: types.PriorityHigh},
			{Title: "Draft sponsorship prospectus", Category: "sponsorship", Priority: types.PriorityMedium},
			{Title: "Book AV equipment", Category: "av", Priority: types.PriorityMedium},
			{Title: "Announce ticket sales", Category: "marketing", Priority: types.PriorityMedium},
		},
	},
	"workshop": {
		ID:             "workshop",
		Name:           "Workshop",
		Channels:       []string{"materials"},
		TaskCategories: []string{"logistics", "curriculum", "materials"},
		StarterTasks: []starterTask{
			{Title: "Finalize curriculum outline", Category: "curriculum", Priority: types.PriorityHigh},
			{Title: "Prepare participant materials", Category: "materials", Priority: types.PriorityMedium},
			{Title: "Confirm room and capacity", Category: "logistics", Priority: types.PriorityMedium},
		},
	},
	"meetup": {
		ID:             "meetup",
		Name:           "Meetup",
		Channels:       []string{"talks"},
		TaskCategories: []string{"logistics", "talks", "food"},
		StarterTasks: []starterTask{
			{Title: "Line up speakers", Category: "talks", Priority: types.PriorityHigh},
			{Title: "Order food and drinks", Category: "food", Priority: types.PriorityLow},
		},
	},
}

// ListTemplates returns the builtin templates in a stable order.
func ListTemplates() []WorkspaceTemplate {
	return []WorkspaceTemplate{
		builtinTemplates["conference"],
		builtinTemplates["workshop"],
		builtinTemplates["meetup"],
	}
}

// ApplyTemplate layers a builtin template onto an ACTIVE workspace: channels
// are created idempotently, categories merged, starter tasks added once.
func (s *workspaceService) ApplyTemplate(ctx context.Context, workspaceID, actorUserID, templateID string) (*repository.Workspace, error) {
	template, ok := builtinTemplates[templateID]
	if !ok {
		return nil, ErrInvalidInput
	}

	if _, err := s.permissions.RequireCapability(ctx, workspaceID, actorUserID, types.CapManageWorkspace); err != nil {
		return nil, err
	}

	s.locks.Lock(workspaceID)
	defer s.locks.Unlock(workspaceID)

	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrNotFound
	}
	if workspace.Status != types.WorkspaceActive {
		return nil, ErrInvalidState
	}

	for _, name := range template.Channels {
		channel := &repository.WorkspaceChannel{
			WorkspaceID: workspaceID,
			Name:        name,
			IsDefault:   false,
		}
		if err := s.channelRepo.Create(ctx, channel); err != nil {
			return nil, fmt.Errorf("failed to create channel %q: %w", name, err)
		}
	}

	workspace.TemplateID = &template.ID
	workspace.Settings.TaskCategories = mergeUnique(workspace.Settings.TaskCategories, template.TaskCategories)
	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}
	s.invalidateCache(ctx, workspaceID)

	existing, err := s.taskRepo.FindByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	titles := make(map[string]bool, len(existing))
	for _, t := range existing {
		titles[t.Title] = true
	}

	for _, st := range template.StarterTasks {
		if titles[st.Title] {
			continue
		}
		task := &repository.WorkspaceTask{
			WorkspaceID: workspaceID,
			Title:       st.Title,
			Category:    &st.Category,
			Status:      types.TaskTodo,
			Priority:    st.Priority,
		}
		if err := s.taskRepo.Create(ctx, task); err != nil {
			return nil, fmt.Errorf("failed to create task %q: %w", st.Title, err)
		}
	}

	log.Printf("[Workspace] Applied template %s to workspace %s", templateID, workspaceID)
	return workspace, nil
}

func mergeUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	merged := make([]string, 0, len(base)+len(extra))
	for _, v := range base {
		if !seen[v] {
			seen[v] = true
			merged = append(merged, v)
		}
	}
	for _, v := range extra {
		if !seen[v] {
			seen[v] = true
			merged = append(merged, v)
		}
	}
	return merged
}
