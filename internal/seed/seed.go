package seed

import (
	"context"
	"log"
	"time"

	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/service"
	"github.com/gatherhub/gatherhub-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// Run inserts demo data for local development. Re-running against a seeded
// database is a no-op.
func Run(ctx context.Context, repos *repository.Repositories, workspaceSvc service.WorkspaceService) error {
	existing, err := repos.UserRepo.FindByEmail(ctx, "demo@gatherhub.dev")
	if err != nil {
		return err
	}
	if existing != nil {
		log.Println("[Seed] Demo data already present, skipping")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	organizer := &repository.User{
		Email:    "demo@gatherhub.dev",
		Name:     "Demo Organizer",
		Password: string(hashed),
	}
	if err := repos.UserRepo.Create(ctx, organizer); err != nil {
		return err
	}

	description := "Annual community conference"
	event := &repository.Event{
		OrganizerID: organizer.ID,
		Title:       "GatherHub Conf",
		Description: &description,
		Status:      types.EventPublished,
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(0, 1, 2),
	}
	if err := repos.EventRepo.Create(ctx, event); err != nil {
		return err
	}

	workspace, err := workspaceSvc.Provision(ctx, event.ID, organizer.ID)
	if err != nil {
		return err
	}
	if _, err := workspaceSvc.ApplyTemplate(ctx, workspace.ID, organizer.ID, "conference"); err != nil {
		return err
	}

	log.Printf("[Seed] Created demo organizer %s with event %s", organizer.ID, event.ID)
	return nil
}
