package service_test

import (
	"context"
	"time"

	"github.com/gatherhub/gatherhub-backend/internal/models"
	"github.com/gatherhub/gatherhub-backend/internal/notification"
	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/service"
	"github.com/gatherhub/gatherhub-backend/internal/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("WorkspaceService", func() {
	var (
		env *testEnv
		ctx context.Context
	)

	BeforeEach(func() {
		env = newTestEnv()
		ctx = context.Background()
		env.putEvent("event-1", "organizer", types.EventPublished,
			time.Now().AddDate(0, 0, 5), time.Now().AddDate(0, 0, 7))
	})

	Describe("Provision", func() {
		It("creates an ACTIVE workspace with owner membership and default channels", func() {
			workspace := env.provision("event-1", "organizer")

			Expect(workspace.Status).To(Equal(types.WorkspaceActive))
			Expect(workspace.Settings.RetentionPeriodDays).To(Equal(30))
			Expect(workspace.Settings.AutoInviteOrganizer).To(BeTrue())

			members, _ := env.memberRepo.FindByWorkspace(ctx, workspace.ID)
			Expect(members).To(HaveLen(1))
			Expect(members[0].UserID).To(Equal("organizer"))
			Expect(members[0].Role).To(Equal(types.RoleWorkspaceOwner))
			Expect(members[0].Permissions).To(ContainElement(types.CapManageWorkspace))

			channels, _ := env.channelRepo.FindByWorkspace(ctx, workspace.ID)
			names := make([]string, 0, len(channels))
			for _, ch := range channels {
				names = append(names, ch.Name)
			}
			Expect(names).To(ConsistOf("general", "announcements", "tasks"))
		})

		It("rejects provisioning by anyone but the organizer", func() {
			_, err := env.workspaceSvc.Provision(ctx, "event-1", "intruder")
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("rejects provisioning for an unknown event", func() {
			_, err := env.workspaceSvc.Provision(ctx, "missing", "organizer")
			Expect(err).To(MatchError(service.ErrNotFound))
		})

		It("rejects a second workspace for the same event", func() {
			env.provision("event-1", "organizer")
			_, err := env.workspaceSvc.Provision(ctx, "event-1", "organizer")
			Expect(err).To(MatchError(service.ErrConflict))
		})
	})

	Describe("UpdateSettings", func() {
		var workspace *repository.Workspace

		BeforeEach(func() {
			workspace = env.provision("event-1", "organizer")
		})

		It("applies a partial settings patch", func() {
			retention := 14
			allow := true
			updated, err := env.workspaceSvc.UpdateSettings(ctx, workspace.ID, "organizer", &models.UpdateWorkspaceRequest{
				Settings: &models.WorkspaceSettingsPatch{
					RetentionPeriodDays:  &retention,
					AllowExternalMembers: &allow,
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Settings.RetentionPeriodDays).To(Equal(14))
			Expect(updated.Settings.AllowExternalMembers).To(BeTrue())
			Expect(updated.Settings.AutoInviteOrganizer).To(BeTrue(), "unpatched fields keep their value")
		})

		It("rejects a negative retention period", func() {
			retention := -1
			_, err := env.workspaceSvc.UpdateSettings(ctx, workspace.ID, "organizer", &models.UpdateWorkspaceRequest{
				Settings: &models.WorkspaceSettingsPatch{RetentionPeriodDays: &retention},
			})
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		It("requires the MANAGE_WORKSPACE capability", func() {
			env.addMember(workspace.ID, "viewer", types.RoleViewer)
			name := "New Name"
			_, err := env.workspaceSvc.UpdateSettings(ctx, workspace.ID, "viewer", &models.UpdateWorkspaceRequest{Name: &name})
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("Dissolve", func() {
		It("rejects manual dissolution while the event is still upcoming", func() {
			workspace := env.provision("event-1", "organizer")
			err := env.workspaceSvc.Dissolve(ctx, workspace.ID, "organizer")
			Expect(err).To(MatchError(service.ErrInvalidState))
		})

		It("dissolves after the event has ended and stamps the MANUAL reason", func() {
			env.putEvent("event-2", "organizer", types.EventCompleted,
				time.Now().AddDate(0, 0, -3), time.Now().AddDate(0, 0, -1))
			workspace := env.provision("event-2", "organizer")

			Expect(env.workspaceSvc.Dissolve(ctx, workspace.ID, "organizer")).To(Succeed())

			stored, _ := env.workspaceRepo.FindByID(ctx, workspace.ID)
			Expect(stored.Status).To(Equal(types.WorkspaceDissolved))
			Expect(stored.DissolvedAt).NotTo(BeNil())
			Expect(stored.DissolutionReason).To(HaveValue(Equal(types.DissolutionManual)))
		})

		It("is idempotent on an already dissolved workspace", func() {
			env.putEvent("event-2", "organizer", types.EventCompleted,
				time.Now().AddDate(0, 0, -3), time.Now().AddDate(0, 0, -1))
			workspace := env.provision("event-2", "organizer")

			Expect(env.workspaceSvc.Dissolve(ctx, workspace.ID, "organizer")).To(Succeed())
			Expect(env.workspaceSvc.Dissolve(ctx, workspace.ID, "organizer")).To(Succeed())
		})

		It("sends a dissolution notice to every active member", func() {
			env.putEvent("event-2", "organizer", types.EventCompleted,
				time.Now().AddDate(0, 0, -3), time.Now().AddDate(0, 0, -1))
			workspace := env.provision("event-2", "organizer")
			env.addMember(workspace.ID, "user-2", types.RoleMember)

			Expect(env.workspaceSvc.Dissolve(ctx, workspace.ID, "organizer")).To(Succeed())

			notices := env.notifRepo.byType(notification.TypeWorkspaceDissolved)
			Expect(notices).To(HaveLen(2))
		})
	})

	Describe("InitiateWindDown", func() {
		It("moves an ACTIVE workspace to WINDING_DOWN", func() {
			workspace := env.provision("event-1", "organizer")
			Expect(env.workspaceSvc.InitiateWindDown(ctx, workspace.ID, "organizer")).To(Succeed())
			Expect(env.workspaceStatus(workspace.ID)).To(Equal(types.WorkspaceWindingDown))
		})

		It("rejects winding down twice", func() {
			workspace := env.provision("event-1", "organizer")
			Expect(env.workspaceSvc.InitiateWindDown(ctx, workspace.ID, "organizer")).To(Succeed())
			err := env.workspaceSvc.InitiateWindDown(ctx, workspace.ID, "organizer")
			Expect(err).To(MatchError(service.ErrInvalidState))
		})

		It("requires the MANAGE_WORKSPACE capability", func() {
			workspace := env.provision("event-1", "organizer")
			env.addMember(workspace.ID, "member", types.RoleMember)
			err := env.workspaceSvc.InitiateWindDown(ctx, workspace.ID, "member")
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("EmergencyRevoke", func() {
		It("dissolves regardless of event state and records the EMERGENCY reason", func() {
			workspace := env.provision("event-1", "organizer")
			env.addMember(workspace.ID, "user-2", types.RoleMember)

			Expect(env.workspaceSvc.EmergencyRevoke(ctx, workspace.ID, "organizer", "credential leak")).To(Succeed())

			stored, _ := env.workspaceRepo.FindByID(ctx, workspace.ID)
			Expect(stored.Status).To(Equal(types.WorkspaceDissolved))
			Expect(stored.DissolutionReason).To(HaveValue(Equal(types.DissolutionEmergency)))

			active, _ := env.memberRepo.FindActiveByWorkspace(ctx, workspace.ID)
			Expect(active).To(BeEmpty())
		})

		It("includes the reason in every revocation notice", func() {
			workspace := env.provision("event-1", "organizer")
			env.addMember(workspace.ID, "user-2", types.RoleMember)

			Expect(env.workspaceSvc.EmergencyRevoke(ctx, workspace.ID, "organizer", "credential leak")).To(Succeed())

			notices := env.notifRepo.byType(notification.TypeAccessRevoked)
			Expect(notices).To(HaveLen(2))
			for _, n := range notices {
				Expect(n.Data).To(HaveKeyWithValue("reason", "credential leak"))
			}
		})
	})

	Describe("HandleEarlyDeparture", func() {
		var (
			workspace *repository.Workspace
			departing *repository.TeamMember
			manager   *repository.TeamMember
		)

		BeforeEach(func() {
			workspace = env.provision("event-1", "organizer")
			manager, _ = env.memberRepo.FindByWorkspaceAndUser(ctx, workspace.ID, "organizer")
			departing = env.addMember(workspace.ID, "departing", types.RoleMember)
		})

		task := func(status string) *repository.WorkspaceTask {
			t := &repository.WorkspaceTask{
				WorkspaceID: workspace.ID,
				AssigneeID:  &departing.ID,
				Title:       "Task " + status,
				Status:      status,
				Priority:    types.PriorityMedium,
			}
			ExpectWithOffset(1, env.taskRepo.Create(ctx, t)).To(Succeed())
			return t
		}

		It("deactivates the member and reassigns open tasks with an annotation", func() {
			open1 := task(types.TaskTodo)
			open2 := task(types.TaskInProgress)
			open3 := task(types.TaskInReview)
			done := task(types.TaskCompleted)

			Expect(env.workspaceSvc.HandleEarlyDeparture(ctx, workspace.ID, "departing", "organizer")).To(Succeed())

			stored, _ := env.memberRepo.FindByID(ctx, departing.ID)
			Expect(stored.Status).To(Equal(types.MemberInactive))
			Expect(stored.LeftAt).NotTo(BeNil())

			for _, id := range []string{open1.ID, open2.ID, open3.ID} {
				t, _ := env.taskRepo.FindByID(ctx, id)
				Expect(t.AssigneeID).To(HaveValue(Equal(manager.ID)))
				Expect(t.Description).To(HaveValue(ContainSubstring("early departure")))
			}

			untouched, _ := env.taskRepo.FindByID(ctx, done.ID)
			Expect(untouched.AssigneeID).To(HaveValue(Equal(departing.ID)))
			Expect(untouched.Description).To(BeNil())
		})

		It("rejects a departure of an unknown or inactive member", func() {
			Expect(env.workspaceSvc.HandleEarlyDeparture(ctx, workspace.ID, "ghost", "organizer")).
				To(MatchError(service.ErrNotFound))

			Expect(env.workspaceSvc.HandleEarlyDeparture(ctx, workspace.ID, "departing", "organizer")).To(Succeed())
			Expect(env.workspaceSvc.HandleEarlyDeparture(ctx, workspace.ID, "departing", "organizer")).
				To(MatchError(service.ErrNotFound))
		})

		It("requires the MANAGE_TEAM capability", func() {
			env.addMember(workspace.ID, "peer", types.RoleMember)
			err := env.workspaceSvc.HandleEarlyDeparture(ctx, workspace.ID, "departing", "peer")
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("reports a manager without an active membership as not found", func() {
			Expect(env.workspaceSvc.HandleEarlyDeparture(ctx, workspace.ID, "departing", "stranger")).
				To(MatchError(service.ErrNotFound))

			gone := env.addMember(workspace.ID, "ex-manager", types.RoleCoordinator)
			now := time.Now()
			gone.Status = types.MemberInactive
			gone.LeftAt = &now
			Expect(env.memberRepo.Update(ctx, gone)).To(Succeed())

			Expect(env.workspaceSvc.HandleEarlyDeparture(ctx, workspace.ID, "departing", "ex-manager")).
				To(MatchError(service.ErrNotFound))
		})
	})

	Describe("ApplyTemplate", func() {
		It("adds template channels, categories and starter tasks", func() {
			workspace := env.provision("event-1", "organizer")

			updated, err := env.workspaceSvc.ApplyTemplate(ctx, workspace.ID, "organizer", "workshop")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.TemplateID).To(HaveValue(Equal("workshop")))
			Expect(updated.Settings.TaskCategories).To(ContainElements("curriculum", "materials"))

			channels, _ := env.channelRepo.FindByWorkspace(ctx, workspace.ID)
			Expect(len(channels)).To(Equal(4), "three defaults plus materials")

			tasks, _ := env.taskRepo.FindByWorkspace(ctx, workspace.ID)
			Expect(tasks).To(HaveLen(3))
		})

		It("does not duplicate starter tasks when applied twice", func() {
			workspace := env.provision("event-1", "organizer")
			_, err := env.workspaceSvc.ApplyTemplate(ctx, workspace.ID, "organizer", "meetup")
			Expect(err).NotTo(HaveOccurred())
			_, err = env.workspaceSvc.ApplyTemplate(ctx, workspace.ID, "organizer", "meetup")
			Expect(err).NotTo(HaveOccurred())

			tasks, _ := env.taskRepo.FindByWorkspace(ctx, workspace.ID)
			Expect(tasks).To(HaveLen(2))
		})

		It("rejects an unknown template id", func() {
			workspace := env.provision("event-1", "organizer")
			_, err := env.workspaceSvc.ApplyTemplate(ctx, workspace.ID, "organizer", "festival")
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})
	})

	Describe("CreateTask", func() {
		var workspace *repository.Workspace

		BeforeEach(func() {
			workspace = env.provision("event-1", "organizer")
		})

		It("creates a task with parsed estimated hours", func() {
			hours := "2.5"
			task, err := env.workspaceSvc.CreateTask(ctx, workspace.ID, "organizer", &models.CreateTaskRequest{
				Title:          "Book venue",
				EstimatedHours: &hours,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(task.Status).To(Equal(types.TaskTodo))
			Expect(task.EstimatedHours).NotTo(BeNil())
			Expect(task.EstimatedHours.String()).To(Equal("2.5"))
		})

		It("rejects malformed or negative estimated hours", func() {
			for _, bad := range []string{"abc", "-1"} {
				hours := bad
				_, err := env.workspaceSvc.CreateTask(ctx, workspace.ID, "organizer", &models.CreateTaskRequest{
					Title:          "Bad estimate",
					EstimatedHours: &hours,
				})
				Expect(err).To(MatchError(service.ErrInvalidInput))
			}
		})

		It("rejects assigning to a non-member", func() {
			assignee := "stranger"
			_, err := env.workspaceSvc.CreateTask(ctx, workspace.ID, "organizer", &models.CreateTaskRequest{
				Title:          "Orphan task",
				AssigneeUserID: &assignee,
			})
			Expect(err).To(MatchError(service.ErrNotFound))
		})

		It("rejects task creation outside ACTIVE", func() {
			Expect(env.workspaceSvc.ForceWindDown(ctx, workspace.ID)).To(Succeed())
			_, err := env.workspaceSvc.CreateTask(ctx, workspace.ID, "organizer", &models.CreateTaskRequest{Title: "Late task"})
			Expect(err).To(MatchError(service.ErrInvalidState))
		})
	})

	Describe("reads", func() {
		It("restricts workspace reads to members", func() {
			workspace := env.provision("event-1", "organizer")

			_, err := env.workspaceSvc.GetByID(ctx, workspace.ID, "stranger")
			Expect(err).To(MatchError(service.ErrForbidden))

			got, err := env.workspaceSvc.GetByID(ctx, workspace.ID, "organizer")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(workspace.ID))
		})

		It("keeps a dissolved workspace readable to former members", func() {
			workspace := env.provision("event-1", "organizer")
			Expect(env.workspaceSvc.ForceDissolve(ctx, workspace.ID, types.DissolutionManual)).To(Succeed())

			got, err := env.workspaceSvc.GetByID(ctx, workspace.ID, "organizer")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(types.WorkspaceDissolved))
		})

		It("finds the workspace by event id", func() {
			workspace := env.provision("event-1", "organizer")
			got, err := env.workspaceSvc.GetByEventID(ctx, "event-1", "organizer")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(workspace.ID))
		})
	})
})
