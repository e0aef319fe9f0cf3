package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

type taskFixture struct {
	users    *stubUserRepo
	projects *stubProjectRepo
	tasks    *stubTaskRepo
	comments *stubCommentRepo
	recorder *recorderStub
	svc      *TaskService
}

func newTaskFixture() *taskFixture {
	users := &stubUserRepo{}
	tasks := &stubTaskRepo{}
	comments := &stubCommentRepo{}
	projects := &stubProjectRepo{tasks: tasks, comments: comments}
	recorder := &recorderStub{}

	return &taskFixture{
		users:    users,
		projects: projects,
		tasks:    tasks,
		comments: comments,
		recorder: recorder,
		svc:      NewTaskService(tasks, projects, comments, users, recorder, discardLogger),
	}
}

func (f *taskFixture) seedProject(memberIDs ...string) domain.Project {
	for _, id := range memberIDs {
		if _, err := f.users.FindByID(context.Background(), id); err != nil {
			f.users.add(domain.User{ID: id, Email: id + "@example.com", Role: domain.RoleUser})
		}
	}
	return f.projects.add(domain.Project{Name: "Forest Watch", Code: "FW-20260101", MemberIDs: memberIDs})
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTaskService_Create_Defaults(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice")

	view, err := f.svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title:     "Survey the north ridge",
		ProjectID: p.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Status != domain.TaskTodo {
		t.Errorf("default status = %q, want TODO", view.Status)
	}
	if view.Priority != domain.PriorityDefault {
		t.Errorf("default priority = %d, want %d", view.Priority, domain.PriorityDefault)
	}
	if view.Project == nil || view.Project.Code != p.Code {
		t.Error("view must embed the project reference")
	}
	if view.CreatedBy == nil || view.CreatedBy.ID != "alice" {
		t.Error("view must resolve the creator")
	}
	if len(f.recorder.entries) != 1 || f.recorder.entries[0].Type != domain.ActivityTaskCreated {
		t.Errorf("a task_created activity must be enqueued, got %+v", f.recorder.entries)
	}
}

func TestTaskService_Create_ProjectMustExist(t *testing.T) {
	f := newTaskFixture()

	_, err := f.svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title:     "t",
		ProjectID: "nope",
	})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestTaskService_Create_AssigneesMustBeMembers(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice")

	_, err := f.svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title:       "t",
		ProjectID:   p.ID,
		AssigneeIDs: []string{"alice", "outsider"},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "outsider") {
		t.Errorf("error must name the offending ids: %v", err)
	}
	if len(f.tasks.tasks) != 0 {
		t.Error("no task must be created when an assignee is not a member")
	}
}

func TestTaskService_Create_ParentMustBelongToSameProject(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice")
	other := f.seedProject("alice")
	foreign := f.tasks.add(domain.Task{Title: "foreign", ProjectID: other.ID})

	_, err := f.svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title:        "t",
		ProjectID:    p.ID,
		ParentTaskID: foreign.ID,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("cross-project parent: expected ErrInvalidInput, got %v", err)
	}

	_, err = f.svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title:        "t",
		ProjectID:    p.ID,
		ParentTaskID: "ghost",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing parent: expected ErrInvalidInput, got %v", err)
	}
}

func TestTaskService_Create_InvalidStatusAndPriority(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice")

	_, err := f.svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title: "t", ProjectID: p.ID, Status: "BLOCKED",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad status: expected ErrInvalidInput, got %v", err)
	}

	_, err = f.svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title: "t", ProjectID: p.ID, Priority: 4,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("priority 4: expected ErrInvalidInput, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestTaskService_Update_PartialAndLastWriteWins(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice")
	task := f.tasks.add(domain.Task{Title: "old", Description: "keep", ProjectID: p.ID, Status: domain.TaskTodo, Priority: 2})

	title := "new title"
	status := "IN_PROGRESS"
	view, err := f.svc.Update(context.Background(), "alice", task.ID, ports.UpdateTaskInput{
		Title:  &title,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Title != "new title" || view.Status != domain.TaskInProgress {
		t.Errorf("update not applied: %+v", view)
	}
	if view.Description != "keep" {
		t.Error("fields not in the input must be left untouched")
	}
}

func TestTaskService_Update_AssigneeReplacementRevalidatesMembership(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice", "bob")
	task := f.tasks.add(domain.Task{Title: "t", ProjectID: p.ID, AssigneeIDs: []string{"alice"}})

	_, err := f.svc.Update(context.Background(), "alice", task.ID, ports.UpdateTaskInput{
		AssigneeIDs: []string{"stranger"},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	view, err := f.svc.Update(context.Background(), "alice", task.ID, ports.UpdateTaskInput{
		AssigneeIDs: []string{"bob"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Assignees) != 1 || view.Assignees[0].ID != "bob" {
		t.Fatalf("assignee set must be fully replaced, got %+v", view.Assignees)
	}
}

func TestTaskService_Update_NotFound(t *testing.T) {
	f := newTaskFixture()

	_, err := f.svc.Update(context.Background(), "alice", "nope", ports.UpdateTaskInput{})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestTaskService_Delete_RemovesComments(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice")
	task := f.tasks.add(domain.Task{Title: "t", ProjectID: p.ID})
	f.comments.add(domain.Comment{TaskID: task.ID, UserID: "alice", Content: "c"})
	keep := f.comments.add(domain.Comment{TaskID: "other-task", UserID: "alice", Content: "c"})

	if err := f.svc.Delete(context.Background(), "alice", task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.tasks.tasks) != 0 {
		t.Error("task must be deleted")
	}
	if len(f.comments.comments) != 1 || f.comments.comments[0].ID != keep.ID {
		t.Error("only the task's comments must be deleted")
	}
	if len(f.recorder.entries) != 1 || f.recorder.entries[0].Type != domain.ActivityTaskDeleted {
		t.Errorf("a task_deleted activity must be enqueued, got %+v", f.recorder.entries)
	}
}

func TestTaskService_Delete_NotFound(t *testing.T) {
	f := newTaskFixture()

	if err := f.svc.Delete(context.Background(), "alice", "nope"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func TestTaskService_List_ConjunctiveFilters(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice", "bob")
	f.tasks.add(domain.Task{Title: "match", ProjectID: p.ID, Status: domain.TaskTodo, AssigneeIDs: []string{"bob"}})
	f.tasks.add(domain.Task{Title: "wrong status", ProjectID: p.ID, Status: domain.TaskDone, AssigneeIDs: []string{"bob"}})
	f.tasks.add(domain.Task{Title: "wrong assignee", ProjectID: p.ID, Status: domain.TaskTodo, AssigneeIDs: []string{"alice"}})

	page, err := f.svc.List(context.Background(), ports.ListTasksInput{
		ProjectID:  p.ID,
		AssigneeID: "bob",
		Status:     "TODO",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].Title != "match" {
		t.Fatalf("filters must combine with AND, got %+v", page.Data)
	}
}

func TestTaskService_List_InvalidStatus(t *testing.T) {
	f := newTaskFixture()

	_, err := f.svc.List(context.Background(), ports.ListTasksInput{Status: "URGENT"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTaskService_ListByProject_Pagination(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice")
	for i := 0; i < 5; i++ {
		f.tasks.add(domain.Task{Title: "t", ProjectID: p.ID})
	}

	page, err := f.svc.ListByProject(context.Background(), p.ID, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Meta.Total != 5 || page.Meta.TotalPages != 3 || len(page.Data) != 2 {
		t.Errorf("pagination wrong: meta=%+v data=%d", page.Meta, len(page.Data))
	}
}

func TestTaskService_MyProjectTasks_RequiresMembership(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice")

	_, err := f.svc.MyProjectTasks(context.Background(), "outsider", p.ID, "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_MyProjectTasks_OnlyAssignedToCaller(t *testing.T) {
	f := newTaskFixture()
	p := f.seedProject("alice", "bob")
	due := time.Now().Add(24 * time.Hour)
	f.tasks.add(domain.Task{Title: "mine", ProjectID: p.ID, Status: domain.TaskTodo, AssigneeIDs: []string{"bob"}, DueDate: &due})
	f.tasks.add(domain.Task{Title: "not mine", ProjectID: p.ID, Status: domain.TaskTodo, AssigneeIDs: []string{"alice"}})

	views, err := f.svc.MyProjectTasks(context.Background(), "bob", p.ID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].Title != "mine" {
		t.Fatalf("only the caller's assigned tasks must be returned, got %+v", views)
	}
}
