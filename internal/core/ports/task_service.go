package ports

import (
	"context"
	"time"
)

// CreateTaskInput carries all data needed to create a task inside a project.
type CreateTaskInput struct {
	ProjectID    string
	Title        string
	Description  string
	Status       string // empty defaults to TODO
	Priority     int    // 0 defaults to 2
	DueDate      *time.Time
	ParentTaskID string
	AssigneeIDs  []string
}

// UpdateTaskInput carries a partial task update. nil fields are unchanged;
// a non-nil AssigneeIDs fully replaces the assignee set.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *int
	DueDate     *time.Time
	AssigneeIDs []string
}

// ListTasksInput carries the parameters of the cross-project task listing.
type ListTasksInput struct {
	Page       int
	Limit      int
	Status     string
	ProjectID  string
	AssigneeID string
}

// TaskPage is a page of task views plus pagination meta.
type TaskPage struct {
	Data []TaskView `json:"data"`
	Meta PageMeta   `json:"meta"`
}

// TaskService defines the task lifecycle and query use cases.
type TaskService interface {
	// Create creates a task. The project must exist, every assignee must be
	// a project member, and a parent task must belong to the same project.
	Create(ctx context.Context, creatorID string, in CreateTaskInput) (*TaskView, error)
	// Update applies a partial update; the task must exist. No ownership
	// restriction beyond existence.
	Update(ctx context.Context, userID, taskID string, in UpdateTaskInput) (*TaskView, error)
	// Delete removes the task and its comments; the task must exist.
	Delete(ctx context.Context, userID, taskID string) error
	// ListByProject returns a page of the project's tasks, newest first.
	ListByProject(ctx context.Context, projectID string, page, limit int) (*TaskPage, error)
	// List returns a page of tasks matching the conjunctive filters.
	List(ctx context.Context, in ListTasksInput) (*TaskPage, error)
	// MyProjectTasks returns the caller's assigned tasks in a project. The
	// caller must be a member of the project.
	MyProjectTasks(ctx context.Context, userID, projectID, status string) ([]TaskView, error)
}
