package ports

import (
	"context"

	"github.com/teamboard/project-system/internal/core/domain"
)

// TaskFilter carries the query parameters for listing tasks. Each non-zero
// field is an independent predicate; they are combined with AND semantics.
type TaskFilter struct {
	ProjectID  string
	AssigneeID string
	Status     domain.TaskStatus
	Page       int
	Limit      int
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// Update replaces the stored document; last write wins.
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	// List returns a page of tasks matching filter, newest first, and the
	// total count.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, int64, error)
	// ListAssigned returns the tasks in a project assigned to a user,
	// optionally restricted to one status, ordered by status then due date.
	ListAssigned(ctx context.Context, projectID, userID string, status domain.TaskStatus) ([]domain.Task, error)
	// ListByProjectIDs returns every task of the given projects keyed by
	// project id. Projects without tasks are absent from the map.
	ListByProjectIDs(ctx context.Context, projectIDs []string) (map[string][]domain.Task, error)
	// DistinctProjectIDs returns the ids of projects having at least one task
	// matching the assignee and/or status predicates.
	DistinctProjectIDs(ctx context.Context, assigneeID string, status domain.TaskStatus) ([]string, error)
	// CountAssigned counts the tasks in a project assigned to a user.
	CountAssigned(ctx context.Context, projectID, userID string) (int64, error)
}
