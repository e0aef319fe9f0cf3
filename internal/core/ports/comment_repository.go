package ports

import (
	"context"

	"github.com/teamboard/project-system/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, id string) error
	// ListByTask returns the task's comments, newest first.
	ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error)
	// ListByTaskIDs returns the comments of the given tasks keyed by task id,
	// each list newest first.
	ListByTaskIDs(ctx context.Context, taskIDs []string) (map[string][]domain.Comment, error)
	// DeleteByTask removes every comment on a task (used when a task is
	// deleted on its own).
	DeleteByTask(ctx context.Context, taskID string) error
}
