package ports

import (
	"context"

	"github.com/teamboard/project-system/internal/core/domain"
)

// ActivityRepository persists activity entries to the audit collection.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	// ListByProject returns the most recent entries for a project, newest
	// first, capped at limit.
	ListByProject(ctx context.Context, projectID string, limit int) ([]domain.Activity, error)
}
