package ports

import (
	"context"
	"time"

	"github.com/teamboard/project-system/internal/core/domain"
)

// ActivityInput is the DTO handed from the transport layer to the activity
// dispatcher and on to ActivityService.
type ActivityInput struct {
	ProjectID  string
	TaskID     string
	ActorID    string
	Type       domain.ActivityType
	Detail     string
	OccurredAt time.Time
}

// ActivityRecorder accepts activity entries for asynchronous persistence.
// Implemented by the queue dispatcher; enqueueing never blocks the mutation
// that produced the entry.
type ActivityRecorder interface {
	Enqueue(in ActivityInput)
}

// ActivityService records activity entries and serves the per-project feed.
type ActivityService interface {
	// Record persists a single activity entry.
	Record(ctx context.Context, in ActivityInput) error
	// ProjectFeed returns the most recent entries for a project. The project
	// must exist.
	ProjectFeed(ctx context.Context, projectID string, limit int) ([]domain.Activity, error)
}
