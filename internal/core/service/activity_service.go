package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

const defaultFeedLimit = 50

// ActivityService persists activity entries and serves the per-project feed.
type ActivityService struct {
	activities ports.ActivityRepository
	projects   ports.ProjectRepository
	logger     zerolog.Logger
}

func NewActivityService(activities ports.ActivityRepository, projects ports.ProjectRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{activities: activities, projects: projects, logger: logger}
}

// Record persists a single activity entry. Entries arrive through the
// sharded dispatcher, so per-project ordering is already guaranteed.
func (s *ActivityService) Record(ctx context.Context, in ports.ActivityInput) error {
	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	entry := &domain.Activity{
		ProjectID:  in.ProjectID,
		TaskID:     in.TaskID,
		ActorID:    in.ActorID,
		Type:       in.Type,
		Detail:     in.Detail,
		OccurredAt: occurred,
	}
	if err := s.activities.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// ProjectFeed returns the most recent activity entries for a project, newest
// first. The project must exist.
func (s *ActivityService) ProjectFeed(ctx context.Context, projectID string, limit int) ([]domain.Activity, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = defaultFeedLimit
	}
	return s.activities.ListByProject(ctx, projectID, limit)
}
