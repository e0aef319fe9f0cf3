package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

type stubActivityRepo struct {
	entries []domain.Activity
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	entry := *a
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("a%d", len(r.entries)+1)
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubActivityRepo) ListByProject(_ context.Context, projectID string, limit int) ([]domain.Activity, error) {
	var out []domain.Activity
	for _, e := range r.entries {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newActivityFixture() (*stubActivityRepo, *stubProjectRepo, *ActivityService) {
	activities := &stubActivityRepo{}
	projects := &stubProjectRepo{}
	return activities, projects, NewActivityService(activities, projects, discardLogger)
}

func TestActivityService_Record_DefaultsOccurredAt(t *testing.T) {
	activities, _, svc := newActivityFixture()

	err := svc.Record(context.Background(), ports.ActivityInput{
		ProjectID: "p1",
		TaskID:    "t1",
		ActorID:   "alice",
		Type:      domain.ActivityTaskCreated,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(activities.entries) != 1 {
		t.Fatal("entry must be persisted")
	}
	if activities.entries[0].OccurredAt.IsZero() {
		t.Error("a zero OccurredAt must be defaulted to now")
	}
}

func TestActivityService_ProjectFeed_NewestFirstCapped(t *testing.T) {
	activities, projects, svc := newActivityFixture()
	p := projects.add(domain.Project{Name: "Forest Watch"})
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		activities.entries = append(activities.entries, domain.Activity{
			ProjectID:  p.ID,
			Type:       domain.ActivityTaskUpdated,
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	feed, err := svc.ProjectFeed(context.Background(), p.ID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("feed must honor the limit, got %d entries", len(feed))
	}
	if !feed[0].OccurredAt.After(feed[1].OccurredAt) {
		t.Error("feed must be newest first")
	}
}

func TestActivityService_ProjectFeed_ProjectMustExist(t *testing.T) {
	_, _, svc := newActivityFixture()

	_, err := svc.ProjectFeed(context.Background(), "nope", 10)
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestActivityService_ProjectFeed_LimitDefaulted(t *testing.T) {
	activities, projects, svc := newActivityFixture()
	p := projects.add(domain.Project{Name: "Forest Watch"})
	for i := 0; i < 60; i++ {
		activities.entries = append(activities.entries, domain.Activity{
			ProjectID:  p.ID,
			OccurredAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		})
	}

	feed, err := svc.ProjectFeed(context.Background(), p.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed) != defaultFeedLimit {
		t.Errorf("zero limit must fall back to the default, got %d", len(feed))
	}
}
