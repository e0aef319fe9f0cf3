package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

type recordingService struct {
	mu      sync.Mutex
	entries []ports.ActivityInput
	done    chan struct{}
	want    int
}

func newRecordingService(want int) *recordingService {
	return &recordingService{done: make(chan struct{}), want: want}
}

func (s *recordingService) Record(ctx context.Context, in ports.ActivityInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, in)
	if len(s.entries) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingService) ProjectFeed(ctx context.Context, projectID string, limit int) ([]domain.Activity, error) {
	return nil, nil
}

func (s *recordingService) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for entries to be recorded")
	}
}

func TestDispatcher_RecordsEnqueuedEntries(t *testing.T) {
	svc := newRecordingService(3)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.ActivityInput{ProjectID: "p1", ActorID: "u1", Type: domain.ActivityTaskCreated})
	d.Enqueue(ports.ActivityInput{ProjectID: "p2", ActorID: "u1", Type: domain.ActivityCommentAdded})
	d.Enqueue(ports.ActivityInput{ProjectID: "p1", ActorID: "u2", Type: domain.ActivityTaskDeleted})

	svc.wait(t)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for _, e := range svc.entries {
		if e.OccurredAt.IsZero() {
			t.Fatalf("expected OccurredAt to be set: %+v", e)
		}
	}
}

func TestDispatcher_PerProjectOrdering(t *testing.T) {
	const n = 50
	svc := newRecordingService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	base := time.Now().UTC()
	for i := 0; i < n; i++ {
		d.Enqueue(ports.ActivityInput{
			ProjectID:  "p1",
			ActorID:    "u1",
			Type:       domain.ActivityTaskUpdated,
			OccurredAt: base.Add(time.Duration(i) * time.Millisecond),
		})
	}

	svc.wait(t)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i := 1; i < len(svc.entries); i++ {
		if svc.entries[i].OccurredAt.Before(svc.entries[i-1].OccurredAt) {
			t.Fatalf("entries for one project arrived out of order at index %d", i)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, newRecordingService(0), zerolog.Nop())
	first := d.shardIndex("p1")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("p1"); got != first {
			t.Fatalf("shard index changed: %d != %d", got, first)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
