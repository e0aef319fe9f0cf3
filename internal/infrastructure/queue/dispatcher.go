package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamboard/project-system/internal/api/metrics"
	"github.com/teamboard/project-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes activity entries to a fixed set of workers using
// consistent hashing on the project id, guaranteeing per-project feed
// ordering. Recording is fire-and-forget: request handlers enqueue and
// return without waiting for persistence.
type Dispatcher struct {
	workers []chan ports.ActivityInput
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an entry to the worker responsible for its project. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(entry ports.ActivityInput) {
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}
	idx := d.shardIndex(entry.ProjectID)
	d.workers[idx] <- entry
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a project id deterministically to a worker index.
func (d *Dispatcher) shardIndex(projectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(projectID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			if err := d.service.Record(ctx, entry); err != nil {
				metrics.ActivitiesErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("project_id", entry.ProjectID).
					Str("type", string(entry.Type)).
					Int("worker_id", id).
					Msg("activity recording failed")
			} else {
				metrics.ActivitiesRecordedTotal.WithLabelValues(string(entry.Type)).Inc()
			}
			metrics.ActivityRecordingDuration.Observe(time.Since(start).Seconds())
			metrics.ActivityQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}
