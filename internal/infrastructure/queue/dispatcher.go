package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dashkit/admin-api/internal/api/metrics"
	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	processTimeout = 5 * time.Second
)

// Dispatcher routes activity entries to a fixed set of workers using
// consistent hashing on the actor id, preserving per-user ordering.
type Dispatcher struct {
	workers []chan domain.Activity
	service ports.ActivityService
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Close has been
// called and their channel is drained.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Record hands an activity to the worker responsible for its actor. It never
// blocks: when the worker's queue is full or the dispatcher is closed the entry
// is dropped and counted.
func (d *Dispatcher) Record(activity domain.Activity) {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.ActivitiesDroppedTotal.WithLabelValues("closed").Inc()
		return
	}

	idx := d.shardIndex(activity.UserID)
	select {
	case d.workers[idx] <- activity:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivitiesDroppedTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("user_id", activity.UserID).
			Str("action", string(activity.Action)).
			Int("worker_id", idx).
			Msg("activity queue full, dropping entry")
	}
}

// Close stops accepting entries and blocks until every queued entry has been
// processed or ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for activity := range ch {
		metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		err := d.service.Process(ctx, activity)
		cancel()
		metrics.ActivityProcessingDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.ActivitiesDroppedTotal.WithLabelValues("persist_failed").Inc()
			d.log.Error().Err(err).
				Str("user_id", activity.UserID).
				Str("action", string(activity.Action)).
				Int("worker_id", id).
				Msg("activity processing failed")
			continue
		}
		metrics.ActivitiesRecordedTotal.WithLabelValues(string(activity.Action)).Inc()
	}
}
