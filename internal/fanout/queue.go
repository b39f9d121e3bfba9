package fanout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/reloc/community-backend/internal/metrics"
)

// handleTimeout bounds a single event once it has been taken off the queue.
const handleTimeout = 10 * time.Second

type eventHandler interface {
	Handle(ctx context.Context, ev Event)
}

// Queue is a bounded in-process queue drained by a pool of workers.
type Queue struct {
	events  chan Event
	handler eventHandler
	logger  zerolog.Logger
}

func NewQueue(h eventHandler, size int, logger zerolog.Logger) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{events: make(chan Event, size), handler: h, logger: logger}
}

// Publish enqueues ev, or drops it when the queue is full.
func (q *Queue) Publish(ev Event) {
	select {
	case q.events <- ev:
	default:
		metrics.FanoutDropped.WithLabelValues(string(ev.Kind)).Inc()
		q.logger.Warn().
			Str("kind", string(ev.Kind)).
			Str("actor", ev.ActorID).
			Msg("fan-out queue full, event dropped")
	}
}

// Len reports the number of events waiting for a worker.
func (q *Queue) Len() int {
	return len(q.events)
}

// Run starts workerCount workers and blocks until ctx is cancelled and every
// worker has finished its current event. Events still queued at that point are discarded.
// An event already taken by a worker is handled under its own context, detached from
// ctx and bounded by handleTimeout, so shutdown does not abort its writes halfway.
func (q *Queue) Run(ctx context.Context, workerCount int) {
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			q.logger.Debug().Int("worker", id).Msg("fan-out worker started")

			for {
				select {
				case <-ctx.Done():
					q.logger.Debug().Int("worker", id).Msg("fan-out worker shutting down")
					return
				case ev := <-q.events:
					hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), handleTimeout)
					safeHandle(hctx, q.handler, ev, q.logger)
					cancel()
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	if n := len(q.events); n > 0 {
		q.logger.Warn().Int("pending", n).Msg("fan-out stopped with queued events")
	}
	q.logger.Info().Msg("fan-out stopped")
}

func safeHandle(ctx context.Context, h eventHandler, ev Event, logger zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			metrics.FanoutFailures.WithLabelValues(string(ev.Kind)).Inc()
			logger.Error().
				Err(fmt.Errorf("panic: %v", r)).
				Str("kind", string(ev.Kind)).
				Msg("notification fan-out failed")
		}
	}()
	h.Handle(ctx, ev)
}

// Inline runs the handler on the publishing goroutine. Used when no workers are configured.
type Inline struct {
	handler eventHandler
	logger  zerolog.Logger
}

func NewInline(h eventHandler, logger zerolog.Logger) *Inline {
	return &Inline{handler: h, logger: logger}
}

func (p *Inline) Publish(ev Event) {
	safeHandle(context.Background(), p.handler, ev, p.logger)
}
