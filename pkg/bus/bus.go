// Package bus is the in-process event backbone of the pipeline. Agents
// subscribe to one topic and publish to another; the bus runs handlers on a
// fixed worker pool while keeping events for the same job strictly in publish
// order.
package bus

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Event is one published pipeline event. Immutable once published.
type Event struct {
	Topic     Topic
	JobID     string
	Payload   any
	Timestamp time.Time
}

// Handler processes one event. Handlers must not panic; a panic is recovered,
// logged, and reported through the panic hook, and does not affect other
// subscribers.
type Handler func(ctx context.Context, evt Event)

// PanicHook is invoked when a handler panics, after logging. The pipeline
// uses it to convert handler crashes into video.failed events.
type PanicHook func(evt Event, recovered any)

type subscriber struct {
	name string
	fn   Handler
}

// jobQueue holds pending events for one job. draining is true while a worker
// is delivering this job's events; at most one worker drains a job at a time,
// which is what serializes per-job delivery.
type jobQueue struct {
	events   []Event
	draining bool
}

// Bus is the in-process topic router.
type Bus struct {
	tasks    chan func()
	workerWG sync.WaitGroup
	stopOnce sync.Once
	stopped  chan struct{}
	started  bool

	mu         sync.RWMutex
	subs       map[Topic][]subscriber
	publishers map[Topic]string
	jobs       map[string]*jobQueue

	panicHook PanicHook

	workerCount int
	ctx         context.Context
}

// New creates a bus with the given worker pool size (0 means NumCPU) and
// task queue capacity.
func New(workerCount, queueCapacity int) *Bus {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	if queueCapacity <= 0 {
		queueCapacity = 256
	}
	return &Bus{
		tasks:       make(chan func(), queueCapacity),
		stopped:     make(chan struct{}),
		subs:        make(map[Topic][]subscriber),
		publishers:  make(map[Topic]string),
		jobs:        make(map[string]*jobQueue),
		workerCount: workerCount,
	}
}

// SetPanicHook installs the handler-panic callback. Must be called before
// Start.
func (b *Bus) SetPanicHook(hook PanicHook) {
	b.panicHook = hook
}

// Start spawns the worker pool. Handlers run with the given context; when it
// is cancelled in-flight provider and process I/O aborts.
func (b *Bus) Start(ctx context.Context) {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		slog.Warn("Event bus already started, ignoring duplicate Start call")
		return
	}
	b.started = true
	b.ctx = ctx
	b.mu.Unlock()

	slog.Info("Starting event bus", "workers", b.workerCount)
	for i := 0; i < b.workerCount; i++ {
		b.workerWG.Add(1)
		go b.runWorker()
	}
}

// Stop drains the worker pool. Pending tasks are finished; new publishes
// after Stop are dropped with a warning. Safe to call multiple times.
func (b *Bus) Stop() {
	// The task channel is never closed; stopped is the only shutdown signal,
	// so a publisher racing Stop can never send on a closed channel.
	b.stopOnce.Do(func() {
		close(b.stopped)
	})
	b.workerWG.Wait()
	slog.Info("Event bus stopped")
}

// RegisterPublisher declares that agentName is the sole publisher of topic.
// A second registration for the same topic is a wiring bug and fails.
func (b *Bus) RegisterPublisher(topic Topic, agentName string) error {
	if !allTopics[topic] {
		return fmt.Errorf("unknown topic %q", topic)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if existing, ok := b.publishers[topic]; ok {
		return fmt.Errorf("topic %s already has publisher %s (attempted: %s)", topic, existing, agentName)
	}
	b.publishers[topic] = agentName
	return nil
}

// Subscribe registers a handler for a topic. The name is used in logs.
func (b *Bus) Subscribe(topic Topic, name string, fn Handler) error {
	if !allTopics[topic] {
		return fmt.Errorf("unknown topic %q", topic)
	}
	if fn == nil {
		return fmt.Errorf("nil handler for topic %s", topic)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], subscriber{name: name, fn: fn})
	return nil
}

// Publish enqueues an event for delivery. It returns once delivery has been
// scheduled; handlers run concurrently on the worker pool, serialized per
// job ID.
func (b *Bus) Publish(topic Topic, jobID string, payload any) error {
	if !allTopics[topic] {
		return fmt.Errorf("unknown topic %q", topic)
	}
	if jobID == "" {
		return fmt.Errorf("publish to %s without job ID", topic)
	}

	select {
	case <-b.stopped:
		slog.Warn("Publish after bus stop, dropping event", "topic", topic, "job_id", jobID)
		return fmt.Errorf("bus stopped")
	default:
	}

	evt := Event{Topic: topic, JobID: jobID, Payload: payload, Timestamp: time.Now()}

	b.mu.Lock()
	q, ok := b.jobs[jobID]
	if !ok {
		q = &jobQueue{}
		b.jobs[jobID] = q
	}
	q.events = append(q.events, evt)
	schedule := !q.draining
	if schedule {
		q.draining = true
	}
	b.mu.Unlock()

	if schedule {
		// One drain task per job at a time. The drain task republishes
		// nothing itself, so a full task queue cannot deadlock handlers
		// that publish their next stage.
		select {
		case b.tasks <- func() { b.drainJob(jobID) }:
		case <-b.stopped:
			slog.Warn("Publish raced bus stop, dropping event", "topic", topic, "job_id", jobID)
			return fmt.Errorf("bus stopped")
		}
	}
	return nil
}

// QueueDepth returns the number of jobs with undelivered events. Health
// endpoint diagnostics only.
func (b *Bus) QueueDepth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	depth := 0
	for _, q := range b.jobs {
		if len(q.events) > 0 || q.draining {
			depth++
		}
	}
	return depth
}

// runWorker executes drain tasks until Stop. Tasks already queued when the
// stop signal arrives are finished first; handlers see the cancelled context
// and abort their own I/O.
func (b *Bus) runWorker() {
	defer b.workerWG.Done()
	for {
		select {
		case task := <-b.tasks:
			task()
		case <-b.stopped:
			for {
				select {
				case task := <-b.tasks:
					task()
				default:
					return
				}
			}
		}
	}
}

// drainJob delivers this job's pending events in order, one event to every
// subscriber, then clears the draining flag. Events published while draining
// are picked up in the same loop.
func (b *Bus) drainJob(jobID string) {
	for {
		b.mu.Lock()
		q := b.jobs[jobID]
		if q == nil || len(q.events) == 0 {
			if q != nil {
				q.draining = false
				if len(q.events) == 0 {
					delete(b.jobs, jobID)
				}
			}
			b.mu.Unlock()
			return
		}
		evt := q.events[0]
		q.events = q.events[1:]
		subs := append([]subscriber{}, b.subs[evt.Topic]...)
		ctx := b.ctx
		b.mu.Unlock()

		for _, sub := range subs {
			b.deliver(ctx, sub, evt)
		}
	}
}

// deliver invokes one handler with a panic guard.
func (b *Bus) deliver(ctx context.Context, sub subscriber, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked",
				"subscriber", sub.name,
				"topic", evt.Topic,
				"job_id", evt.JobID,
				"panic", r)
			if b.panicHook != nil {
				b.panicHook(evt, r)
			}
		}
	}()
	sub.fn(ctx, evt)
}
