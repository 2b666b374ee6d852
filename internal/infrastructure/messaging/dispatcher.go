// Package messaging implements event bus functionality.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// DISPATCHER
// ══════════════════════════════════════════════════════════════════════════════

// Dispatcher routes events to appropriate handlers with support for:
// - Middleware (logging, metrics, error handling)
// - Retry with exponential backoff
// - Concurrent processing
// - Dead letter queue for failed events
type Dispatcher struct {
	eventBus    shared.EventBus
	handlers    map[shared.EventType][]HandlerRegistration
	middlewares []Middleware
	retrier     *retry.Retrier
	deadLetterQ *DeadLetterQueue
	logger      *slog.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	workerPool  chan struct{}
}

// HandlerRegistration contains handler metadata.
type HandlerRegistration struct {
	Name    string
	Handler shared.EventHandler
	Async   bool
	Timeout time.Duration
}

// DispatcherConfig contains configuration for the Dispatcher.
type DispatcherConfig struct {
	// EventBus is the underlying event bus
	EventBus shared.EventBus

	// WorkerPoolSize is the number of concurrent workers
	WorkerPoolSize int

	// Retrier handles failed handler executions
	Retrier *retry.Retrier

	// EnableDeadLetterQueue enables DLQ for failed events
	EnableDeadLetterQueue bool

	// DeadLetterQueueSize is the max size of the DLQ
	DeadLetterQueueSize int

	// Logger for structured logging
	Logger *slog.Logger
}

// DefaultDispatcherConfig returns sensible defaults.
func DefaultDispatcherConfig(eventBus shared.EventBus) DispatcherConfig {
	return DispatcherConfig{
		EventBus:              eventBus,
		WorkerPoolSize:        10,
		Retrier:               retry.EventDispatchRetrier(),
		EnableDeadLetterQueue: true,
		DeadLetterQueueSize:   1000,
	}
}

// NewDispatcher creates a new event dispatcher.
func NewDispatcher(config DispatcherConfig) *Dispatcher {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 10
	}
	if config.Retrier == nil {
		config.Retrier = retry.EventDispatchRetrier()
	}

	ctx, cancel := context.WithCancel(context.Background())

	d := &Dispatcher{
		eventBus:    config.EventBus,
		handlers:    make(map[shared.EventType][]HandlerRegistration),
		middlewares: make([]Middleware, 0),
		retrier:     config.Retrier,
		logger:      config.Logger,
		ctx:         ctx,
		cancel:      cancel,
		workerPool:  make(chan struct{}, config.WorkerPoolSize),
	}

	if config.EnableDeadLetterQueue {
		d.deadLetterQ = NewDeadLetterQueue(config.DeadLetterQueueSize)
	}

	return d
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER REGISTRATION
// ══════════════════════════════════════════════════════════════════════════════

// RegisterHandler registers a handler for an event type.
func (d *Dispatcher) RegisterHandler(eventType shared.EventType, reg HandlerRegistration) error {
	if reg.Handler == nil {
		return errors.New("handler cannot be nil")
	}
	if reg.Name == "" {
		reg.Name = fmt.Sprintf("handler-%d", time.Now().UnixNano())
	}
	if reg.Timeout <= 0 {
		reg.Timeout = 30 * time.Second
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventType] = append(d.handlers[eventType], reg)
	d.logger.Debug("registered handler",
		"event_type", eventType,
		"handler_name", reg.Name,
		"async", reg.Async,
	)

	return nil
}

// Register is a convenience method for simple handler registration.
func (d *Dispatcher) Register(eventType shared.EventType, name string, handler shared.EventHandler) error {
	return d.RegisterHandler(eventType, HandlerRegistration{
		Name:    name,
		Handler: handler,
		Async:   true,
	})
}

// RegisterSync registers a synchronous handler.
func (d *Dispatcher) RegisterSync(eventType shared.EventType, name string, handler shared.EventHandler) error {
	return d.RegisterHandler(eventType, HandlerRegistration{
		Name:    name,
		Handler: handler,
		Async:   false,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// MIDDLEWARE
// ══════════════════════════════════════════════════════════════════════════════

// Middleware wraps handler execution.
type Middleware func(shared.EventHandler) shared.EventHandler

// Use adds middleware to the dispatcher.
func (d *Dispatcher) Use(middleware Middleware) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.middlewares = append(d.middlewares, middleware)
}

// RecoveryMiddleware recovers from panics in handlers.
func RecoveryMiddleware(logger *slog.Logger) Middleware {
	return func(next shared.EventHandler) shared.EventHandler {
		return func(event shared.Event) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := string(debug.Stack())
					logger.Error("handler panic recovered",
						"event_type", event.EventType(),
						"panic", r,
						"stack", stack,
					)
					err = fmt.Errorf("handler panic: %v", r)
				}
			}()
			return next(event)
		}
	}
}

// LoggingMiddleware logs handler execution.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next shared.EventHandler) shared.EventHandler {
		return func(event shared.Event) error {
			start := time.Now()
			err := next(event)
			duration := time.Since(start)

			if err != nil {
				logger.Error("handler failed",
					"event_type", event.EventType(),
					"aggregate_id", event.AggregateID(),
					"duration", duration,
					"error", err,
				)
			} else {
				logger.Debug("handler completed",
					"event_type", event.EventType(),
					"aggregate_id", event.AggregateID(),
					"duration", duration,
				)
			}

			return err
		}
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// EVENT DISPATCHING
// ══════════════════════════════════════════════════════════════════════════════

// Start begins listening for events and dispatching them.
func (d *Dispatcher) Start() error {
	// Subscribe to all events
	return d.eventBus.SubscribeAll(func(event shared.Event) error {
		return d.dispatch(event)
	})
}

// Dispatch manually dispatches an event to registered handlers.
func (d *Dispatcher) Dispatch(event shared.Event) error {
	return d.dispatch(event)
}

func (d *Dispatcher) dispatch(event shared.Event) error {
	d.mu.RLock()
	handlers := d.handlers[event.EventType()]
	middlewares := d.middlewares
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var syncErrors []error
	var syncMu sync.Mutex

	for _, reg := range handlers {
		if reg.Async {
			wg.Add(1)
			go func(r HandlerRegistration) {
				defer wg.Done()
				d.executeHandler(event, r, middlewares)
			}(reg)
		} else {
			err := d.executeHandler(event, reg, middlewares)
			if err != nil {
				syncMu.Lock()
				syncErrors = append(syncErrors, err)
				syncMu.Unlock()
			}
		}
	}

	wg.Wait()

	if len(syncErrors) > 0 {
		return fmt.Errorf("sync handler errors: %v", syncErrors)
	}

	return nil
}

func (d *Dispatcher) executeHandler(event shared.Event, reg HandlerRegistration, middlewares []Middleware) error {
	// Acquire worker slot
	select {
	case d.workerPool <- struct{}{}:
		defer func() { <-d.workerPool }()
	case <-d.ctx.Done():
		return d.ctx.Err()
	}

	// Build handler chain with middleware
	handler := reg.Handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	err := d.retrier.Do(d.ctx, func(ctx context.Context) error {
		return d.executeWithTimeout(ctx, handler, event, reg.Timeout)
	})
	if err == nil {
		return nil
	}

	// All retries exhausted - send to dead letter queue
	if d.deadLetterQ != nil {
		d.deadLetterQ.Add(DeadLetterEntry{
			Event:       event,
			HandlerName: reg.Name,
			Error:       err,
			FailedAt:    time.Now(),
		})
	}

	return fmt.Errorf("handler %s failed: %w", reg.Name, err)
}

func (d *Dispatcher) executeWithTimeout(ctx context.Context, handler shared.EventHandler, event shared.Event, timeout time.Duration) error {
	done := make(chan error, 1)

	go func() {
		done <- handler(event)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("handler timeout after %v", timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// LIFECYCLE
// ══════════════════════════════════════════════════════════════════════════════

// Stop gracefully stops the dispatcher.
func (d *Dispatcher) Stop() error {
	d.cancel()
	d.logger.Info("dispatcher stopped")
	return nil
}

// DeadLetterQueue returns the dead letter queue.
func (d *Dispatcher) DeadLetterQueue() *DeadLetterQueue {
	return d.deadLetterQ
}

// ══════════════════════════════════════════════════════════════════════════════
// DEAD LETTER QUEUE
// ══════════════════════════════════════════════════════════════════════════════

// DeadLetterEntry represents a failed event.
type DeadLetterEntry struct {
	Event       shared.Event
	HandlerName string
	Error       error
	FailedAt    time.Time
}

// DeadLetterQueue stores events that failed processing.
type DeadLetterQueue struct {
	mu      sync.RWMutex
	entries []DeadLetterEntry
	maxSize int
}

// NewDeadLetterQueue creates a new dead letter queue.
func NewDeadLetterQueue(maxSize int) *DeadLetterQueue {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &DeadLetterQueue{
		entries: make([]DeadLetterEntry, 0),
		maxSize: maxSize,
	}
}

// Add adds an entry to the queue.
func (q *DeadLetterQueue) Add(entry DeadLetterEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Remove oldest if at capacity
	if len(q.entries) >= q.maxSize {
		q.entries = q.entries[1:]
	}

	q.entries = append(q.entries, entry)
}

// Entries returns all entries.
func (q *DeadLetterQueue) Entries() []DeadLetterEntry {
	q.mu.RLock()
	defer q.mu.RUnlock()

	result := make([]DeadLetterEntry, len(q.entries))
	copy(result, q.entries)
	return result
}

// Size returns the current queue size.
func (q *DeadLetterQueue) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.entries)
}

// Clear removes all entries.
func (q *DeadLetterQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = make([]DeadLetterEntry, 0)
}

// Pop removes and returns the oldest entry.
func (q *DeadLetterQueue) Pop() (DeadLetterEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return DeadLetterEntry{}, false
	}

	entry := q.entries[0]
	q.entries = q.entries[1:]
	return entry, true
}
