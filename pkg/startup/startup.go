// Package startup collects registration actions declared from init()
// functions and runs each of them exactly once when the program's explicit
// bootstrap asks for it.
//
// Actions run in the order they were registered, which for init()-time
// callers is the package initialization order of the build. No action may
// rely on another having run.
package startup

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/logging"
)

// Action is a zero-argument registration step
type Action func() error

type entry struct {
	id     string
	action Action
}

// Queue holds pending registration actions keyed by id
type Queue struct {
	runMu   sync.Mutex
	mu      sync.Mutex
	pending []entry
	known   map[string]bool
	done    map[string]bool
	runs    int
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{
		known: make(map[string]bool),
		done:  make(map[string]bool),
	}
}

// Register queues action under id. An id that is already queued or
// already executed is ignored.
func (q *Queue) Register(id string, action Action) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.known[id] {
		logger := logging.GetLogger("startup")
		logger.Debug().Str("id", id).Msg("Registration already queued, ignoring")
		return
	}
	q.known[id] = true
	q.pending = append(q.pending, entry{id: id, action: action})
}

// Run executes every pending action once, in registration order.
// Actions may register further actions; those run in the same pass.
// The first failing action stops the run; actions already executed stay executed.
func (q *Queue) Run() error {
	q.runMu.Lock()
	defer q.runMu.Unlock()

	logger := logging.GetLogger("startup")
	done := logging.LogOperationStart(logger, "startup.run")
	defer done()

	q.mu.Lock()
	q.runs++
	q.mu.Unlock()

	for {
		e, ok := q.next()
		if !ok {
			break
		}
		if err := invoke(e); err != nil {
			logger.Error().Err(err).Str("id", e.id).Msg("Startup action failed")
			return errors.Wrapf(err, errors.ErrStartupFailed, "startup action %s failed", e.id).
				WithDetail("id", e.id)
		}
		logger.Trace().Str("id", e.id).Msg("Startup action executed")
	}

	logger.Debug().Int("executed", q.executedCount()).Msg("Startup queue drained")
	return nil
}

// next pops the head of the queue and marks it executed
func (q *Queue) next() (entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return entry{}, false
	}
	e := q.pending[0]
	q.pending = q.pending[1:]
	q.done[e.id] = true
	return e, true
}

func (q *Queue) executedCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.done)
}

// invoke runs one action, turning a panic into an error
func invoke(e entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if e.action == nil {
		return nil
	}
	return e.action()
}

// Ran reports whether Run has been called at least once
func (q *Queue) Ran() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.runs > 0
}

// Len returns the number of pending actions
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Pending returns the ids of actions not yet executed, in run order
func (q *Queue) Pending() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make([]string, 0, len(q.pending))
	for _, e := range q.pending {
		ids = append(ids, e.id)
	}
	return ids
}

// Executed reports whether the action registered under id has run
func (q *Queue) Executed(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.done[id]
}

var defaultQueue = NewQueue()

// Default returns the process-wide queue used by init()-time declarations
func Default() *Queue {
	return defaultQueue
}

// Register queues action on the default queue
func Register(id string, action Action) {
	defaultQueue.Register(id, action)
}

// Run drains the default queue
func Run() error {
	return defaultQueue.Run()
}
