package delay

import (
	"runtime/debug"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Scheduler runs a task after a simulated latency. Panels only depend on
// this interface so the timer can later be swapped for a real async call.
type Scheduler interface {
	After(d time.Duration, task func())
}

// Timer schedules tasks on runtime timers and keeps track of the pending ones.
type Timer struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	timers  map[*time.Timer]struct{}
	stopped bool
}

func NewTimer() *Timer {
	return &Timer{timers: map[*time.Timer]struct{}{}}
}

func (t *Timer) After(d time.Duration, task func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.wg.Add(1)
	var tm *time.Timer
	tm = time.AfterFunc(d, func() {
		defer t.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.
					WithField("panic_stack", string(debug.Stack())).
					Errorf("delayed task panic: (%v)", r)
			}
		}()
		t.mu.Lock()
		delete(t.timers, tm)
		t.mu.Unlock()
		task()
	})
	t.timers[tm] = struct{}{}
}

// Pending returns the number of scheduled tasks that have not fired yet.
func (t *Timer) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

// Stop cancels pending tasks and waits for running ones.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.stopped = true
	for tm := range t.timers {
		if tm.Stop() {
			t.wg.Done()
		}
		delete(t.timers, tm)
	}
	t.mu.Unlock()
	t.wg.Wait()
}

// Immediate runs every task synchronously, ignoring the delay.
type Immediate struct{}

func (Immediate) After(_ time.Duration, task func()) {
	task()
}

// Manual queues tasks until Flush is called.
type Manual struct {
	mu    sync.Mutex
	tasks []func()
}

func (m *Manual) After(_ time.Duration, task func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, task)
}

func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Flush runs the queued tasks in the given order of indexes, or all of them
// in scheduling order when no indexes are passed.
func (m *Manual) Flush(order ...int) {
	m.mu.Lock()
	tasks := m.tasks
	m.tasks = nil
	m.mu.Unlock()
	if len(order) == 0 {
		for _, task := range tasks {
			task()
		}
		return
	}
	for _, idx := range order {
		tasks[idx]()
	}
}
