package assistant

import (
	"context"
	"errors"
	"sync"
	"time"
)

// TaskKind identifies one assistant action slot.
type TaskKind int

const (
	TaskTranslatePage TaskKind = iota
	TaskSummarizePage
	TaskTranslateBook
	TaskSummarizeBook
	TaskChat
)

func (k TaskKind) String() string {
	switch k {
	case TaskTranslatePage:
		return "translate page"
	case TaskSummarizePage:
		return "summarize page"
	case TaskTranslateBook:
		return "translate book"
	case TaskSummarizeBook:
		return "summarize book"
	case TaskChat:
		return "chat"
	}
	return "unknown"
}

// TaskState is the lifecycle of a task.
type TaskState int

const (
	TaskIdle TaskState = iota
	TaskInFlight
	TaskDone
	TaskFailed
)

func (s TaskState) String() string {
	switch s {
	case TaskIdle:
		return "idle"
	case TaskInFlight:
		return "in-flight"
	case TaskDone:
		return "done"
	case TaskFailed:
		return "failed"
	}
	return "unknown"
}

// Task is a snapshot of one slot.
type Task struct {
	Kind     TaskKind
	State    TaskState
	Page     int
	Result   string
	Err      error
	Started  time.Time
	Finished time.Time
}

// Elapsed returns how long the task ran, or has been running.
func (t Task) Elapsed(now time.Time) time.Duration {
	if t.Started.IsZero() {
		return 0
	}
	if t.State == TaskInFlight {
		return now.Sub(t.Started)
	}
	return t.Finished.Sub(t.Started)
}

// Ticket identifies one started task. Completions carrying an outdated
// ticket are ignored.
type Ticket struct {
	Kind TaskKind
	Page int
	seq  uint64
}

type slot struct {
	task   Task
	seq    uint64
	cancel context.CancelFunc
}

// Tracker keeps one task per kind. Starting a task supersedes and cancels
// the running one of the same kind; closing the tracker cancels all of
// them.
type Tracker struct {
	mu    sync.Mutex
	root  context.Context
	stop  context.CancelFunc
	seq   uint64
	slots map[TaskKind]*slot
	now   func() time.Time
}

// NewTracker returns a tracker whose tasks live no longer than parent.
func NewTracker(parent context.Context) *Tracker {
	root, stop := context.WithCancel(parent)
	return &Tracker{
		root:  root,
		stop:  stop,
		slots: make(map[TaskKind]*slot),
		now:   time.Now,
	}
}

// Start marks kind in flight and returns the context the work must run
// under.
func (t *Tracker) Start(kind TaskKind, page int) (context.Context, Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.slot(kind)
	if s.cancel != nil {
		s.cancel()
	}
	t.seq++
	ctx, cancel := context.WithCancel(t.root)
	s.seq = t.seq
	s.cancel = cancel
	s.task = Task{Kind: kind, State: TaskInFlight, Page: page, Started: t.now()}

	return ctx, Ticket{Kind: kind, Page: page, seq: t.seq}
}

// Finish records the outcome of tk. It reports false when tk was
// superseded or cancelled, in which case nothing changes.
func (t *Tracker) Finish(tk Ticket, result string, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.slot(tk.Kind)
	if s.seq != tk.seq || s.task.State != TaskInFlight {
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.task.Finished = t.now()
	switch {
	case errors.Is(err, context.Canceled):
		s.task.State = TaskIdle
	case err != nil:
		s.task.State = TaskFailed
		s.task.Err = err
	default:
		s.task.State = TaskDone
		s.task.Result = result
	}
	return true
}

// Cancel stops kind's task, if running, and returns the slot to idle.
func (t *Tracker) Cancel(kind TaskKind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.slot(kind)
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq = 0
	s.task = Task{Kind: kind}
}

// Task returns a snapshot of kind's slot.
func (t *Tracker) Task(kind TaskKind) Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slot(kind).task
}

// Busy reports whether any task is in flight.
func (t *Tracker) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.slots {
		if s.task.State == TaskInFlight {
			return true
		}
	}
	return false
}

// Close cancels every task. Completions arriving afterwards are dropped.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stop()
	for kind, s := range t.slots {
		s.cancel = nil
		s.seq = 0
		if s.task.State == TaskInFlight {
			s.task = Task{Kind: kind}
		}
	}
}

func (t *Tracker) slot(kind TaskKind) *slot {
	s, ok := t.slots[kind]
	if !ok {
		s = &slot{task: Task{Kind: kind}}
		t.slots[kind] = s
	}
	return s
}
