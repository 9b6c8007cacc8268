package dpadcursor

import "time"

// Token identifies a scheduled callback. The zero Token is never issued and
// is safe to pass to Cancel.
type Token uint64

// Clock reports the current time. Every timestamp the Controller produces
// (event times, activity, tick deltas) comes from its Clock.
type Clock interface {
	Now() time.Time
}

// Scheduler runs callbacks after a delay on the Controller's goroutine.
// Implementations must never run a callback concurrently with Controller
// methods.
type Scheduler interface {
	ScheduleOnce(delay time.Duration, fn func()) Token
	Cancel(tok Token)
}

// Stepper is implemented by schedulers whose time only moves when told to.
// Run drives a Stepper from the ebiten update loop; tests drive it directly.
type Stepper interface {
	Advance(to time.Time) int
	AdvanceBy(d time.Duration) int
}

type scheduledTask struct {
	token Token
	due   time.Time
	fn    func()
}

// LoopScheduler is a cooperative, single-goroutine Scheduler and Clock.
// Time only advances through Advance/AdvanceBy, which run every callback that
// has come due, in due order, with Now reporting each callback's due time
// while it runs.
type LoopScheduler struct {
	now   time.Time
	next  Token
	tasks []scheduledTask
}

// NewLoopScheduler creates a scheduler whose clock starts at start.
func NewLoopScheduler(start time.Time) *LoopScheduler {
	return &LoopScheduler{now: start}
}

// Now returns the scheduler's current time.
func (s *LoopScheduler) Now() time.Time {
	return s.now
}

// ScheduleOnce registers fn to run once delay has elapsed. Negative delays
// are treated as zero.
func (s *LoopScheduler) ScheduleOnce(delay time.Duration, fn func()) Token {
	if delay < 0 {
		delay = 0
	}
	s.next++
	s.tasks = append(s.tasks, scheduledTask{token: s.next, due: s.now.Add(delay), fn: fn})
	return s.next
}

// Cancel removes a pending callback. Unknown or already-run tokens are ignored.
func (s *LoopScheduler) Cancel(tok Token) {
	if tok == 0 {
		return
	}
	for i := range s.tasks {
		if s.tasks[i].token == tok {
			copy(s.tasks[i:], s.tasks[i+1:])
			s.tasks[len(s.tasks)-1] = scheduledTask{}
			s.tasks = s.tasks[:len(s.tasks)-1]
			return
		}
	}
}

// Pending returns the number of callbacks waiting to run.
func (s *LoopScheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock to `to`, running every callback due at or before
// it. Callbacks scheduled by running callbacks are run too if they fall due
// within the window. Returns the number of callbacks run.
func (s *LoopScheduler) Advance(to time.Time) int {
	ran := 0
	for {
		i := s.earliestDue(to)
		if i < 0 {
			break
		}
		t := s.tasks[i]
		copy(s.tasks[i:], s.tasks[i+1:])
		s.tasks[len(s.tasks)-1] = scheduledTask{}
		s.tasks = s.tasks[:len(s.tasks)-1]

		if t.due.After(s.now) {
			s.now = t.due
		}
		t.fn()
		ran++
	}
	if to.After(s.now) {
		s.now = to
	}
	return ran
}

// AdvanceBy is Advance(Now() + d).
func (s *LoopScheduler) AdvanceBy(d time.Duration) int {
	return s.Advance(s.now.Add(d))
}

// earliestDue returns the index of the task due first (ties broken by
// scheduling order), or -1 if nothing is due by `to`.
func (s *LoopScheduler) earliestDue(to time.Time) int {
	best := -1
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.due.After(to) {
			continue
		}
		if best < 0 || t.due.Before(s.tasks[best].due) ||
			(t.due.Equal(s.tasks[best].due) && t.token < s.tasks[best].token) {
			best = i
		}
	}
	return best
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
