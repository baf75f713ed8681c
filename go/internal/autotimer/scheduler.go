package autotimer

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/speedfocus/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Handle identifies one armed timer. The zero value never matches a live timer.
type Handle string

// Fire is delivered once when an armed timer reaches its deadline.
type Fire struct {
	Handle  Handle
	Kind    models.TimerKind
	Action  models.Action
	FiredAt time.Time
}

// Timers is the set of timer primitives the controller arms and cancels.
type Timers interface {
	Arm(kind models.TimerKind, d time.Duration, action models.Action) Handle
	Cancel(h Handle)
}

type scheduledTimer struct {
	handle Handle
	kind   models.TimerKind
	action models.Action
	timer  clockwork.Timer
	done   chan struct{}
}

// Scheduler runs one-shot timers on a clockwork clock and reports expiries on
// the Fired channel. Arming a kind replaces the live timer of that kind.
type Scheduler struct {
	clock   clockwork.Clock
	firedCh chan Fire

	activeMu sync.Mutex
	active   map[models.TimerKind]*scheduledTimer

	waiters  sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler. Pass clockwork.NewRealClock() in
// production and a fake clock in tests.
func NewScheduler(clock clockwork.Clock, buffer int) *Scheduler {
	if buffer <= 0 {
		buffer = 8
	}
	return &Scheduler{
		clock:   clock,
		firedCh: make(chan Fire, buffer),
		active:  make(map[models.TimerKind]*scheduledTimer),
		stopCh:  make(chan struct{}),
	}
}

// Fired returns the channel timer expiries are sent on.
func (s *Scheduler) Fired() <-chan Fire {
	return s.firedCh
}

// Arm starts a timer of the given kind and returns its handle.
func (s *Scheduler) Arm(kind models.TimerKind, d time.Duration, action models.Action) Handle {
	st := &scheduledTimer{
		handle: Handle(uuid.NewString()),
		kind:   kind,
		action: action,
		timer:  s.clock.NewTimer(d),
		done:   make(chan struct{}),
	}
	s.replaceTimer(st)

	s.waiters.Add(1)
	go s.wait(st)

	log.Debug().
		Str("kind", string(kind)).
		Str("handle", string(st.handle)).
		Dur("duration", d).
		Msg("armed timer")
	return st.handle
}

func (s *Scheduler) wait(st *scheduledTimer) {
	defer s.waiters.Done()

	select {
	case firedAt := <-st.timer.Chan():
		s.activeMu.Lock()
		if cur, ok := s.active[st.kind]; ok && cur == st {
			delete(s.active, st.kind)
		}
		s.activeMu.Unlock()

		select {
		case s.firedCh <- Fire{Handle: st.handle, Kind: st.kind, Action: st.action, FiredAt: firedAt}:
		case <-st.done:
		case <-s.stopCh:
		}
	case <-st.done:
	case <-s.stopCh:
	}
}

// replaceTimer stores st as the live timer of its kind, cancelling the previous one.
func (s *Scheduler) replaceTimer(st *scheduledTimer) {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()

	if existing, ok := s.active[st.kind]; ok {
		stopTimer(existing)
		log.Debug().Str("kind", string(st.kind)).Msg("replaced existing timer")
	}
	s.active[st.kind] = st
}

// Cancel stops the timer with the given handle. Unknown, fired or already
// cancelled handles are ignored.
func (s *Scheduler) Cancel(h Handle) {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()

	for kind, st := range s.active {
		if st.handle == h {
			stopTimer(st)
			delete(s.active, kind)
			log.Debug().Str("kind", string(kind)).Str("handle", string(h)).Msg("cancelled timer")
			return
		}
	}
}

// Stop cancels every live timer and waits for their goroutines to exit,
// including those of expired timers whose fire was never received.
func (s *Scheduler) Stop() {
	s.activeMu.Lock()
	for kind, st := range s.active {
		stopTimer(st)
		log.Debug().Str("kind", string(kind)).Msg("cancelled timer on shutdown")
	}
	s.active = make(map[models.TimerKind]*scheduledTimer)
	s.activeMu.Unlock()

	s.stopOnce.Do(func() { close(s.stopCh) })
	s.waiters.Wait()
}

// Live reports how many timers are armed.
func (s *Scheduler) Live() int {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	return len(s.active)
}

// stopTimer stops the clock timer, drains its channel and releases the waiter.
func stopTimer(st *scheduledTimer) {
	if !st.timer.Stop() {
		select {
		case <-st.timer.Chan():
		default:
		}
	}
	close(st.done)
}
