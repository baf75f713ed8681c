package autotimer

import (
	"fmt"
	"sync"
	"time"

	"github.com/mcdev12/speedfocus/go/internal/models"
)

type armedTimer struct {
	handle   Handle
	kind     models.TimerKind
	duration time.Duration
	action   models.Action
}

type fakeTimers struct {
	seq       int
	armed     []armedTimer
	cancelled map[Handle]bool
}

func newFakeTimers() *fakeTimers {
	return &fakeTimers{cancelled: make(map[Handle]bool)}
}

func (f *fakeTimers) Arm(kind models.TimerKind, d time.Duration, action models.Action) Handle {
	f.seq++
	h := Handle(fmt.Sprintf("h%d", f.seq))
	f.armed = append(f.armed, armedTimer{handle: h, kind: kind, duration: d, action: action})
	return h
}

func (f *fakeTimers) Cancel(h Handle) {
	f.cancelled[h] = true
}

// live returns the armed timers of kind that were not cancelled.
func (f *fakeTimers) live(kind models.TimerKind) []armedTimer {
	var out []armedTimer
	for _, a := range f.armed {
		if a.kind == kind && !f.cancelled[a.handle] {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeTimers) armedCount(kind models.TimerKind) int {
	n := 0
	for _, a := range f.armed {
		if a.kind == kind {
			n++
		}
	}
	return n
}

func (f *fakeTimers) fire(kind models.TimerKind) Fire {
	live := f.live(kind)
	if len(live) == 0 {
		return Fire{Kind: kind}
	}
	a := live[len(live)-1]
	return Fire{Handle: a.handle, Kind: a.kind, Action: a.action}
}

type fakeDisplay struct {
	calls       []string
	countdown   string
	affordance  bool
	panicOnHide bool
}

func (d *fakeDisplay) ShowCountdown(label string, dur time.Duration) {
	d.calls = append(d.calls, fmt.Sprintf("countdown:%s:%s", label, dur))
	d.countdown = label
}

func (d *fakeDisplay) HideCountdown() {
	if d.panicOnHide {
		panic("display failure: hide countdown")
	}
	d.calls = append(d.calls, "hide-countdown")
	d.countdown = ""
}

func (d *fakeDisplay) ShowAffordance(hotkey string) {
	d.calls = append(d.calls, "show-affordance:"+hotkey)
	d.affordance = true
}

func (d *fakeDisplay) HideAffordance() {
	d.calls = append(d.calls, "hide-affordance")
	d.affordance = false
}

type fakeHost struct {
	mu          sync.Mutex
	loaded      bool
	defaultEase models.Ease
	calls       []string
	panicOn     string
}

func newFakeHost() *fakeHost {
	return &fakeHost{loaded: true, defaultEase: models.EaseGood}
}

func (h *fakeHost) record(call string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panicOn == call {
		panic("host failure: " + call)
	}
	h.calls = append(h.calls, call)
}

func (h *fakeHost) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

func (h *fakeHost) SessionLoaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loaded
}

func (h *fakeHost) RevealAnswer() error {
	h.record("reveal")
	return nil
}

func (h *fakeHost) AnswerCard(ease models.Ease) error {
	h.record(fmt.Sprintf("answer:%d", ease))
	return nil
}

func (h *fakeHost) DefaultEase() models.Ease {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.defaultEase
}

func (h *fakeHost) BuryCard() error {
	h.record("bury")
	return nil
}

type message struct {
	text     string
	duration time.Duration
}

type fakeNotifier struct {
	messages []message
	sounds   []string
}

func (n *fakeNotifier) ShowTransientMessage(text string, d time.Duration) {
	n.messages = append(n.messages, message{text: text, duration: d})
}

func (n *fakeNotifier) PlaySound(path string) {
	n.sounds = append(n.sounds, path)
}
