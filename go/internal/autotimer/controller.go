// Package autotimer decides which review timers to arm on each card state
// change and turns their expiry into host requests.
package autotimer

import (
	"errors"
	"fmt"
	"time"

	"github.com/mcdev12/speedfocus/go/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrSessionUnavailable means the host has no collection loaded, usually
	// because the review session is being torn down.
	ErrSessionUnavailable = errors.New("host session unavailable")
	// ErrUnknownBridgeToken means the display layer sent a token we do not handle.
	ErrUnknownBridgeToken = errors.New("unknown bridge token")
)

const (
	alertMessageDuration = time.Second
	stoppedMessage       = "Timer stopped."
	stoppedDuration      = 2 * time.Second
)

// Display is the cosmetic countdown surface on the review screen.
type Display interface {
	ShowCountdown(label string, d time.Duration)
	HideCountdown()
	ShowAffordance(hotkey string)
	HideAffordance()
}

// Host is the review application. The controller only requests; the host
// does all scheduling.
type Host interface {
	SessionLoaded() bool
	RevealAnswer() error
	AnswerCard(ease models.Ease) error
	DefaultEase() models.Ease
	BuryCard() error
}

// Notifier shows short messages and plays sounds.
type Notifier interface {
	ShowTransientMessage(text string, d time.Duration)
	PlaySound(path string)
}

type liveTimer struct {
	handle   Handle
	action   models.Action
	duration time.Duration
}

// State is a read-only snapshot of the controller.
type State struct {
	Phase     models.Phase
	Stopped   bool
	Live      []models.TimerKind
	Countdown string
}

// Controller owns the timers of the displayed card. It is not safe for
// concurrent use; run it behind a Runner.
type Controller struct {
	timers   Timers
	display  Display
	host     Host
	notifier Notifier
	logger   zerolog.Logger

	alertSound          string
	cancelAlertOnAnswer bool

	phase         models.Phase
	stopped       bool
	cfg           models.TimerConfig
	live          map[models.TimerKind]liveTimer
	countdown     string
	revealPending bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used by the controller.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithAlertSound sets the sound played when the alert timer fires.
func WithAlertSound(path string) Option {
	return func(c *Controller) { c.alertSound = path }
}

// WithCancelAlertOnAnswer cancels the alert timer when the answer is shown.
// By default the alert runs to its own deadline.
func WithCancelAlertOnAnswer() Option {
	return func(c *Controller) { c.cancelAlertOnAnswer = true }
}

// NewController creates a controller in the question phase with no live timers.
func NewController(timers Timers, display Display, host Host, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		timers:   timers,
		display:  display,
		host:     host,
		notifier: notifier,
		logger:   log.Logger,
		phase:    models.PhaseQuestion,
		cfg:      models.DefaultTimerConfig(),
		live:     make(map[models.TimerKind]liveTimer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnQuestionShown arms the question phase timers for a new card.
func (c *Controller) OnQuestionShown(cfg models.TimerConfig) {
	defer c.recoverPanic("OnQuestionShown")

	c.cancelTimers(models.TimerAlert, models.TimerReveal, models.TimerAction)
	c.hideCountdown()
	c.phase = models.PhaseQuestion
	c.stopped = false
	c.revealPending = false
	c.cfg = cfg

	if cfg.AutoAlert > 0 {
		c.arm(models.TimerAlert, cfg.AutoAlert, "")
	}

	countdown := false
	if cfg.AutoSkip && cfg.AutoAgain > 0 {
		c.armCountdown(models.TimerAction, cfg.AutoAgain, cfg.AutoAction.Effective())
		countdown = true
	}
	c.setAffordance(countdown)

	c.logger.Debug().
		Bool("auto_skip", cfg.AutoSkip).
		Dur("auto_alert", cfg.AutoAlert).
		Dur("auto_again", cfg.AutoAgain).
		Bool("countdown", countdown).
		Msg("question shown")
}

// OnAnswerShown arms the answer phase timers.
func (c *Controller) OnAnswerShown(cfg models.TimerConfig) {
	defer c.recoverPanic("OnAnswerShown")

	if c.revealPending {
		// Echo of a reveal we requested; timers were already set up.
		c.revealPending = false
		c.cfg = cfg
		c.logger.Debug().Msg("answer shown after auto reveal")
		return
	}

	if !cfg.AutoSkip {
		c.CancelQuestionPhaseAction()
	}
	c.cancelCountdown()
	if c.cancelAlertOnAnswer {
		c.cancelTimers(models.TimerAlert)
	}
	c.phase = models.PhaseAnswer
	c.cfg = cfg

	var countdown bool
	switch {
	case cfg.AutoSkip && cfg.AutoAgain > 0:
		c.armCountdown(models.TimerAction, cfg.AutoAgain, cfg.AutoAction.Effective())
		countdown = true
	case cfg.AutoAnswer > 0:
		c.armCountdown(models.TimerReveal, cfg.AutoAnswer, "")
		countdown = true
	default:
		countdown = c.armAnswerAction()
	}
	c.setAffordance(countdown)

	c.logger.Debug().
		Bool("auto_skip", cfg.AutoSkip).
		Dur("auto_answer", cfg.AutoAnswer).
		Dur("auto_again", cfg.AutoAgain).
		Bool("countdown", countdown).
		Msg("answer shown")
}

// OnCardGraded drops the answer phase timers once the host graded the card.
func (c *Controller) OnCardGraded() {
	defer c.recoverPanic("OnCardGraded")
	c.revealPending = false
	c.cancelCountdown()
}

// OnDialogOpened cancels every timer so nothing fires under a modal dialog.
func (c *Controller) OnDialogOpened() {
	defer c.recoverPanic("OnDialogOpened")
	c.revealPending = false
	c.CancelAll()
}

// OnTyping cancels every timer when the user types into the answer field,
// if the deck asks for it.
func (c *Controller) OnTyping() {
	defer c.recoverPanic("OnTyping")
	if !c.cfg.StopOnTyping {
		return
	}
	c.CancelAll()
}

// OnSessionEnded destroys all timers of the current card.
func (c *Controller) OnSessionEnded() {
	defer c.recoverPanic("OnSessionEnded")
	c.CancelAll()
	c.display.HideAffordance()
	c.revealPending = false
}

// MoreTime is the manual cancel bound to the hotkey and the affordance.
func (c *Controller) MoreTime() {
	defer c.recoverPanic("MoreTime")

	c.CancelAll()
	c.display.HideAffordance()
	c.stopped = true
	c.notifier.ShowTransientMessage(stoppedMessage, stoppedDuration)
	c.logger.Info().Str("phase", string(c.phase)).Msg("timers stopped")
}

// CancelAll cancels the alert, reveal and action timers. Calling it with no
// live timers is a no-op.
func (c *Controller) CancelAll() {
	defer c.recoverPanic("CancelAll")
	c.cancelTimers(models.TimerAlert, models.TimerReveal, models.TimerAction)
	c.hideCountdown()
}

// CancelQuestionPhaseAction cancels only the action timer, so a question
// phase countdown does not carry into the answer phase. OnAnswerShown calls
// it when the deck does not auto-skip.
func (c *Controller) CancelQuestionPhaseAction() {
	defer c.recoverPanic("CancelQuestionPhaseAction")
	if _, ok := c.live[models.TimerAction]; !ok {
		return
	}
	c.cancelTimers(models.TimerAction)
	c.hideCountdown()
}

// OnTimerFired handles an expiry reported by the timer primitives. Fires for
// handles that are no longer live are ignored.
func (c *Controller) OnTimerFired(f Fire) {
	defer c.recoverPanic("OnTimerFired")

	lt, ok := c.live[f.Kind]
	if !ok || lt.handle != f.Handle {
		c.logger.Debug().Str("kind", string(f.Kind)).Str("handle", string(f.Handle)).Msg("ignoring stale timer fire")
		return
	}
	c.fire(f.Kind, lt)
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	s := State{Phase: c.phase, Stopped: c.stopped, Countdown: c.countdown}
	for _, kind := range []models.TimerKind{models.TimerAlert, models.TimerReveal, models.TimerAction} {
		if _, ok := c.live[kind]; ok {
			s.Live = append(s.Live, kind)
		}
	}
	return s
}

func (c *Controller) fire(kind models.TimerKind, lt liveTimer) {
	delete(c.live, kind)

	if !c.host.SessionLoaded() {
		c.logger.Debug().Err(ErrSessionUnavailable).Str("kind", string(kind)).Msg("dropping timer fire")
		return
	}

	switch kind {
	case models.TimerAlert:
		c.onAlertFired()
	case models.TimerReveal:
		c.hideCountdown()
		c.onRevealFired()
	case models.TimerAction:
		c.hideCountdown()
		c.onActionFired(lt.action)
	}
}

func (c *Controller) onAlertFired() {
	if c.alertSound != "" {
		c.notifier.PlaySound(c.alertSound)
	}
	c.notifier.ShowTransientMessage(
		fmt.Sprintf("Wake up! You have been looking at the question for %d seconds!", c.cfg.AutoAlertSeconds()),
		alertMessageDuration,
	)
}

func (c *Controller) onRevealFired() {
	c.revealPending = true
	if err := c.host.RevealAnswer(); err != nil {
		c.logger.Error().Err(err).Msg("failed to reveal answer")
		c.revealPending = false
		return
	}
	c.phase = models.PhaseAnswer
	c.setAffordance(c.armAnswerAction())
}

// armAnswerAction arms the grading timer for decks without auto-skip, which
// run it during the answer phase.
func (c *Controller) armAnswerAction() bool {
	if c.cfg.AutoSkip || c.cfg.AutoAgain <= 0 {
		return false
	}
	c.armCountdown(models.TimerAction, c.cfg.AutoAgain, c.cfg.AutoAction.Effective())
	return true
}

// resolveActionFromAlert returns the configured auto action, again when unset.
func (c *Controller) resolveActionFromAlert() models.Action {
	return c.cfg.AutoAction.Effective()
}

func (c *Controller) onActionFired(action models.Action) {
	if action == "" {
		action = c.resolveActionFromAlert()
	}
	action = action.Effective()

	if action != models.ActionBury && c.phase == models.PhaseQuestion {
		c.revealPending = true
		if err := c.host.RevealAnswer(); err != nil {
			c.logger.Error().Err(err).Msg("failed to reveal answer before grading")
			c.revealPending = false
			return
		}
		c.phase = models.PhaseAnswer
	}

	var err error
	switch action {
	case models.ActionAgain:
		err = c.host.AnswerCard(models.EaseAgain)
	case models.ActionHard:
		err = c.host.AnswerCard(models.EaseHard)
	case models.ActionGood:
		err = c.host.AnswerCard(c.host.DefaultEase())
	case models.ActionBury:
		err = c.host.BuryCard()
	}
	if err != nil {
		c.logger.Error().Err(err).Str("action", string(action)).Msg("failed to apply auto action")
		return
	}

	c.logger.Info().Str("action", string(action)).Msg("auto action applied")
	c.cancelCountdown()
}

func (c *Controller) arm(kind models.TimerKind, d time.Duration, action models.Action) {
	if prev, ok := c.live[kind]; ok {
		c.timers.Cancel(prev.handle)
	}
	h := c.timers.Arm(kind, d, action)
	c.live[kind] = liveTimer{handle: h, action: action, duration: d}
}

// armCountdown arms a reveal or action timer and shows its countdown. At most
// one of the two is live at a time.
func (c *Controller) armCountdown(kind models.TimerKind, d time.Duration, action models.Action) {
	c.cancelTimers(models.TimerReveal, models.TimerAction)
	c.arm(kind, d, action)

	label := models.RevealLabel
	if kind == models.TimerAction {
		label = action.Label()
	}
	c.countdown = label
	c.display.ShowCountdown(label, d)
}

func (c *Controller) cancelCountdown() {
	c.cancelTimers(models.TimerReveal, models.TimerAction)
	c.hideCountdown()
}

func (c *Controller) cancelTimers(kinds ...models.TimerKind) {
	for _, kind := range kinds {
		if lt, ok := c.live[kind]; ok {
			c.timers.Cancel(lt.handle)
			delete(c.live, kind)
		}
	}
}

func (c *Controller) hideCountdown() {
	if c.countdown == "" {
		return
	}
	c.countdown = ""
	c.display.HideCountdown()
}

func (c *Controller) setAffordance(countdown bool) {
	if countdown && c.cfg.MoreTimeButton {
		c.display.ShowAffordance(c.cfg.MoreTimeHotkey)
		return
	}
	c.display.HideAffordance()
}

func (c *Controller) recoverPanic(entry string) {
	if r := recover(); r != nil {
		c.logger.Error().Interface("panic", r).Str("entry", entry).Msg("recovered from panic in timer controller")
	}
}
