package animate

import "time"

// Config describes a run: Frames ticks of Tick each.
type Config struct {
	Frames int
	Tick   time.Duration
	Easing Easing
}

// DefaultConfig is 60 frames at 16ms, about one second.
func DefaultConfig() Config {
	return Config{Frames: 60, Tick: 16 * time.Millisecond, Easing: EaseOutCubic}
}

// Duration is the total length of a run.
func (c Config) Duration() time.Duration {
	return time.Duration(c.Frames) * c.Tick
}

// Animator tracks the displayed values of one view. Retarget restarts from
// whatever is on screen now; there is never more than one run.
// It is not safe for concurrent use. Driver adds locking and a ticker.
type Animator struct {
	cfg   Config
	tween Tween
}

// NewAnimator starts displaying initial with no run in flight.
func NewAnimator(cfg Config, initial Metrics) *Animator {
	return &Animator{
		cfg:   cfg,
		tween: Tween{From: initial, To: initial, Duration: 0, Easing: cfg.Easing},
	}
}

// Retarget cancels the current run and starts a new one toward target.
func (a *Animator) Retarget(target Metrics, now time.Time) {
	a.tween = Tween{
		From:     a.tween.At(now),
		To:       target,
		Start:    now,
		Duration: a.cfg.Duration(),
		Easing:   a.cfg.Easing,
	}
}

// Jump shows target immediately.
func (a *Animator) Jump(target Metrics) {
	a.tween = Tween{From: target, To: target, Easing: a.cfg.Easing}
}

func (a *Animator) Displayed(now time.Time) Metrics { return a.tween.At(now) }
func (a *Animator) Target() Metrics                 { return a.tween.To }
func (a *Animator) Done(now time.Time) bool         { return a.tween.Done(now) }
func (a *Animator) Config() Config                  { return a.cfg }
