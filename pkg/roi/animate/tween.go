// Package animate interpolates displayed projection values toward fresh targets.
// It only changes what is shown; the projection itself is always available
// synchronously from package calc.
package animate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/komsit37/roi/pkg/roi/calc"
)

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(p float64) float64

func Linear(p float64) float64 { return p }

// EaseOutCubic decelerates into the target: 1 - (1-p)^3.
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// ParseEasing resolves a config name.
func ParseEasing(name string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ease-out-cubic", "cubic":
		return EaseOutCubic, nil
	case "linear":
		return Linear, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}

// Metrics is the animated subset of a projection.
type Metrics struct {
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	ROI     float64 `json:"roi"`
}

// Target rounds the money values to whole units the way the display counts them.
func Target(p calc.Projection) Metrics {
	return Metrics{
		Revenue: math.Round(p.Revenue),
		Profit:  math.Round(p.Profit),
		ROI:     p.ROIPercent,
	}
}

func lerp(from, to Metrics, e float64) Metrics {
	return Metrics{
		Revenue: from.Revenue + (to.Revenue-from.Revenue)*e,
		Profit:  from.Profit + (to.Profit-from.Profit)*e,
		ROI:     from.ROI + (to.ROI-from.ROI)*e,
	}
}

// Tween is a single run from From to To.
type Tween struct {
	From     Metrics
	To       Metrics
	Start    time.Time
	Duration time.Duration
	Easing   Easing
}

// Progress is the linear progress at now, clamped to [0,1].
func (t Tween) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// At returns the displayed values at now. Once progress reaches 1 it is To exactly.
func (t Tween) At(now time.Time) Metrics {
	return t.at(t.Progress(now))
}

func (t Tween) at(p float64) Metrics {
	if p >= 1 {
		return t.To
	}
	ease := t.Easing
	if ease == nil {
		ease = EaseOutCubic
	}
	return lerp(t.From, t.To, ease(p))
}

// Done reports whether the run has reached its target at now.
func (t Tween) Done(now time.Time) bool { return t.Progress(now) >= 1 }

// Frames returns n discrete frames from from to to; the last one is to exactly.
// n < 1 yields just the target.
func Frames(from, to Metrics, n int, ease Easing) []Metrics {
	if n < 1 {
		return []Metrics{to}
	}
	tw := Tween{From: from, To: to, Easing: ease}
	out := make([]Metrics, n)
	for i := 1; i <= n; i++ {
		out[i-1] = tw.at(float64(i) / float64(n))
	}
	return out
}
