package animate

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Frame is one published step of a run.
type Frame struct {
	Run     uint64  `json:"run"`
	Index   int     `json:"index"`
	Total   int     `json:"total"`
	Metrics Metrics `json:"metrics"`
	Final   bool    `json:"final"`
}

// Driver ticks an animation on its own goroutine and publishes every frame.
// Retarget preempts the run in flight, so at most one run is ever active and
// the last caller wins. Publish is called with the driver locked: it must not
// block for long and must not call back into the Driver.
type Driver struct {
	cfg     Config
	publish func(Frame)
	logger  *zap.Logger

	mu     sync.Mutex
	shown  Metrics
	target Metrics
	run    uint64
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewDriver displays initial until the first Retarget.
func NewDriver(cfg Config, initial Metrics, publish func(Frame), logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publish == nil {
		publish = func(Frame) {}
	}
	done := make(chan struct{})
	close(done)
	return &Driver{
		cfg:     cfg,
		publish: publish,
		logger:  logger,
		shown:   initial,
		target:  initial,
		done:    done,
	}
}

// Retarget cancels any run in flight and starts counting from the values
// currently shown toward target.
func (d *Driver) Retarget(target Metrics) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	d.run++
	d.target = target
	from := d.shown

	if d.cfg.Frames < 1 || d.cfg.Tick <= 0 {
		d.shown = target
		d.cancel = nil
		d.publish(Frame{Run: d.run, Index: 1, Total: 1, Metrics: target, Final: true})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done

	d.logger.Debug("animation retargeted",
		zap.Uint64("run", d.run),
		zap.Float64("from_profit", from.Profit),
		zap.Float64("to_profit", target.Profit))

	d.wg.Add(1)
	go d.loop(ctx, d.run, from, target, done)
}

func (d *Driver) loop(ctx context.Context, run uint64, from, to Metrics, done chan struct{}) {
	defer d.wg.Done()
	defer close(done)

	frames := Frames(from, to, d.cfg.Frames, d.cfg.Easing)
	ticker := time.NewTicker(d.cfg.Tick)
	defer ticker.Stop()

	for i, m := range frames {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		d.mu.Lock()
		if d.run != run {
			d.mu.Unlock()
			return
		}
		d.shown = m
		final := i == len(frames)-1
		d.publish(Frame{Run: run, Index: i + 1, Total: len(frames), Metrics: m, Final: final})
		d.mu.Unlock()
	}
}

// Displayed is what is on screen right now.
func (d *Driver) Displayed() Metrics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

func (d *Driver) Target() Metrics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.target
}

// Wait blocks until the latest run finishes or ctx ends. A Retarget during
// the wait extends it to the new run.
func (d *Driver) Wait(ctx context.Context) error {
	for {
		d.mu.Lock()
		done, run := d.done, d.run
		d.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
		}

		d.mu.Lock()
		settled := d.run == run
		d.mu.Unlock()
		if settled {
			return nil
		}
	}
}

// Stop cancels the run in flight and waits for its goroutine to exit.
func (d *Driver) Stop() {
	d.mu.Lock()
	d.run++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
	d.wg.Wait()
}
