package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/curve"
	"github.com/CameraRick/onAir-fanControl/internal/telemetry"
	"github.com/CameraRick/onAir-fanControl/internal/ui"
)

// ErrBiasOutOfRange indicates a requested bias outside the configured
// bias window.
var ErrBiasOutOfRange = errors.New("bias out of range")

// State is the engine's externally visible state. It is published over
// mqtt, served by the REST api and exported as metrics.
type State struct {
	// LiveDuty is the duty currently applied, TargetDuty the value the
	// ramp is converging on.
	LiveDuty   int `json:"liveDuty"`
	TargetDuty int `json:"targetDuty"`
	Bias       int `json:"bias"`

	// PoweredOff is set while the spin-down override requests the fan to
	// be switched off entirely.
	PoweredOff bool `json:"poweredOff"`

	// MaxTemp is the hottest settled temperature; nil while no device has
	// delivered one yet.
	MaxTemp      *float64                `json:"maxTemp"`
	SourceDevice string                  `json:"sourceDevice"`
	SourceKind   telemetry.ReadingSource `json:"sourceKind"`

	ActiveCount  int  `json:"activeCount"`
	StandbyCount int  `json:"standbyCount"`
	AllStandby   bool `json:"allStandby"`

	LastPollTime    time.Time `json:"lastPollTime"`
	LastPublishTime time.Time `json:"lastPublishTime"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Publisher pushes engine state to an external sink. Errors are reported
// but never stop the engine; the next publish tick retries.
type Publisher interface {
	Publish(state State) error
}

// Engine polls telemetry, derives a target duty from the curve and
// converges the live duty toward it, on two independent timers: the
// poll interval drives control decisions, the publish interval drives
// state publishing.
type Engine struct {
	store     *configuration.Store
	collector *telemetry.Collector
	publisher Publisher

	mu         sync.Mutex
	state      State
	hasSettled bool
}

func NewEngine(store *configuration.Store, collector *telemetry.Collector, publisher Publisher) *Engine {
	config := store.Snapshot()
	return &Engine{
		store:     store,
		collector: collector,
		publisher: publisher,
		state: State{
			LiveDuty:   config.Limits.MinDuty,
			TargetDuty: config.Limits.MinDuty,
		},
	}
}

// RunPollLoop executes control cycles on the poll interval until the
// context is cancelled.
func (e *Engine) RunPollLoop(ctx context.Context) error {
	interval := e.store.Snapshot().Controller.PollInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// first poll happens immediately, so state is meaningful before the
	// first full interval elapses
	e.pollTick(ctx)

	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping control loop...")
			return nil
		case <-ticker.C:
			e.pollTick(ctx)
			// a hot-swapped poll interval takes effect from here on
			if next := e.store.Snapshot().Controller.PollInterval; next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

// RunPublishLoop publishes state on the publish interval, independent of
// the poll cadence, until the context is cancelled.
func (e *Engine) RunPublishLoop(ctx context.Context) error {
	interval := e.store.Snapshot().Controller.PublishInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping publish loop...")
			return nil
		case <-ticker.C:
			e.publishTick()
			if next := e.store.Snapshot().Controller.PublishInterval; next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

// pollTick runs one full control cycle: collect, select, settle,
// evaluate, clamp and ramp.
func (e *Engine) pollTick(ctx context.Context) {
	config := e.store.Snapshot()

	fanCurve, err := curve.New(config.Curve)
	if err != nil {
		ui.Error("Skipping control cycle, curve unusable: %v", err)
		return
	}

	// telemetry collection can block on probes, keep it outside the lock
	readings := e.collector.Collect(ctx, config.Telemetry.Devices)
	selection := SelectHottest(readings)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.ActiveCount = selection.ActiveCount
	e.state.StandbyCount = selection.StandbyCount
	e.state.AllStandby = selection.Kind == SelectionAllStandby

	switch selection.Kind {
	case SelectionAllStandby:
		e.applySpinDown(config)
	case SelectionNoData:
		// hold the previous target until data returns
		ui.Warning("No usable temperature from any device, holding duty at %d%%", e.state.TargetDuty)
		e.state.PoweredOff = false
	case SelectionHottest:
		e.applyCurve(config, fanCurve, selection)
	}

	e.state.LiveDuty = Ramp(e.state.LiveDuty, e.state.TargetDuty, config.Controller.RampStep)
	now := time.Now()
	e.state.LastPollTime = now
	e.state.UpdatedAt = now

	ui.Debug("Control cycle done: live %d%%, target %d%%, bias %d, poweredOff %v",
		e.state.LiveDuty, e.state.TargetDuty, e.state.Bias, e.state.PoweredOff)
}

// applySpinDown applies the all-standby override. The configured value
// is an explicit exception to the minimum duty; the power-off sentinel
// additionally flags the fan to be switched off.
func (e *Engine) applySpinDown(config configuration.Configuration) {
	spinDown := config.Limits.SpinDown
	if !spinDown.Enabled {
		e.holdTarget()
		return
	}

	if spinDown.Value.IsPowerOff() {
		e.state.PoweredOff = true
		e.state.TargetDuty = 0
		return
	}

	duty, err := spinDown.Value.Duty()
	if err != nil {
		ui.Error("Unusable spin-down value %q, holding duty at %d%%: %v", spinDown.Value, e.state.TargetDuty, err)
		e.holdTarget()
		return
	}

	e.state.PoweredOff = false
	e.state.TargetDuty = duty
}

// holdTarget keeps the previous target while all devices sleep and no
// spin-down override applies. The target starts at the minimum duty, so
// a cold start without data still runs the idle floor.
func (e *Engine) holdTarget() {
	e.state.PoweredOff = false
}

func (e *Engine) applyCurve(config configuration.Configuration, fanCurve *curve.Curve, selection Selection) {
	hysteresis := NewHysteresis(config.Hysteresis)

	var settled float64
	if e.state.MaxTemp != nil {
		settled = *e.state.MaxTemp
	}
	settled = hysteresis.Apply(settled, e.hasSettled, selection.Temperature)
	e.hasSettled = true

	curveDuty, err := fanCurve.Evaluate(settled)
	if err != nil {
		// hold state; the next cycle retries with fresh readings
		ui.Error("Skipping control cycle, curve evaluation failed at %.1f°C: %v", settled, err)
		return
	}

	e.state.MaxTemp = &settled
	e.state.SourceDevice = selection.Device
	e.state.SourceKind = selection.Source
	e.state.PoweredOff = false
	e.state.TargetDuty = Clamp(curveDuty, e.state.Bias, config.Limits)
}

// publishTick pushes the current state to the publisher. A failed
// publish is logged and retried on the next tick.
func (e *Engine) publishTick() {
	if e.publisher == nil {
		return
	}

	e.mu.Lock()
	state := e.state
	e.mu.Unlock()

	if err := e.publisher.Publish(state); err != nil {
		ui.Warning("Publishing engine state failed: %v", err)
		return
	}

	e.mu.Lock()
	e.state.LastPublishTime = time.Now()
	e.mu.Unlock()
}

// SetBias applies a manual duty offset within the configured bias
// window. It takes effect on the next control cycle.
func (e *Engine) SetBias(bias int) error {
	limit := e.store.Snapshot().Limits.BiasLimit
	if bias < -limit || bias > limit {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrBiasOutOfRange, bias, -limit, limit)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Bias = bias
	ui.Info("Bias set to %d", bias)
	return nil
}

// ResetBias clears any manual duty offset.
func (e *Engine) ResetBias() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Bias = 0
	ui.Info("Bias reset")
}

// Snapshot returns a copy of the current engine state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}
