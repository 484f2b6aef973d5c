package frame

import "reflect"

// Stepper advances and draws one frame.
type Stepper interface {
	Update()
	Render()
}

// Animator runs a Stepper on a self-rescheduling frame chain that is gated
// by visibility. At most one chain exists at a time.
type Animator struct {
	stepper Stepper
	sched   Scheduler

	visible bool
	handle  Handle
	frames  uint64
}

// NewAnimator starts hidden; call Start or SetVisible(true) to run. A nil
// stepper, including a nil pointer behind the interface, never runs.
func NewAnimator(stepper Stepper, sched Scheduler) *Animator {
	if isNil(stepper) {
		stepper = nil
	}
	return &Animator{stepper: stepper, sched: sched}
}

func isNil(s Stepper) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Start marks the animator visible and schedules a frame unless one is
// already pending.
func (a *Animator) Start() {
	if a.stepper == nil {
		return
	}
	a.visible = true
	if a.handle != 0 {
		return
	}
	a.handle = a.sched.RequestFrame(a.tick)
}

// Stop marks the animator hidden and drops the pending frame.
func (a *Animator) Stop() {
	a.visible = false
	if a.handle != 0 {
		a.sched.CancelFrame(a.handle)
		a.handle = 0
	}
}

// SetVisible is the visibility signal entry point.
func (a *Animator) SetVisible(visible bool) {
	if visible {
		a.Start()
		return
	}
	a.Stop()
}

func (a *Animator) Visible() bool { return a.visible }

// Running reports whether a frame is pending.
func (a *Animator) Running() bool { return a.handle != 0 }

// Frames counts rendered frames.
func (a *Animator) Frames() uint64 { return a.frames }

func (a *Animator) tick() {
	a.handle = 0
	if !a.visible {
		return
	}
	a.stepper.Update()
	a.stepper.Render()
	a.frames++
	a.handle = a.sched.RequestFrame(a.tick)
}
