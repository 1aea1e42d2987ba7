package engine

import "cgle/internal/core"

// DefaultSubsteps is the number of kernel passes per displayed frame.
const DefaultSubsteps = 100

// Scheduler runs the fixed number of kernel passes that make up one frame.
type Scheduler struct {
	dev      core.Device
	store    *Store
	ctl      *Controller
	substeps int

	// OnSubstep, when set, runs after every completed pass and swap. Calls
	// happen between passes, so changes it makes to the controller are seen
	// by the following pass.
	OnSubstep func(frame uint64, substep int)

	executed uint64
}

// NewScheduler wires a scheduler to its store and parameter source.
func NewScheduler(dev core.Device, store *Store, ctl *Controller, substeps int) *Scheduler {
	if substeps <= 0 {
		substeps = DefaultSubsteps
	}
	return &Scheduler{dev: dev, store: store, ctl: ctl, substeps: substeps}
}

// Substeps returns the passes per frame.
func (s *Scheduler) Substeps() int { return s.substeps }

// Executed returns the number of passes completed since construction.
func (s *Scheduler) Executed() uint64 { return s.executed }

// RunFrame executes all passes for one frame. Each pass reads the
// controller's current values, so a change between passes takes effect on
// the next one. A failing pass aborts the frame without swapping, leaving the
// last fully written buffer current.
func (s *Scheduler) RunFrame(frame uint64) error {
	for i := 0; i < s.substeps; i++ {
		coeff := s.ctl.Coefficients()
		brush := s.ctl.Brush()
		if err := s.dev.Step(s.store.Next(), s.store.Current(), coeff, brush); err != nil {
			return &StepError{Frame: frame, Substep: i, Wrapped: err}
		}
		s.store.Swap()
		s.executed++
		if s.OnSubstep != nil {
			s.OnSubstep(frame, i)
		}
	}
	return nil
}
