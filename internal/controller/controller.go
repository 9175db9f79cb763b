// Package controller implements the prediction workflow state machine: form
// state, the single in-flight request, the last verdict and error surfacing.
//
// A Controller is not safe for concurrent use. It is owned by one event loop;
// requests run elsewhere and report back through Resolve.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/predict"
	"github.com/Veraticus/fraudwatch/internal/preset"
	"github.com/Veraticus/fraudwatch/internal/service"
)

// State is the workflow state.
type State int

// Workflow states.
const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSubmitting:
		return "Submitting"
	case StateSuccess:
		return "Success"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Resolution describes what Resolve did with a response.
type Resolution int

// Resolutions.
const (
	// ResolutionIgnored means the sequence number was not the one in flight.
	ResolutionIgnored Resolution = iota
	// ResolutionDiscarded means the response arrived after Clear and was dropped.
	ResolutionDiscarded
	// ResolutionSucceeded means the result is now displayed. A history refresh
	// should follow.
	ResolutionSucceeded
	// ResolutionFailed means the error is now surfaced.
	ResolutionFailed
)

// Submission is a request the caller must send. Input is a copy taken at
// submit time; later edits do not affect it.
type Submission struct {
	Input model.TransactionInput
	Seq   uint64
}

// Controller binds the transaction form to prediction requests.
type Controller struct {
	err         error
	result      *model.PredictionResult
	input       model.TransactionInput
	state       State
	seq         uint64
	inFlight    uint64
	staleBefore uint64
}

// New returns a controller with a default form.
func New() *Controller {
	return &Controller{
		input: model.DefaultTransactionInput(),
		state: StateIdle,
	}
}

// State returns the current workflow state.
func (c *Controller) State() State {
	return c.state
}

// Input returns a copy of the form.
func (c *Controller) Input() model.TransactionInput {
	return c.input
}

// Result returns the displayed verdict, or nil.
func (c *Controller) Result() *model.PredictionResult {
	if c.result == nil {
		return nil
	}
	r := *c.result
	r.Reasons = append([]string(nil), c.result.Reasons...)
	return &r
}

// Err returns the error currently surfaced to the user, or nil.
func (c *Controller) Err() error {
	return c.err
}

// InFlight reports whether a request is outstanding. This can be true while
// the state is Idle, after Clear during a request.
func (c *Controller) InFlight() bool {
	return c.inFlight != 0
}

// Edit applies fn to a copy of the form and keeps the change only if fn
// succeeds. A finished Success or Failed state returns to Idle and any
// surfaced error is dismissed.
func (c *Controller) Edit(fn func(*model.TransactionInput) error) error {
	next := c.input
	if err := fn(&next); err != nil {
		return err
	}
	c.input = next
	c.settle()
	return nil
}

// SetField sets one form field by wire name.
func (c *Controller) SetField(name, value string) error {
	return c.Edit(func(in *model.TransactionInput) error {
		return in.SetField(name, value)
	})
}

// Submit starts a prediction for the current form. It fails with
// common.ErrSubmitInFlight while another request is outstanding, leaving
// everything unchanged, and with a ValidationError when the amount is not a
// positive number, in which case no request is started.
func (c *Controller) Submit() (Submission, error) {
	if c.inFlight != 0 {
		return Submission{}, common.ErrSubmitInFlight
	}

	c.settle()
	if _, err := predict.ValidateInput(c.input); err != nil {
		c.err = err
		return Submission{}, err
	}

	c.seq++
	c.inFlight = c.seq
	c.state = StateSubmitting
	c.err = nil

	return Submission{Seq: c.seq, Input: c.input}, nil
}

// ApplyPreset merges the named scenario into the form and submits it. While a
// request is outstanding it fails with common.ErrSubmitInFlight and the form is
// left untouched.
func (c *Controller) ApplyPreset(name string) (Submission, error) {
	if c.inFlight != 0 {
		return Submission{}, common.ErrSubmitInFlight
	}

	scenario, err := preset.Lookup(name)
	if err != nil {
		return Submission{}, err
	}

	c.input = scenario.Apply(c.input)
	c.settle()
	return c.Submit()
}

// Resolve records the outcome of the submission with the given sequence
// number. Responses to a submission made before the last Clear are dropped.
func (c *Controller) Resolve(seq uint64, result *model.PredictionResult, err error) Resolution {
	if seq == 0 || seq != c.inFlight {
		return ResolutionIgnored
	}
	c.inFlight = 0

	if seq <= c.staleBefore {
		return ResolutionDiscarded
	}

	if err == nil && result == nil {
		err = &common.TransportError{Op: "POST /predict", Err: errors.New("empty response")}
	}
	if err != nil {
		c.state = StateFailed
		c.err = err
		return ResolutionFailed
	}

	c.result = result
	c.state = StateSuccess
	c.err = nil
	return ResolutionSucceeded
}

// Clear resets the form to defaults and discards the displayed verdict. A
// request still in flight is not cancelled, but its response will be dropped.
func (c *Controller) Clear() {
	c.input.Reset()
	c.result = nil
	c.err = nil
	c.state = StateIdle
	c.staleBefore = c.seq
}

// Execute sends sub through p and resolves it. It blocks until the response
// arrives and is meant for callers without an event loop.
func (c *Controller) Execute(ctx context.Context, p service.Predictor, sub Submission) Resolution {
	result, err := p.Submit(ctx, sub.Input)
	return c.Resolve(sub.Seq, result, err)
}

func (c *Controller) settle() {
	c.err = nil
	if c.state == StateSuccess || c.state == StateFailed {
		c.state = StateIdle
	}
}
