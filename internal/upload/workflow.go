// Package upload implements the image selection and submission workflow.
package upload

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/service"
)

// State is the observable state of the workflow.
type State int

const (
	// StateIdle means nothing is selected, or the last submission finished.
	StateIdle State = iota
	// StateFileSelected means a valid image is waiting to be submitted.
	StateFileSelected
	// StateSubmitting means a classification request is in flight.
	StateSubmitting
	// StateError means the last action failed; see Err.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFileSelected:
		return "FileSelected"
	case StateSubmitting:
		return "Submitting"
	case StateError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Request is an accepted submission. Seq identifies it when it completes.
type Request struct {
	Image model.Image
	Seq   uint64
}

// Workflow owns one selection and at most one in-flight submission.
// It is safe for concurrent use.
type Workflow struct {
	sink     service.ResultSink
	selected *model.Image
	preview  Preview
	err      error
	maxBytes int64
	seq      uint64
	phase    State
	mu       sync.Mutex
	dragging bool
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithMaxBytes overrides the local upload size limit. Zero disables the check.
func WithMaxBytes(n int64) Option {
	return func(w *Workflow) {
		w.maxBytes = n
	}
}

// NewWorkflow creates a workflow that hands results to sink.
func NewWorkflow(sink service.ResultSink, opts ...Option) *Workflow {
	w := &Workflow{
		sink:     sink,
		maxBytes: DefaultMaxBytes,
		phase:    StateIdle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns StateError while an error is shown, otherwise the phase.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil && w.phase != StateSubmitting {
		return StateError
	}
	return w.phase
}

// Phase returns the underlying phase, ignoring any displayed error.
func (w *Workflow) Phase() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Err returns the error to display, if any.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Selected returns the selected image and its preview.
func (w *Workflow) Selected() (model.Image, Preview, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.selected == nil {
		return model.Image{}, Preview{}, false
	}
	return *w.selected, w.preview, true
}

// Dragging reports whether something is being dragged over the drop target.
func (w *Workflow) Dragging() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dragging
}

// CanSubmit reports whether Submit would start a request.
func (w *Workflow) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected != nil && w.phase != StateSubmitting
}

// Select validates and selects an image. Invalid input leaves any previous
// selection untouched.
func (w *Workflow) Select(img model.Image) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectLocked(img, NewPreview(img))
}

// SelectPath reads path from disk and selects it.
func (w *Workflow) SelectPath(path string) error {
	img, preview, err := Inspect(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.err = err
		return err
	}
	return w.selectLocked(img, preview)
}

// DragEnter marks the drop target as hovered. It has no other effect.
func (w *Workflow) DragEnter() {
	w.mu.Lock()
	w.dragging = true
	w.mu.Unlock()
}

// DragLeave clears the hover flag.
func (w *Workflow) DragLeave() {
	w.mu.Lock()
	w.dragging = false
	w.mu.Unlock()
}

// Drop selects a dropped file with the same validation as SelectPath.
func (w *Workflow) Drop(path string) error {
	w.DragLeave()
	return w.SelectPath(path)
}

func (w *Workflow) selectLocked(img model.Image, preview Preview) error {
	if err := validate(img, w.maxBytes); err != nil {
		w.err = err
		common.LogDebug("Rejected selection", common.Fields{"name": img.Name, "content_type": img.ContentType, "error": err})
		return err
	}

	w.selected = &img
	w.preview = preview
	w.err = nil
	if w.phase != StateSubmitting {
		w.phase = StateFileSelected
	}
	return nil
}

// BeginSubmit starts a submission. It fails without side effects when no
// file is selected or a submission is already in flight.
func (w *Workflow) BeginSubmit() (Request, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase == StateSubmitting {
		return Request{}, common.ErrSubmissionInFlight
	}
	if w.selected == nil {
		return Request{}, common.ErrNoFileSelected
	}

	w.seq++
	w.phase = StateSubmitting
	w.err = nil

	return Request{Seq: w.seq, Image: *w.selected}, nil
}

// CompleteSubmit records the outcome of req. It returns false when req is
// not the outstanding submission and the outcome was discarded.
func (w *Workflow) CompleteSubmit(req Request, result model.ClassificationResult, err error) bool {
	w.mu.Lock()
	if req.Seq != w.seq || w.phase != StateSubmitting {
		w.mu.Unlock()
		return false
	}

	w.phase = StateIdle
	if err != nil {
		w.err = common.NewUserError("Error processing image: "+common.UserMessage(err), err)
		w.mu.Unlock()
		common.LogError(err, "Classification failed", common.Fields{"name": req.Image.Name})
		return true
	}
	w.err = nil
	sink := w.sink
	w.mu.Unlock()

	if sink != nil {
		sink.SetResult(result)
	}
	common.LogInfo("Image classified", common.Fields{
		"name":            req.Image.Name,
		"predicted_class": result.PredictedClass,
		"confidence":      result.Confidence,
	})
	return true
}

// Submit runs a whole submission synchronously against classifier.
func (w *Workflow) Submit(ctx context.Context, classifier service.Classifier) (model.ClassificationResult, error) {
	req, err := w.BeginSubmit()
	if err != nil {
		return model.ClassificationResult{}, err
	}

	result, err := classifier.Classify(ctx, req.Image)
	w.CompleteSubmit(req, result, err)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("failed to classify %s: %w", req.Image.Name, err)
	}
	return result, nil
}

// Reset abandons any outstanding submission and clears the selection.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	w.selected = nil
	w.preview = Preview{}
	w.err = nil
	w.dragging = false
	w.phase = StateIdle
}

// IsValidationError reports whether err came from local validation.
func IsValidationError(err error) bool {
	var validationErr *common.ValidationError
	return errors.As(err, &validationErr)
}
