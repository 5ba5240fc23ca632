// Package forms models the add/edit/view/delete dialogs every
// management screen uses: a draft of entity fields being edited, a
// dialog lifecycle (Closed → Open → Submitting), field-keyed
// validation errors, and the single-submission guards that keep a
// double click from issuing two mutations.
package forms

import (
	"context"
	"sync"
)

// Mode identifies what a dialog does with its entity.
type Mode int

const (
	Add Mode = iota
	Edit
	View
	Delete
)

// Phase is the dialog lifecycle state.
type Phase int

const (
	Closed Phase = iota
	Open
	Submitting
)

// Draft is the mutable local copy of entity fields being edited. It
// exists only while the dialog is open.
type Draft map[string]string

// Clone copies a draft so stored defaults never alias the live copy.
func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// FieldErrorer lets service errors carry a field-keyed breakdown that
// the dialog maps back onto inputs. Upstream API errors implement it.
type FieldErrorer interface {
	FieldErrors() map[string]string
}

// Dialog is one dialog instance. All state transitions go through its
// methods so the invariants hold under concurrent requests: no
// submission while already Submitting, no delete while a delete is in
// flight, no close mid-delete.
type Dialog struct {
	mu         sync.Mutex
	mode       Mode
	phase      Phase
	defaults   Draft
	draft      Draft
	fieldErrs  map[string]string
	generalErr string
	deleting   bool
	onSuccess  func()
}

// NewDialog builds a closed dialog. defaults seeds the draft when the
// dialog opens without an entity (Add).
func NewDialog(mode Mode, defaults Draft) *Dialog {
	return &Dialog{
		mode:     mode,
		defaults: defaults.Clone(),
		draft:    defaults.Clone(),
	}
}

// OnSuccess registers the parent screen's refetch callback, invoked
// exactly once per successful submission.
func (d *Dialog) OnSuccess(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onSuccess = fn
}

// Open transitions Closed → Open. A nil seed opens with defaults
// (Add); otherwise every seeded field is reflected verbatim in the
// draft (Edit/View/Delete).
func (d *Dialog) Open(seed Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != Closed {
		return
	}
	if seed == nil {
		d.draft = d.defaults.Clone()
	} else {
		d.draft = seed.Clone()
	}
	d.fieldErrs = nil
	d.generalErr = ""
	d.phase = Open
}

// SetFields applies user edits to the draft while the dialog is Open.
func (d *Dialog) SetFields(fields Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != Open {
		return
	}
	for k, v := range fields {
		d.draft[k] = v
	}
}

// Phase returns the current lifecycle state.
func (d *Dialog) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Mode returns what the dialog was built for.
func (d *Dialog) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Draft returns a copy of the current draft.
func (d *Dialog) Draft() Draft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft.Clone()
}

// FieldError returns the validation message for a field, or "".
func (d *Dialog) FieldError(field string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fieldErrs[field]
}

// FieldErrors returns a copy of the field-keyed error map.
func (d *Dialog) FieldErrors() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]string, len(d.fieldErrs))
	for k, v := range d.fieldErrs {
		out[k] = v
	}
	return out
}

// GeneralError returns the non-field error message, or "".
func (d *Dialog) GeneralError() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generalErr
}

// IsDeleting reports whether a delete confirmation is in flight.
func (d *Dialog) IsDeleting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deleting
}

// SetFieldError records an error against one field while Open, e.g. an
// image transcode failure that must not block the rest of the form.
func (d *Dialog) SetFieldError(field, msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase == Closed {
		return
	}
	if d.fieldErrs == nil {
		d.fieldErrs = make(map[string]string)
	}
	d.fieldErrs[field] = msg
}

// Submit drives one submission attempt:
//
//  1. validate runs synchronously against the draft. Failures keep the
//     dialog Open with a field-keyed error map and the service call is
//     never made.
//  2. The dialog transitions to Submitting (further submits are
//     no-ops) and call runs once.
//  3. Success: the draft resets to defaults, the dialog Closes, and
//     the parent's refetch callback fires once.
//  4. Failure: the dialog stays Open, the draft is untouched so the
//     user's input is not lost, and the error is surfaced: field-
//     mapped when the service provides a breakdown, general otherwise.
func (d *Dialog) Submit(ctx context.Context, validate func(Draft) map[string]string, call func(context.Context) error) error {
	d.mu.Lock()
	if d.phase != Open {
		d.mu.Unlock()
		return nil
	}

	if validate != nil {
		if errs := validate(d.draft.Clone()); len(errs) > 0 {
			d.fieldErrs = errs
			d.generalErr = ""
			d.mu.Unlock()
			return nil
		}
	}

	d.phase = Submitting
	d.fieldErrs = nil
	d.generalErr = ""
	onSuccess := d.onSuccess
	d.mu.Unlock()

	err := call(ctx)

	d.mu.Lock()
	if err != nil {
		d.phase = Open
		if fe, ok := err.(FieldErrorer); ok && len(fe.FieldErrors()) > 0 {
			d.fieldErrs = fe.FieldErrors()
		} else {
			d.generalErr = err.Error()
		}
		d.mu.Unlock()
		return err
	}

	d.draft = d.defaults.Clone()
	d.phase = Closed
	d.mu.Unlock()

	if onSuccess != nil {
		onSuccess()
	}
	return nil
}

// ConfirmDelete runs the delete call once. A second confirmation while
// the first is in flight is a no-op (returns false with no error), and
// the dialog cannot close while the flag is set.
func (d *Dialog) ConfirmDelete(ctx context.Context, call func(context.Context) error) (bool, error) {
	return d.Confirm(ctx, call)
}

// Confirm is the guard behind ConfirmDelete, exposed for other
// irreversible confirmations (settling a payout) that need the same
// exactly-once behavior.
func (d *Dialog) Confirm(ctx context.Context, call func(context.Context) error) (bool, error) {
	d.mu.Lock()
	if d.phase != Open || d.deleting {
		d.mu.Unlock()
		return false, nil
	}
	d.deleting = true
	d.phase = Submitting
	onSuccess := d.onSuccess
	d.mu.Unlock()

	err := call(ctx)

	d.mu.Lock()
	d.deleting = false
	if err != nil {
		d.phase = Open
		d.generalErr = err.Error()
		d.mu.Unlock()
		return true, err
	}
	d.draft = d.defaults.Clone()
	d.phase = Closed
	d.mu.Unlock()

	if onSuccess != nil {
		onSuccess()
	}
	return true, nil
}

// Close dismisses the dialog and destroys the draft. It is refused
// while a delete confirmation is in flight.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deleting {
		return
	}
	d.phase = Closed
	d.draft = d.defaults.Clone()
	d.fieldErrs = nil
	d.generalErr = ""
}
