// Package partner implements the "become a partner" application: the dialog
// controller holding the in-progress form, its validation rules and the
// collaborators an accepted application is handed to.
package partner

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/merute/welcome/internal/models"
)

var (
	// ErrInvalid is returned by BeginSubmit when at least one field fails validation.
	ErrInvalid = errors.New("partner application is invalid")
	// ErrSubmitInProgress is returned while another submission of the same dialog runs.
	ErrSubmitInProgress = errors.New("submission already in progress")
	// ErrStaleUpload is returned when an encode finishes after its slot was
	// removed, reset or re-selected.
	ErrStaleUpload = errors.New("upload superseded")
)

// Side is one face of the identity card.
type Side string

const (
	Recto Side = "recto"
	Verso Side = "verso"
)

// Sides lists both faces in display order.
var Sides = []Side{Recto, Verso}

// ParseSide accepts "recto" or "verso".
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToLower(s)) {
	case Recto:
		return Recto, true
	case Verso:
		return Verso, true
	}
	return "", false
}

// Field is the form field backed by this side.
func (s Side) Field() string {
	if s == Verso {
		return models.FieldCNIVerso
	}
	return models.FieldCNIRecto
}

// Ticket identifies one encode started on a slot.
type Ticket struct {
	Side       Side
	Generation uint64
}

// slot is one upload area. generation advances on every new selection,
// removal and reset; a completing encode only lands if its ticket still
// carries the current generation.
type slot struct {
	generation uint64
	preview    string
}

// Dialog is the partner-application dialog controller. All methods are safe
// for concurrent use.
type Dialog struct {
	mu         sync.Mutex
	open       bool
	app        models.PartnerApplication
	slots      map[Side]*slot
	errors     map[string]string
	submitting bool
}

// NewDialog returns a closed dialog holding the default form.
func NewDialog() *Dialog {
	d := &Dialog{
		slots: map[Side]*slot{Recto: {}, Verso: {}},
	}
	d.resetLocked()
	return d
}

// Open shows the dialog. An already open dialog keeps its state.
func (d *Dialog) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
}

// IsOpen reports whether the dialog is shown.
func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Dismiss closes the dialog and resets the form.
func (d *Dialog) Dismiss() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
	d.Reset()
}

// Reset clears fields, previews, errors and input handles in one step.
func (d *Dialog) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

func (d *Dialog) resetLocked() {
	d.app = models.DefaultPartnerApplication()
	for _, s := range d.slots {
		s.generation++
		s.preview = ""
	}
	d.errors = make(map[string]string)
}

// SetContact stores the email and phone inputs and clears their errors.
func (d *Dialog) SetContact(email, phone string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.app.Email = strings.TrimSpace(email)
	d.app.Phone = phone
	delete(d.errors, models.FieldEmail)
	delete(d.errors, models.FieldPhone)
}

// BeginUpload starts a new encode on side, superseding any encode still in
// flight for it.
func (d *Dialog) BeginUpload(side Side) Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.slots[side]
	s.generation++
	delete(d.errors, side.Field())
	return Ticket{Side: side, Generation: s.generation}
}

// CompleteUpload stores dataURL as both the preview and the field value.
func (d *Dialog) CompleteUpload(t Ticket, dataURL string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.slots[t.Side]
	if s.generation != t.Generation {
		return fmt.Errorf("%w: %s generation %d, current %d", ErrStaleUpload, t.Side, t.Generation, s.generation)
	}
	s.preview = dataURL
	d.setFieldLocked(t.Side, dataURL)
	return nil
}

// RejectUpload attaches msg to the side's field. The current preview, if
// any, is kept.
func (d *Dialog) RejectUpload(t Ticket, msg string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.slots[t.Side].generation != t.Generation {
		return ErrStaleUpload
	}
	d.errors[t.Side.Field()] = msg
	return nil
}

// RemoveImage clears the side's preview and value, and invalidates any
// encode in flight so the same file can be picked again.
func (d *Dialog) RemoveImage(side Side) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.slots[side]
	s.generation++
	s.preview = ""
	d.setFieldLocked(side, "")
}

func (d *Dialog) setFieldLocked(side Side, v string) {
	if side == Verso {
		d.app.CNIVerso = v
	} else {
		d.app.CNIRecto = v
	}
}

// Validate replaces the field errors with a fresh validation run.
func (d *Dialog) Validate(v *Validator) map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors = v.Application(d.app)
	return copyErrors(d.errors)
}

// ValidateFields re-validates only the named fields, leaving other errors
// untouched.
func (d *Dialog) ValidateFields(v *Validator, fields ...string) map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	errs := Only(v.Application(d.app), fields...)
	for _, f := range fields {
		delete(d.errors, f)
	}
	for f, msg := range errs {
		d.errors[f] = msg
	}
	return errs
}

// BeginSubmit validates the form and marks the dialog as submitting. The
// returned application is a copy safe to hand to a submitter.
func (d *Dialog) BeginSubmit(v *Validator) (models.PartnerApplication, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.submitting {
		return models.PartnerApplication{}, ErrSubmitInProgress
	}
	d.errors = v.Application(d.app)
	if len(d.errors) > 0 {
		return models.PartnerApplication{}, fmt.Errorf("%w: %d field(s)", ErrInvalid, len(d.errors))
	}
	d.submitting = true
	return d.app, nil
}

// FinishSubmit ends a submission. Success closes and resets the dialog;
// failure keeps the form so the user can resubmit.
func (d *Dialog) FinishSubmit(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitting = false
	if err == nil {
		d.resetLocked()
		d.open = false
	}
}

// View is an immutable snapshot of the dialog used for rendering.
type View struct {
	Open       bool
	Email      string
	Phone      string
	Previews   map[Side]string
	InputKeys  map[Side]uint64
	Errors     map[string]string
	Submitting bool
}

// CanSubmit is true once both identity card faces are present.
func (v View) CanSubmit() bool {
	return v.Previews[Recto] != "" && v.Previews[Verso] != "" && !v.Submitting
}

// Snapshot copies the dialog state.
func (d *Dialog) Snapshot() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := View{
		Open:       d.open,
		Email:      d.app.Email,
		Phone:      d.app.Phone,
		Previews:   make(map[Side]string, len(d.slots)),
		InputKeys:  make(map[Side]uint64, len(d.slots)),
		Errors:     copyErrors(d.errors),
		Submitting: d.submitting,
	}
	for side, s := range d.slots {
		v.Previews[side] = s.preview
		v.InputKeys[side] = s.generation
	}
	return v
}

// Application returns a copy of the current form values.
func (d *Dialog) Application() models.PartnerApplication {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.app
}

func copyErrors(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
