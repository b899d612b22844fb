// Package console holds the operator workflows of the admin console: one
// create/edit/list/delete manager per catalog entity, the pizza composer and
// the read-only menu.
package console

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Mode is the state of a manager's form
type Mode int

const (
	// ModeCreate means no entity is selected and the form is blank
	ModeCreate Mode = iota
	// ModeEdit means an entity is selected and the form holds its values
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// ErrSubmitInFlight is returned when a submit arrives while another one is outstanding
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// ErrNotListed is returned when editing an entity that is not in the loaded list
var ErrNotListed = errors.New("entity is not in the loaded list")

// ValidationError is a precondition failure shown to the operator as is.
// No request is sent when one occurs.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Confirm asks the operator a yes/no question
type Confirm func(prompt string) bool

// Binding connects a Manager to one resource.
// E is the entity type and F the form value the operator edits.
type Binding[E, F any] struct {
	// Noun names the entity in messages, e.g. "size"
	Noun string
	// Plural names a list of entities. Defaults to Noun followed by "s".
	Plural string
	// ID returns an entity's identifier
	ID func(E) int64
	// Form projects an entity onto the form used to edit it
	Form func(E) F
	// List fetches every entity
	List func(ctx context.Context) ([]E, error)
	// Create stores a new entity built from the form
	Create func(ctx context.Context, form F) error
	// Update stores the changes between the selected entity and the form
	Update func(ctx context.Context, selected E, form F) error
	// Delete removes an entity
	Delete func(ctx context.Context, id int64) error
	// ValidateCreate runs before creation. A failure sends no request.
	ValidateCreate func(form F) error
}

// View is an immutable snapshot of a manager, used for rendering
type View[E, F any] struct {
	Mode       Mode
	Selected   *E
	Form       F
	Items      []E
	Alert      string
	Submitting bool
}

// Manager drives the create/edit/list/delete workflow of one resource.
// The server is the only source of truth: the list is reloaded after every write.
type Manager[E, F any] struct {
	binding  Binding[E, F]
	inFlight atomic.Bool

	mu       sync.Mutex
	mode     Mode
	selected *E
	form     F
	items    []E
	alert    string
}

// NewManager creates a manager in create mode with an empty list
func NewManager[E, F any](binding Binding[E, F]) *Manager[E, F] {
	return &Manager[E, F]{binding: binding}
}

// Noun returns the display name of the managed entity
func (m *Manager[E, F]) Noun() string {
	return m.binding.Noun
}

func (m *Manager[E, F]) plural() string {
	if m.binding.Plural != "" {
		return m.binding.Plural
	}
	return m.binding.Noun + "s"
}

// Load replaces the in-memory list with the server's
func (m *Manager[E, F]) Load(ctx context.Context) error {
	items, err := m.binding.List(ctx)
	if err != nil {
		log.WithError(err).WithField("resource", m.binding.Noun).Error("Failed to load list")
		m.setAlert(fmt.Sprintf("Failed to load %s. Please try again.", m.plural()))
		return err
	}
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	return nil
}

// Edit selects a listed entity and pre-fills the form with its values
func (m *Manager[E, F]) Edit(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.binding.ID(m.items[i]) == id {
			selected := m.items[i]
			m.selected = &selected
			m.form = m.binding.Form(selected)
			m.mode = ModeEdit
			m.alert = ""
			return nil
		}
	}
	return fmt.Errorf("%s %d: %w", m.binding.Noun, id, ErrNotListed)
}

// Cancel returns to create mode without touching the server
func (m *Manager[E, F]) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

// Submit creates or updates depending on the mode. On success the list is
// reloaded and the manager returns to create mode. A submit issued while
// another is outstanding is dropped with ErrSubmitInFlight.
func (m *Manager[E, F]) Submit(ctx context.Context, form F) error {
	if !m.inFlight.CompareAndSwap(false, true) {
		log.WithField("resource", m.binding.Noun).Debug("Submit ignored, another one is in flight")
		return ErrSubmitInFlight
	}
	defer m.inFlight.Store(false)

	m.mu.Lock()
	mode := m.mode
	var selected E
	if m.selected != nil {
		selected = *m.selected
	}
	m.form = form
	m.alert = ""
	m.mu.Unlock()

	var err error
	if mode == ModeEdit {
		err = m.binding.Update(ctx, selected, form)
	} else {
		if m.binding.ValidateCreate != nil {
			if verr := m.binding.ValidateCreate(form); verr != nil {
				m.setAlert(verr.Error())
				return verr
			}
		}
		err = m.binding.Create(ctx, form)
	}
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"resource": m.binding.Noun,
			"mode":     mode.String(),
		}).Error("Failed to save")
		m.setAlert(fmt.Sprintf("Failed to save %s. Please try again.", m.binding.Noun))
		return err
	}

	m.mu.Lock()
	m.reset()
	m.mu.Unlock()
	return m.Load(ctx)
}

// Delete removes an entity after the operator confirms, whatever the form's mode.
// Declining returns nil without side effects.
func (m *Manager[E, F]) Delete(ctx context.Context, id int64, confirm Confirm) error {
	prompt := fmt.Sprintf("Are you sure you want to delete this %s?", m.binding.Noun)
	if confirm == nil || !confirm(prompt) {
		return nil
	}
	if err := m.binding.Delete(ctx, id); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"resource": m.binding.Noun,
			"id":       id,
		}).Error("Failed to delete")
		m.setAlert(fmt.Sprintf("Failed to delete %s. Please try again.", m.binding.Noun))
		return err
	}

	m.mu.Lock()
	if m.selected != nil && m.binding.ID(*m.selected) == id {
		m.reset()
	}
	m.mu.Unlock()
	return m.Load(ctx)
}

// View returns a snapshot of the manager's state
func (m *Manager[E, F]) View() View[E, F] {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := View[E, F]{
		Mode:       m.mode,
		Form:       m.form,
		Items:      append([]E(nil), m.items...),
		Alert:      m.alert,
		Submitting: m.inFlight.Load(),
	}
	if m.selected != nil {
		selected := *m.selected
		v.Selected = &selected
	}
	return v
}

// DismissAlert clears the operator-facing message
func (m *Manager[E, F]) DismissAlert() {
	m.setAlert("")
}

func (m *Manager[E, F]) setAlert(msg string) {
	m.mu.Lock()
	m.alert = msg
	m.mu.Unlock()
}

// reset must be called with mu held
func (m *Manager[E, F]) reset() {
	var blank F
	m.mode = ModeCreate
	m.selected = nil
	m.form = blank
}
