// Package form holds the pending edit of one profile section: the working copy
// of its field values, the change-tracking gate and the confirm-then-save flow.
//
// A Session is not safe for concurrent use. Each request builds its own.
package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
)

var (
	ErrFieldLocked        = errors.New("field is locked")
	ErrUnknownField       = errors.New("unknown field")
	ErrSectionNotEditable = errors.New("section is not editable through a form")
	ErrNoChanges          = errors.New("no changes to save")
	ErrSaveInProgress     = profile.ErrSaveInProgress
	ErrNotConfirmPending  = errors.New("save has not been submitted for confirmation")
)

// FieldError is returned by ApplyUserEdit and carries the offending field.
type FieldError struct {
	Field profile.Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// codeFields hold enum codes. The backend does not keep their case consistent.
var codeFields = map[string]bool{
	"employmentStatus": true,
	"accountType":      true,
}

// normalizeValue is applied to server and user values alike, so both sides of
// a comparison are in the same form.
func normalizeValue(name, value string) string {
	value = strings.TrimSpace(value)
	if codeFields[name] {
		value = strings.ToUpper(value)
	}
	return value
}

func serverValue(p *models.Profile, field profile.Field) string {
	return normalizeValue(field.Name, profile.Value(p, field))
}

// pendingEdit is the working copy of a section's values.
// newPendingEdit is the only constructor and it never marks the copy dirty.
type pendingEdit struct {
	values map[string]string
	dirty  bool
}

func newPendingEdit(section profile.Section, p *models.Profile) pendingEdit {
	values := make(map[string]string)
	for _, field := range profile.Fields(section) {
		values[field.Name] = serverValue(p, field)
	}
	return pendingEdit{values: values}
}

type Session struct {
	section  profile.Section
	snapshot *models.Profile
	locks    profile.LockStatus
	edit     pendingEdit
	state    State
	lastErr  error
}

func NewSession(section profile.Section) (*Session, error) {
	if !section.Editable() {
		return nil, ErrSectionNotEditable
	}

	return &Session{section: section, state: StateIdle}, nil
}

func (s *Session) Section() profile.Section {
	return s.section
}

// Hydrate replaces the working copy with the server truth from p.
// Displaying server values is never counted as a user change.
func (s *Session) Hydrate(p *models.Profile) {
	s.snapshot = p
	s.locks = profile.Resolve(p)
	s.edit = newPendingEdit(s.section, p)
	s.state = StateIdle
	s.lastErr = nil
}

func (s *Session) Loaded() bool {
	return s.snapshot != nil
}

func (s *Session) Snapshot() *models.Profile {
	return s.snapshot
}

// ApplyUserEdit is the only path that marks the session as changed.
// Writing the value a field already holds is not a change.
func (s *Session) ApplyUserEdit(name, value string) error {
	if !s.Loaded() {
		return profile.ErrProfileNotLoaded
	}
	if s.state == StateSaving {
		return ErrSaveInProgress
	}

	field := profile.Field{Section: s.section, Name: name}
	if !profile.Known(field) {
		return &FieldError{Field: field, Err: ErrUnknownField}
	}

	value = normalizeValue(name, value)
	if s.edit.values[name] == value {
		return nil
	}

	if s.locks.Locked(field) {
		return &FieldError{Field: field, Err: ErrFieldLocked}
	}

	s.edit.values[name] = value
	s.edit.dirty = true
	// an edit after submitting invalidates the pending confirmation
	s.state = StateEditing
	return nil
}

// SwitchBankAccountType clears the bank account sub-form for the new type.
// It discards every pending change, so the gate resets. Switching to the
// current type is a no-op.
func (s *Session) SwitchBankAccountType(accountType string) error {
	if s.section != profile.SectionBankAccount {
		return ErrSectionNotEditable
	}
	if !s.Loaded() {
		return profile.ErrProfileNotLoaded
	}
	if s.state == StateSaving {
		return ErrSaveInProgress
	}

	typeField := profile.Field{Section: s.section, Name: "accountType"}
	accountType = normalizeValue(typeField.Name, accountType)
	if s.edit.values[typeField.Name] == accountType {
		return nil
	}
	if s.locks.Locked(typeField) {
		return &FieldError{Field: typeField, Err: ErrFieldLocked}
	}

	for _, field := range profile.Fields(s.section) {
		if !s.locks.Locked(field) {
			s.edit.values[field.Name] = ""
		}
	}
	s.edit.values[typeField.Name] = accountType
	s.edit.dirty = false
	s.state = StateIdle
	s.lastErr = nil
	return nil
}

// Discard drops every pending change and shows the snapshot again.
func (s *Session) Discard() {
	s.Hydrate(s.snapshot)
}

func (s *Session) HasUserMadeChanges() bool {
	return s.edit.dirty
}

// CanSave reports whether a submit control should be offered at all.
func (s *Session) CanSave() bool {
	return s.edit.dirty && s.state == StateEditing
}

func (s *Session) Locks() profile.LockStatus {
	return s.locks
}

func (s *Session) Value(name string) string {
	return s.edit.values[name]
}

func (s *Session) Values() map[string]string {
	values := make(map[string]string, len(s.edit.values))
	for k, v := range s.edit.values {
		values[k] = v
	}
	return values
}

type Change struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// Changes lists the fields whose working value differs from the snapshot, sorted by name.
func (s *Session) Changes() []Change {
	var changes []Change
	for _, field := range profile.Fields(s.section) {
		from := serverValue(s.snapshot, field)
		to := s.edit.values[field.Name]
		if from != to {
			changes = append(changes, Change{Field: field.Name, From: from, To: to})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}
