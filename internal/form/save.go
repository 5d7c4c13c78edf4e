package form

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
	"github.com/cradoe/profilegate/internal/validator"
)

type State int

const (
	StateIdle State = iota
	StateEditing
	StateConfirmPending
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateConfirmPending:
		return "confirm_pending"
	case StateSaving:
		return "saving"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Saver is the backend side of a save: write the section, then fetch the whole snapshot again.
type Saver interface {
	SaveSection(ctx context.Context, section profile.Section, payload map[string]any) error
	Refresh(ctx context.Context) (*models.Profile, error)
}

// ValidationError carries per-field messages caught before any network call.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// RefreshError means the section was saved but the snapshot could not be re-fetched.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return "saved, but the profile could not be reloaded: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

func (s *Session) State() State {
	return s.state
}

// LastError is the error of the last failed save, nil after a successful one.
func (s *Session) LastError() error {
	return s.lastErr
}

var numericFields = map[string]bool{
	"yearsInCurrentAddress": true,
	"monthlySalary":         true,
	"yearsInBusiness":       true,
	"monthlyRevenue":        true,
}

var integerFields = map[string]bool{
	"yearsInCurrentAddress": true,
	"yearsInBusiness":       true,
}

// Validate checks the format of every changed, non-empty working value.
// Server values are trusted as they are.
func (s *Session) Validate() map[string]string {
	var v validator.Validator

	for _, change := range s.Changes() {
		name, value := change.Field, change.To
		if value == "" {
			continue
		}

		switch {
		case numericFields[name]:
			v.CheckField(validator.IsPositiveNumber(value), name, "Must be a number greater than zero")
			if integerFields[name] {
				_, err := strconv.Atoi(value)
				v.CheckField(err == nil, name, "Must be a whole number")
			}
		case name == "employmentStatus":
			v.CheckField(validator.PermittedValue(value, models.EmploymentStatuses...), name, "Select a valid employment status")
		case name == "email" || name == "workEmail":
			v.CheckField(validator.IsEmail(value), name, "Must be a valid email address")
		case name == "phoneNumber":
			v.CheckField(validator.Matches(value, validator.RgxPhoneNumber), name, "Must be a valid phone number")
		case name == "accountNumber":
			v.CheckField(validator.Matches(value, validator.RgxAccountNumber), name, "Account number must be exactly 10 digits")
		case name == "dateOfBirth" || name == "employmentStartDate":
			v.CheckField(validator.Matches(value, validator.RgxDate), name, "Must be a date in YYYY-MM-DD format")
		}
	}

	// the whole account goes out on save, so every field is checked
	if s.section == profile.SectionBankAccount {
		for name, message := range ValidateBankAccount(s.bankAccountRequest()) {
			v.AddFieldError(name, message)
		}
	}

	return v.FieldErrors
}

// Payload packages the fields relevant to the section. Employment sends the full
// record only for EMPLOYED users; every other status sends the status alone.
// A bank account payload carries the id of the account it edits, if any.
func (s *Session) Payload() map[string]any {
	payload := make(map[string]any)

	switch s.section {
	case profile.SectionEmployment:
		status := normalizeValue("employmentStatus", s.edit.values["employmentStatus"])
		if status != models.EmploymentStatusEmployed {
			payload["employmentStatus"] = status
			return payload
		}
	case profile.SectionBankAccount:
		account := s.bankAccountRequest()
		payload["accountType"] = account.AccountType
		if id := profile.DefaultBankAccountID(s.snapshot); id != "" {
			payload[profile.BankAccountIDKey] = id
		}
	}

	for _, field := range profile.Fields(s.section) {
		value := s.edit.values[field.Name]
		if value == "" {
			continue
		}

		if numericFields[field.Name] {
			n, err := strconv.ParseFloat(value, 64)
			if err == nil {
				payload[field.Name] = n
				continue
			}
		}
		payload[field.Name] = value
	}

	return payload
}

// RequestSubmit moves an edited session to ConfirmPending.
func (s *Session) RequestSubmit() error {
	if s.state == StateSaving {
		return ErrSaveInProgress
	}
	if !s.Loaded() {
		return profile.ErrProfileNotLoaded
	}
	if !s.edit.dirty {
		return ErrNoChanges
	}

	if fields := s.Validate(); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	s.state = StateConfirmPending
	return nil
}

// Cancel abandons the confirmation step and keeps every pending edit.
func (s *Session) Cancel() {
	if s.state == StateConfirmPending {
		s.state = StateEditing
	}
}

// Confirm dispatches the write. On success the snapshot is re-fetched in full and
// the session is hydrated from it. On failure the pending edit is left untouched
// so the user can retry without re-entering data.
func (s *Session) Confirm(ctx context.Context, saver Saver) error {
	switch s.state {
	case StateSaving:
		return ErrSaveInProgress
	case StateConfirmPending:
	default:
		return ErrNotConfirmPending
	}

	s.state = StateSaving

	err := saver.SaveSection(ctx, s.section, s.Payload())
	if err != nil {
		s.state = StateEditing
		s.lastErr = err
		return err
	}

	snapshot, err := saver.Refresh(ctx)
	if err != nil {
		// the write went through, so the edits are no longer pending
		s.edit.dirty = false
		s.state = StateIdle
		s.lastErr = &RefreshError{Err: err}
		return s.lastErr
	}

	s.Hydrate(snapshot)
	return nil
}
