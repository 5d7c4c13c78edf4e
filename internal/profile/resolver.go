package profile

import (
	"strings"

	"github.com/cradoe/profilegate/internal/models"
)

type LockState int

const (
	// LockUnknown is reported while no snapshot is loaded; callers show a loading state.
	LockUnknown LockState = iota
	LockEditable
	LockLocked
)

func (s LockState) String() string {
	switch s {
	case LockEditable:
		return "editable"
	case LockLocked:
		return "locked"
	default:
		return "unknown"
	}
}

func (s LockState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// LockStatus is the per-field lock map derived from a snapshot.
// It has no setters: the only way to change it is to resolve a new snapshot.
type LockStatus struct {
	loaded bool
	locked map[Field]bool
}

// Resolve derives the lock status of every catalogued field from the snapshot.
// A nil snapshot yields a status whose fields are all LockUnknown.
func Resolve(p *models.Profile) LockStatus {
	if p == nil {
		return LockStatus{}
	}

	employed := EmploymentStatus(p) == models.EmploymentStatusEmployed

	locked := make(map[Field]bool)
	for section, specs := range catalogue {
		for _, spec := range specs {
			field := Field{Section: section, Name: spec.name}

			if spec.employedOnly && !employed {
				locked[field] = false
				continue
			}

			isLocked := strings.TrimSpace(spec.value(p)) != ""
			if isLocked && spec.verified != nil {
				// present but unverified stays editable so a bad entry can be corrected
				isLocked = spec.verified(p)
			}
			locked[field] = isLocked
		}
	}

	return LockStatus{loaded: true, locked: locked}
}

func (s LockStatus) Loaded() bool {
	return s.loaded
}

func (s LockStatus) State(f Field) LockState {
	if !s.loaded {
		return LockUnknown
	}
	if s.locked[f] {
		return LockLocked
	}
	return LockEditable
}

// Locked reports whether the field is read-only. Unknown fields and
// unloaded snapshots are never locked.
func (s LockStatus) Locked(f Field) bool {
	return s.loaded && s.locked[f]
}

// Section returns the lock state of every field in the section, keyed by field name.
func (s LockStatus) Section(section Section) map[string]LockState {
	states := make(map[string]LockState)
	for _, field := range Fields(section) {
		states[field.Name] = s.State(field)
	}
	return states
}
