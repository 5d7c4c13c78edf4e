package profile

import "github.com/cradoe/profilegate/internal/models"

// SectionComplete reports whether every required field of the section is locked.
// A section with nothing to check is incomplete; absence of data never counts as done.
func SectionComplete(p *models.Profile, section Section) bool {
	if p == nil {
		return false
	}

	switch section {
	case SectionDocuments:
		for _, slot := range compulsorySlots {
			if CountDocuments(p, slot.DocumentType()) == 0 {
				return false
			}
		}
		return true
	case SectionBankStatement:
		return CountDocuments(p, models.DocumentBankStatement) == 1
	}

	required := RequiredFields(p, section)
	if len(required) == 0 {
		return false
	}

	locks := Resolve(p)
	for _, field := range required {
		if !locks.Locked(field) {
			return false
		}
	}
	return true
}

// Completion is the aggregate view consumed by call-to-action components.
// AllFormsCompleted is advisory; the backend re-validates eligibility.
type Completion struct {
	Loaded            bool             `json:"loaded"`
	Sections          map[Section]bool `json:"sections"`
	EmploymentBranch  Section          `json:"employmentBranch"`
	AllFormsCompleted bool             `json:"allFormsCompleted"`
}

// EmploymentBranch selects business for SELF_EMPLOYED users and employment for everyone else.
func EmploymentBranch(p *models.Profile) Section {
	if EmploymentStatus(p) == models.EmploymentStatusSelfEmployed {
		return SectionBusiness
	}
	return SectionEmployment
}

// GatingSections returns the seven sections whose completion decides eligibility.
func GatingSections(p *models.Profile) []Section {
	return []Section{
		SectionPersonal,
		EmploymentBranch(p),
		SectionNextOfKin,
		SectionGuarantor,
		SectionBankAccount,
		SectionBankStatement,
		SectionDocuments,
	}
}

func Evaluate(p *models.Profile) Completion {
	completion := Completion{
		Loaded:           p != nil,
		Sections:         make(map[Section]bool, len(Sections)),
		EmploymentBranch: EmploymentBranch(p),
	}

	for _, section := range Sections {
		completion.Sections[section] = SectionComplete(p, section)
	}

	completion.AllFormsCompleted = p != nil
	for _, section := range GatingSections(p) {
		if !completion.Sections[section] {
			completion.AllFormsCompleted = false
			break
		}
	}

	return completion
}

// AllFormsCompleted is a shorthand for Evaluate(p).AllFormsCompleted.
func AllFormsCompleted(p *models.Profile) bool {
	return Evaluate(p).AllFormsCompleted
}
