package profile

import (
	"testing"

	"github.com/cradoe/profilegate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completePersonal() *models.Personal {
	return &models.Personal{
		FirstName:             "Ada",
		LastName:              "Obi",
		PhoneNumber:           "+2348012345678",
		Email:                 "ada@example.com",
		DateOfBirth:           "1990-04-12",
		MaritalStatus:         "SINGLE",
		HighestEducation:      "BSC",
		StreetNo:              "12",
		StreetName:            "Allen Avenue",
		State:                 "Lagos",
		LocalGovernment:       "Ikeja",
		HomeOwnership:         "RENTED",
		YearsInCurrentAddress: 3,
	}
}

func completeProfile() *models.Profile {
	return &models.Profile{
		ID:       "user-1",
		Personal: completePersonal(),
		Employment: &models.Employment{
			EmploymentStatus:    models.EmploymentStatusEmployed,
			EmployerName:        "Acme Ltd",
			EmployerAddress:     "1 Marina, Lagos",
			JobTitle:            "Engineer",
			MonthlySalary:       450000,
			EmploymentStartDate: "2019-01-01",
		},
		NextOfKin: &models.NextOfKin{
			FirstName:    "Chidi",
			LastName:     "Obi",
			PhoneNumber:  "+2348011111111",
			Relationship: "BROTHER",
			Address:      "4 Broad Street",
		},
		Guarantor: &models.Guarantor{
			FirstName:      "Bola",
			LastName:       "Ade",
			PhoneNumber:    "+2348022222222",
			Relationship:   "FRIEND",
			Address:        "9 Awolowo Road",
			Occupation:     "Trader",
			Identification: "https://files.example.com/g-id.png",
		},
		BankAccounts: []models.BankAccount{
			{ID: "b1", AccountName: "Ada Obi", AccountNumber: "0123456789", BankName: "GTBank", IsDefault: true},
		},
		Documents: []models.Document{
			{ID: "d1", Type: models.DocumentIDDocument},
			{ID: "d2", Type: models.DocumentUtilityBill},
			{ID: "d3", Type: models.DocumentBankStatement},
		},
	}
}

func TestResolve_NilSnapshotIsUnknown(t *testing.T) {
	locks := Resolve(nil)

	require.False(t, locks.Loaded())
	field := Field{Section: SectionPersonal, Name: "firstName"}
	assert.Equal(t, LockUnknown, locks.State(field))
	assert.False(t, locks.Locked(field))
}

func TestResolve_SimpleFieldsLockWhenPresent(t *testing.T) {
	p := &models.Profile{Personal: &models.Personal{FirstName: "Ada", LastName: "  "}}

	locks := Resolve(p)

	assert.Equal(t, LockLocked, locks.State(Field{SectionPersonal, "firstName"}))
	assert.Equal(t, LockEditable, locks.State(Field{SectionPersonal, "lastName"}))
	assert.Equal(t, LockEditable, locks.State(Field{SectionPersonal, "yearsInCurrentAddress"}))
}

func TestResolve_BVNNeedsVerification(t *testing.T) {
	p := &models.Profile{Personal: &models.Personal{BVN: "22123456789"}}
	bvn := Field{SectionPersonal, "bvn"}

	require.Equal(t, LockEditable, Resolve(p).State(bvn))

	// a refreshed snapshot with the verified flag set locks the field
	refreshed := &models.Profile{Personal: &models.Personal{BVN: "22123456789", BVNVerified: true}}
	assert.Equal(t, LockLocked, Resolve(refreshed).State(bvn))

	// verified flag alone does nothing
	empty := &models.Profile{Personal: &models.Personal{NINVerified: true}}
	assert.Equal(t, LockEditable, Resolve(empty).State(Field{SectionPersonal, "nin"}))
}

func TestResolve_EmploymentDetailsIgnoredWhenNotEmployed(t *testing.T) {
	p := &models.Profile{Employment: &models.Employment{
		EmploymentStatus: models.EmploymentStatusUnemployed,
		EmployerName:     "Old Employer",
	}}

	locks := Resolve(p)

	assert.True(t, locks.Locked(Field{SectionEmployment, "employmentStatus"}))
	assert.False(t, locks.Locked(Field{SectionEmployment, "employerName"}))
}

func TestSectionComplete_RequiredFields(t *testing.T) {
	sections := []Section{SectionPersonal, SectionEmployment, SectionNextOfKin, SectionGuarantor, SectionBankAccount}

	for _, section := range sections {
		t.Run(string(section), func(t *testing.T) {
			p := completeProfile()
			require.True(t, SectionComplete(p, section))

			for _, field := range RequiredFields(p, section) {
				t.Run(field.Name, func(t *testing.T) {
					broken := clearField(t, completeProfile(), field)
					assert.False(t, SectionComplete(broken, section), "removing %s must flip completion", field)
				})
			}
		})
	}
}

func TestSectionComplete_BVNNotRequired(t *testing.T) {
	p := completeProfile()
	p.Personal.BVN = "22123456789"
	p.Personal.BVNVerified = false

	assert.True(t, SectionComplete(p, SectionPersonal))
}

func TestSectionComplete_EmptyIsIncomplete(t *testing.T) {
	p := &models.Profile{}

	for _, section := range Sections {
		assert.False(t, SectionComplete(p, section), section)
	}
	assert.False(t, SectionComplete(nil, SectionPersonal))
}

func TestSectionComplete_UnemployedNeedsOnlyStatus(t *testing.T) {
	p := &models.Profile{Employment: &models.Employment{EmploymentStatus: models.EmploymentStatusUnemployed}}

	assert.True(t, SectionComplete(p, SectionEmployment))
	assert.Len(t, RequiredFields(p, SectionEmployment), 1)
}

func TestSectionComplete_BankStatementIsSingleton(t *testing.T) {
	p := completeProfile()
	require.True(t, SectionComplete(p, SectionBankStatement))

	p.Documents = append(p.Documents, models.Document{ID: "d4", Type: models.DocumentBankStatement})
	assert.False(t, SectionComplete(p, SectionBankStatement))
}

func TestSectionComplete_DocumentsNeedCompulsorySlotsOnly(t *testing.T) {
	p := &models.Profile{Documents: []models.Document{{Type: models.DocumentIDDocument}}}
	require.False(t, SectionComplete(p, SectionDocuments))

	p.Documents = append(p.Documents, models.Document{Type: models.DocumentUtilityBill})
	assert.True(t, SectionComplete(p, SectionDocuments))
}

func TestEvaluate_EndToEnd(t *testing.T) {
	empty := &models.Profile{}
	completion := Evaluate(empty)
	assert.False(t, completion.AllFormsCompleted)
	for _, section := range Sections {
		assert.False(t, completion.Sections[section])
	}

	personalOnly := &models.Profile{Personal: completePersonal()}
	completion = Evaluate(personalOnly)
	assert.True(t, completion.Sections[SectionPersonal])
	assert.False(t, completion.Sections[SectionEmployment])
	assert.False(t, completion.AllFormsCompleted)

	assert.True(t, Evaluate(completeProfile()).AllFormsCompleted)
}

func TestEvaluate_AnySectionFlipsAggregate(t *testing.T) {
	breakers := map[Section]func(p *models.Profile){
		SectionPersonal:      func(p *models.Profile) { p.Personal.Email = "" },
		SectionEmployment:    func(p *models.Profile) { p.Employment.JobTitle = "" },
		SectionNextOfKin:     func(p *models.Profile) { p.NextOfKin = nil },
		SectionGuarantor:     func(p *models.Profile) { p.Guarantor.Identification = "" },
		SectionBankAccount:   func(p *models.Profile) { p.BankAccounts = nil },
		SectionBankStatement: func(p *models.Profile) { p.Documents = p.Documents[:2] },
		SectionDocuments:     func(p *models.Profile) { p.Documents = p.Documents[1:] },
	}

	for section, breakSection := range breakers {
		t.Run(string(section), func(t *testing.T) {
			p := completeProfile()
			breakSection(p)

			completion := Evaluate(p)
			assert.False(t, completion.Sections[section])
			assert.False(t, completion.AllFormsCompleted)
		})
	}
}

func TestEvaluate_SelfEmployedUsesBusinessBranch(t *testing.T) {
	p := completeProfile()
	p.Employment = &models.Employment{EmploymentStatus: models.EmploymentStatusSelfEmployed}

	completion := Evaluate(p)
	require.Equal(t, SectionBusiness, completion.EmploymentBranch)
	assert.False(t, completion.AllFormsCompleted)

	p.Business = &models.Business{
		BusinessName:    "Ada Stores",
		BusinessAddress: "3 Market Road",
		BusinessType:    "RETAIL",
		YearsInBusiness: 4,
		MonthlyRevenue:  900000,
	}
	assert.True(t, Evaluate(p).AllFormsCompleted)
}

func TestCheckUpload(t *testing.T) {
	p := completeProfile()

	assert.ErrorIs(t, CheckUpload(nil, SlotGovernmentID), ErrProfileNotLoaded)
	assert.ErrorIs(t, CheckUpload(p, Slot("selfie")), ErrUnknownSlot)
	assert.ErrorIs(t, CheckUpload(p, SlotBankStatement), ErrBankStatementExists)
	assert.ErrorIs(t, CheckUpload(p, SlotGovernmentID), ErrDocumentLocked)
	assert.NoError(t, CheckUpload(p, SlotBusinessRegistration))

	p.Documents = append(p.Documents, models.Document{Type: models.DocumentBusinessFront})
	assert.NoError(t, CheckUpload(p, SlotStoreFront), "store front stays replaceable")
	assert.False(t, DocumentLocks(p)[SlotStoreFront])
	assert.True(t, DocumentLocks(p)[SlotUtilityBill])
}

func TestSectionLabel(t *testing.T) {
	assert.Equal(t, "Next Of Kin", SectionNextOfKin.Label())
	assert.Equal(t, "Personal Information", SectionPersonal.Label())
}

// clearField zeroes the snapshot value backing field.
func clearField(t *testing.T, p *models.Profile, field Field) *models.Profile {
	t.Helper()

	setters := map[string]func(){
		"personal.firstName":             func() { p.Personal.FirstName = "" },
		"personal.lastName":              func() { p.Personal.LastName = "" },
		"personal.phoneNumber":           func() { p.Personal.PhoneNumber = "" },
		"personal.email":                 func() { p.Personal.Email = "" },
		"personal.dateOfBirth":           func() { p.Personal.DateOfBirth = "" },
		"personal.maritalStatus":         func() { p.Personal.MaritalStatus = "" },
		"personal.highestEducation":      func() { p.Personal.HighestEducation = "" },
		"personal.streetNo":              func() { p.Personal.StreetNo = "" },
		"personal.streetName":            func() { p.Personal.StreetName = "" },
		"personal.state":                 func() { p.Personal.State = "" },
		"personal.localGovernment":       func() { p.Personal.LocalGovernment = "" },
		"personal.homeOwnership":         func() { p.Personal.HomeOwnership = "" },
		"personal.yearsInCurrentAddress": func() { p.Personal.YearsInCurrentAddress = 0 },
		"employment.employmentStatus":    func() { p.Employment.EmploymentStatus = "" },
		"employment.employerName":        func() { p.Employment.EmployerName = "" },
		"employment.employerAddress":     func() { p.Employment.EmployerAddress = "" },
		"employment.jobTitle":            func() { p.Employment.JobTitle = "" },
		"employment.monthlySalary":       func() { p.Employment.MonthlySalary = 0 },
		"employment.employmentStartDate": func() { p.Employment.EmploymentStartDate = "" },
		"nextOfKin.firstName":            func() { p.NextOfKin.FirstName = "" },
		"nextOfKin.lastName":             func() { p.NextOfKin.LastName = "" },
		"nextOfKin.phoneNumber":          func() { p.NextOfKin.PhoneNumber = "" },
		"nextOfKin.relationship":         func() { p.NextOfKin.Relationship = "" },
		"nextOfKin.address":              func() { p.NextOfKin.Address = "" },
		"guarantor.firstName":            func() { p.Guarantor.FirstName = "" },
		"guarantor.lastName":             func() { p.Guarantor.LastName = "" },
		"guarantor.phoneNumber":          func() { p.Guarantor.PhoneNumber = "" },
		"guarantor.relationship":         func() { p.Guarantor.Relationship = "" },
		"guarantor.address":              func() { p.Guarantor.Address = "" },
		"guarantor.occupation":           func() { p.Guarantor.Occupation = "" },
		"guarantor.identification":       func() { p.Guarantor.Identification = "" },
		"bankAccount.accountName":        func() { p.BankAccounts[0].AccountName = "" },
		"bankAccount.accountNumber":      func() { p.BankAccounts[0].AccountNumber = "" },
		"bankAccount.bankName":           func() { p.BankAccounts[0].BankName = "" },
	}

	set, ok := setters[field.String()]
	require.True(t, ok, "no setter for %s", field)
	set()
	return p
}
