package profile

import (
	"strconv"
	"strings"

	"github.com/cradoe/profilegate/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Section string

const (
	SectionPersonal      Section = "personal"
	SectionEmployment    Section = "employment"
	SectionBusiness      Section = "business"
	SectionNextOfKin     Section = "nextOfKin"
	SectionGuarantor     Section = "guarantor"
	SectionBankAccount   Section = "bankAccount"
	SectionBankStatement Section = "bankStatement"
	SectionDocuments     Section = "documents"
)

// Sections lists every section in display order.
var Sections = []Section{
	SectionPersonal,
	SectionEmployment,
	SectionBusiness,
	SectionNextOfKin,
	SectionGuarantor,
	SectionBankAccount,
	SectionBankStatement,
	SectionDocuments,
}

var sectionLabels = map[Section]string{
	SectionPersonal:      "personal information",
	SectionEmployment:    "employment information",
	SectionBusiness:      "business information",
	SectionNextOfKin:     "next of kin",
	SectionGuarantor:     "guarantor",
	SectionBankAccount:   "bank account",
	SectionBankStatement: "bank statement",
	SectionDocuments:     "documents",
}

func ParseSection(s string) (Section, bool) {
	for _, section := range Sections {
		if string(section) == s {
			return section, true
		}
	}
	return "", false
}

// Label is the human readable, title-cased name of the section.
func (s Section) Label() string {
	label, ok := sectionLabels[s]
	if !ok {
		label = string(s)
	}
	return cases.Title(language.English).String(label)
}

// Editable reports whether the section is edited through a field form.
// Bank statement and documents are upload-only.
func (s Section) Editable() bool {
	return s != SectionBankStatement && s != SectionDocuments
}

// Field identifies a single form field. Names repeat across sections
// (firstName exists for personal, next of kin and guarantor), so the section is part of the key.
type Field struct {
	Section Section
	Name    string
}

func (f Field) String() string {
	return string(f.Section) + "." + f.Name
}

type fieldSpec struct {
	name string
	// value returns the snapshot value, "" when absent or zero.
	value func(p *models.Profile) string
	// verified gates the lock for fields that need backend verification (BVN, NIN).
	verified func(p *models.Profile) bool
	// employedOnly fields are only evaluated when employmentStatus is EMPLOYED.
	employedOnly bool
	required     bool
}

var catalogue = map[Section][]fieldSpec{
	SectionPersonal: {
		{name: "firstName", required: true, value: func(p *models.Profile) string { return personal(p).FirstName }},
		{name: "lastName", required: true, value: func(p *models.Profile) string { return personal(p).LastName }},
		{name: "phoneNumber", required: true, value: func(p *models.Profile) string { return personal(p).PhoneNumber }},
		{name: "email", required: true, value: func(p *models.Profile) string { return personal(p).Email }},
		{name: "dateOfBirth", required: true, value: func(p *models.Profile) string { return personal(p).DateOfBirth }},
		{
			name:     "bvn",
			value:    func(p *models.Profile) string { return personal(p).BVN },
			verified: func(p *models.Profile) bool { return personal(p).BVNVerified },
		},
		{
			name:     "nin",
			value:    func(p *models.Profile) string { return personal(p).NIN },
			verified: func(p *models.Profile) bool { return personal(p).NINVerified },
		},
		{name: "maritalStatus", required: true, value: func(p *models.Profile) string { return personal(p).MaritalStatus }},
		{name: "highestEducation", required: true, value: func(p *models.Profile) string { return personal(p).HighestEducation }},
		{name: "streetNo", required: true, value: func(p *models.Profile) string { return personal(p).StreetNo }},
		{name: "streetName", required: true, value: func(p *models.Profile) string { return personal(p).StreetName }},
		{name: "nearestBusStop", value: func(p *models.Profile) string { return personal(p).NearestBusStop }},
		{name: "state", required: true, value: func(p *models.Profile) string { return personal(p).State }},
		{name: "localGovernment", required: true, value: func(p *models.Profile) string { return personal(p).LocalGovernment }},
		{name: "homeOwnership", required: true, value: func(p *models.Profile) string { return personal(p).HomeOwnership }},
		{name: "yearsInCurrentAddress", required: true, value: func(p *models.Profile) string { return intValue(personal(p).YearsInCurrentAddress) }},
	},
	SectionEmployment: {
		{name: "employmentStatus", required: true, value: func(p *models.Profile) string { return employment(p).EmploymentStatus }},
		{name: "employerName", required: true, employedOnly: true, value: func(p *models.Profile) string { return employment(p).EmployerName }},
		{name: "employerAddress", required: true, employedOnly: true, value: func(p *models.Profile) string { return employment(p).EmployerAddress }},
		{name: "jobTitle", required: true, employedOnly: true, value: func(p *models.Profile) string { return employment(p).JobTitle }},
		{name: "workEmail", employedOnly: true, value: func(p *models.Profile) string { return employment(p).WorkEmail }},
		{name: "monthlySalary", required: true, employedOnly: true, value: func(p *models.Profile) string { return floatValue(employment(p).MonthlySalary) }},
		{name: "employmentStartDate", required: true, employedOnly: true, value: func(p *models.Profile) string { return employment(p).EmploymentStartDate }},
	},
	SectionBusiness: {
		{name: "businessName", required: true, value: func(p *models.Profile) string { return business(p).BusinessName }},
		{name: "businessAddress", required: true, value: func(p *models.Profile) string { return business(p).BusinessAddress }},
		{name: "businessType", required: true, value: func(p *models.Profile) string { return business(p).BusinessType }},
		{name: "registrationNumber", value: func(p *models.Profile) string { return business(p).RegistrationNumber }},
		{name: "yearsInBusiness", required: true, value: func(p *models.Profile) string { return intValue(business(p).YearsInBusiness) }},
		{name: "monthlyRevenue", required: true, value: func(p *models.Profile) string { return floatValue(business(p).MonthlyRevenue) }},
	},
	SectionNextOfKin: {
		{name: "firstName", required: true, value: func(p *models.Profile) string { return nextOfKin(p).FirstName }},
		{name: "lastName", required: true, value: func(p *models.Profile) string { return nextOfKin(p).LastName }},
		{name: "phoneNumber", required: true, value: func(p *models.Profile) string { return nextOfKin(p).PhoneNumber }},
		{name: "email", value: func(p *models.Profile) string { return nextOfKin(p).Email }},
		{name: "relationship", required: true, value: func(p *models.Profile) string { return nextOfKin(p).Relationship }},
		{name: "address", required: true, value: func(p *models.Profile) string { return nextOfKin(p).Address }},
	},
	SectionGuarantor: {
		{name: "firstName", required: true, value: func(p *models.Profile) string { return guarantor(p).FirstName }},
		{name: "lastName", required: true, value: func(p *models.Profile) string { return guarantor(p).LastName }},
		{name: "phoneNumber", required: true, value: func(p *models.Profile) string { return guarantor(p).PhoneNumber }},
		{name: "email", value: func(p *models.Profile) string { return guarantor(p).Email }},
		{name: "relationship", required: true, value: func(p *models.Profile) string { return guarantor(p).Relationship }},
		{name: "address", required: true, value: func(p *models.Profile) string { return guarantor(p).Address }},
		{name: "occupation", required: true, value: func(p *models.Profile) string { return guarantor(p).Occupation }},
		{name: "identification", required: true, value: func(p *models.Profile) string { return guarantor(p).Identification }},
	},
	SectionBankAccount: {
		{name: "accountType", value: func(p *models.Profile) string { return bankAccount(p).AccountType }},
		{name: "accountName", required: true, value: func(p *models.Profile) string { return bankAccount(p).AccountName }},
		{name: "accountNumber", required: true, value: func(p *models.Profile) string { return bankAccount(p).AccountNumber }},
		{name: "bankName", required: true, value: func(p *models.Profile) string { return bankAccount(p).BankName }},
		{name: "bankCode", value: func(p *models.Profile) string { return bankAccount(p).BankCode }},
	},
}

// Fields returns every field of the section in form order.
func Fields(section Section) []Field {
	specs := catalogue[section]
	fields := make([]Field, len(specs))
	for i, spec := range specs {
		fields[i] = Field{Section: section, Name: spec.name}
	}
	return fields
}

func lookup(f Field) (fieldSpec, bool) {
	for _, spec := range catalogue[f.Section] {
		if spec.name == f.Name {
			return spec, true
		}
	}
	return fieldSpec{}, false
}

// Known reports whether the field belongs to the catalogue.
func Known(f Field) bool {
	_, ok := lookup(f)
	return ok
}

// Value returns the snapshot value of the field in its form representation.
func Value(p *models.Profile, f Field) string {
	spec, ok := lookup(f)
	if !ok || p == nil {
		return ""
	}
	return spec.value(p)
}

// EmployedOnly reports whether the field is only relevant for EMPLOYED users.
func EmployedOnly(f Field) bool {
	spec, ok := lookup(f)
	return ok && spec.employedOnly
}

// RequiredFields returns the fields that gate completion of the section for this snapshot.
// Employment details are only required when the user is EMPLOYED.
// The lists are configuration: partial-completion submits remain possible on the form side.
func RequiredFields(p *models.Profile, section Section) []Field {
	employed := EmploymentStatus(p) == models.EmploymentStatusEmployed

	var fields []Field
	for _, spec := range catalogue[section] {
		if !spec.required {
			continue
		}
		if spec.employedOnly && !employed {
			continue
		}
		fields = append(fields, Field{Section: section, Name: spec.name})
	}
	return fields
}

// EmploymentStatus returns the snapshot's employment status, "" when unknown.
func EmploymentStatus(p *models.Profile) string {
	if p == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(employment(p).EmploymentStatus))
}

func personal(p *models.Profile) *models.Personal {
	if p.Personal == nil {
		return &models.Personal{}
	}
	return p.Personal
}

func employment(p *models.Profile) *models.Employment {
	if p.Employment == nil {
		return &models.Employment{}
	}
	return p.Employment
}

func business(p *models.Profile) *models.Business {
	if p.Business == nil {
		return &models.Business{}
	}
	return p.Business
}

func nextOfKin(p *models.Profile) *models.NextOfKin {
	if p.NextOfKin == nil {
		return &models.NextOfKin{}
	}
	return p.NextOfKin
}

func guarantor(p *models.Profile) *models.Guarantor {
	if p.Guarantor == nil {
		return &models.Guarantor{}
	}
	return p.Guarantor
}

// BankAccountIDKey carries the id of the account a bank account payload updates.
// A payload without it creates a new account.
const BankAccountIDKey = "id"

// DefaultBankAccountID returns the id of the account the bank account form edits,
// "" when the user has none.
func DefaultBankAccountID(p *models.Profile) string {
	if p == nil {
		return ""
	}
	return bankAccount(p).ID
}

// bankAccount returns the default account, or the first one when none is flagged.
func bankAccount(p *models.Profile) *models.BankAccount {
	if len(p.BankAccounts) == 0 {
		return &models.BankAccount{}
	}
	for i := range p.BankAccounts {
		if p.BankAccounts[i].IsDefault {
			return &p.BankAccounts[i]
		}
	}
	return &p.BankAccounts[0]
}

func intValue(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func floatValue(n float64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
