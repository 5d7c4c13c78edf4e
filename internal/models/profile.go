package models

import "time"

const (
	EmploymentStatusEmployed     = "EMPLOYED"
	EmploymentStatusSelfEmployed = "SELF_EMPLOYED"
	EmploymentStatusUnemployed   = "UNEMPLOYED"
	EmploymentStatusStudent      = "STUDENT"
	EmploymentStatusRetired      = "RETIRED"
)

var EmploymentStatuses = []string{
	EmploymentStatusEmployed,
	EmploymentStatusSelfEmployed,
	EmploymentStatusUnemployed,
	EmploymentStatusStudent,
	EmploymentStatusRetired,
}

// Profile is the last-fetched authoritative profile state returned by the backend.
// Every sub-record is optional; a nil pointer means the user has not submitted it yet.
type Profile struct {
	ID           string        `json:"id"`
	Personal     *Personal     `json:"personal,omitempty"`
	Employment   *Employment   `json:"employment,omitempty"`
	Business     *Business     `json:"business,omitempty"`
	NextOfKin    *NextOfKin    `json:"nextOfKin,omitempty"`
	Guarantor    *Guarantor    `json:"guarantor,omitempty"`
	BankAccounts []BankAccount `json:"bankAccounts"`
	Documents    []Document    `json:"documents"`
	UpdatedAt    time.Time     `json:"updatedAt,omitempty"`
}

type Personal struct {
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	PhoneNumber           string `json:"phoneNumber"`
	Email                 string `json:"email"`
	DateOfBirth           string `json:"dateOfBirth"`
	BVN                   string `json:"bvn"`
	BVNVerified           bool   `json:"bvnVerified"`
	NIN                   string `json:"nin"`
	NINVerified           bool   `json:"ninVerified"`
	MaritalStatus         string `json:"maritalStatus"`
	HighestEducation      string `json:"highestEducation"`
	StreetNo              string `json:"streetNo"`
	StreetName            string `json:"streetName"`
	NearestBusStop        string `json:"nearestBusStop"`
	State                 string `json:"state"`
	LocalGovernment       string `json:"localGovernment"`
	HomeOwnership         string `json:"homeOwnership"`
	YearsInCurrentAddress int    `json:"yearsInCurrentAddress"`
}

type Employment struct {
	EmploymentStatus    string  `json:"employmentStatus"`
	EmployerName        string  `json:"employerName"`
	EmployerAddress     string  `json:"employerAddress"`
	JobTitle            string  `json:"jobTitle"`
	WorkEmail           string  `json:"workEmail"`
	MonthlySalary       float64 `json:"monthlySalary"`
	EmploymentStartDate string  `json:"employmentStartDate"`
}

// Business is filled instead of Employment details by self-employed users.
type Business struct {
	BusinessName       string  `json:"businessName"`
	BusinessAddress    string  `json:"businessAddress"`
	BusinessType       string  `json:"businessType"`
	RegistrationNumber string  `json:"registrationNumber"`
	YearsInBusiness    int     `json:"yearsInBusiness"`
	MonthlyRevenue     float64 `json:"monthlyRevenue"`
}

type NextOfKin struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
	Address      string `json:"address"`
}

type Guarantor struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PhoneNumber    string `json:"phoneNumber"`
	Email          string `json:"email"`
	Relationship   string `json:"relationship"`
	Address        string `json:"address"`
	Occupation     string `json:"occupation"`
	Identification string `json:"identification"`
}
