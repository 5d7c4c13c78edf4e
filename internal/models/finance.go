package models

import "time"

type InvestmentPlan struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	AnnualRate      float64 `json:"annualRate"`
	MinAmount       float64 `json:"minAmount"`
	MaxTenureMonths int     `json:"maxTenureMonths"`
}

// InvestmentPlans are the products the backend accepts on calculate-returns and create.
var InvestmentPlans = []InvestmentPlan{
	{Code: "FIXED_DEPOSIT", Name: "Fixed Deposit", AnnualRate: 0.12, MinAmount: 10000, MaxTenureMonths: 24},
	{Code: "TARGET_SAVINGS", Name: "Target Savings", AnnualRate: 0.10, MinAmount: 5000, MaxTenureMonths: 36},
	{Code: "HIGH_YIELD", Name: "High Yield Note", AnnualRate: 0.16, MinAmount: 100000, MaxTenureMonths: 60},
}

func FindInvestmentPlan(code string) (InvestmentPlan, bool) {
	for _, plan := range InvestmentPlans {
		if plan.Code == code {
			return plan, true
		}
	}
	return InvestmentPlan{}, false
}

type InvestmentReturns struct {
	Principal      float64   `json:"principal"`
	Interest       float64   `json:"interest"`
	TotalPayout    float64   `json:"totalPayout"`
	TenureMonths   int       `json:"tenureMonths"`
	MaturityDate   time.Time `json:"maturityDate,omitempty"`
	AnnualRate     float64   `json:"annualRate"`
	PlanCode       string    `json:"planCode"`
	WithholdingTax float64   `json:"withholdingTax"`
}

type InvestmentRequest struct {
	PlanCode     string  `json:"planCode"`
	Amount       float64 `json:"amount"`
	TenureMonths int     `json:"tenureMonths"`
}

type Investment struct {
	ID           string    `json:"id"`
	PlanCode     string    `json:"planCode"`
	Amount       float64   `json:"amount"`
	TenureMonths int       `json:"tenureMonths"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

type Collateral struct {
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	EstimatedValue float64 `json:"estimatedValue"`
}

type LoanRequest struct {
	Amount       float64     `json:"amount"`
	TenureMonths int         `json:"tenureMonths"`
	Purpose      string      `json:"purpose"`
	Collateral   *Collateral `json:"collateral,omitempty"`
}

type Loan struct {
	ID           string      `json:"id"`
	Amount       float64     `json:"amount"`
	TenureMonths int         `json:"tenureMonths"`
	Purpose      string      `json:"purpose"`
	Status       string      `json:"status"`
	Collateral   *Collateral `json:"collateral,omitempty"`
	CreatedAt    time.Time   `json:"createdAt,omitempty"`
}

type Wallet struct {
	ID            string  `json:"id"`
	Balance       float64 `json:"balance"`
	AccountNumber string  `json:"accountNumber"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
}
