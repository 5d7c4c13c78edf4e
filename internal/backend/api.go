package backend

import (
	"context"

	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
)

// API is the set of backend calls the gateway makes. *Client implements it.
type API interface {
	GetProfile(ctx context.Context, token string) (*models.Profile, error)
	UpdateSection(ctx context.Context, token string, section profile.Section, payload map[string]any) error
	UpdateGuarantor(ctx context.Context, token string, fields map[string]any, file *Upload) error
	UploadDocument(ctx context.Context, token string, docType models.DocumentType, file Upload) (*models.Document, error)

	ListBankAccounts(ctx context.Context, token string) ([]models.BankAccount, error)
	CreateBankAccount(ctx context.Context, token string, account models.BankAccountRequest) (*models.BankAccount, error)
	UpdateBankAccount(ctx context.Context, token, id string, account models.BankAccountRequest) (*models.BankAccount, error)
	DeleteBankAccount(ctx context.Context, token, id string) error
	SetDefaultBankAccount(ctx context.Context, token, id string) error

	CalculateReturns(ctx context.Context, token string, in models.InvestmentRequest) (*models.InvestmentReturns, error)
	ListInvestments(ctx context.Context, token string) ([]models.Investment, error)
	CreateInvestment(ctx context.Context, token string, in models.InvestmentRequest) (*models.Investment, error)
	ListLoans(ctx context.Context, token string) ([]models.Loan, error)
	CreateLoan(ctx context.Context, token string, in models.LoanRequest) (*models.Loan, error)
	GetWallet(ctx context.Context, token string) (*models.Wallet, error)
}

var _ API = (*Client)(nil)
