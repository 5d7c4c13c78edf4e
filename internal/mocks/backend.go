package mocks

import (
	"context"

	"github.com/cradoe/profilegate/internal/backend"
	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
	"github.com/stretchr/testify/mock"
)

type MockBackendAPI struct {
	mock.Mock
}

func (m *MockBackendAPI) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockBackendAPI) UpdateSection(ctx context.Context, token string, section profile.Section, payload map[string]any) error {
	args := m.Called(ctx, token, section, payload)
	return args.Error(0)
}

func (m *MockBackendAPI) UpdateGuarantor(ctx context.Context, token string, fields map[string]any, file *backend.Upload) error {
	args := m.Called(ctx, token, fields, file)
	return args.Error(0)
}

func (m *MockBackendAPI) UploadDocument(ctx context.Context, token string, docType models.DocumentType, file backend.Upload) (*models.Document, error) {
	args := m.Called(ctx, token, docType, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockBackendAPI) ListBankAccounts(ctx context.Context, token string) ([]models.BankAccount, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BankAccount), args.Error(1)
}

func (m *MockBackendAPI) CreateBankAccount(ctx context.Context, token string, account models.BankAccountRequest) (*models.BankAccount, error) {
	args := m.Called(ctx, token, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BankAccount), args.Error(1)
}

func (m *MockBackendAPI) UpdateBankAccount(ctx context.Context, token, id string, account models.BankAccountRequest) (*models.BankAccount, error) {
	args := m.Called(ctx, token, id, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BankAccount), args.Error(1)
}

func (m *MockBackendAPI) DeleteBankAccount(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockBackendAPI) SetDefaultBankAccount(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockBackendAPI) CalculateReturns(ctx context.Context, token string, in models.InvestmentRequest) (*models.InvestmentReturns, error) {
	args := m.Called(ctx, token, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InvestmentReturns), args.Error(1)
}

func (m *MockBackendAPI) ListInvestments(ctx context.Context, token string) ([]models.Investment, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Investment), args.Error(1)
}

func (m *MockBackendAPI) CreateInvestment(ctx context.Context, token string, in models.InvestmentRequest) (*models.Investment, error) {
	args := m.Called(ctx, token, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Investment), args.Error(1)
}

func (m *MockBackendAPI) ListLoans(ctx context.Context, token string) ([]models.Loan, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Loan), args.Error(1)
}

func (m *MockBackendAPI) CreateLoan(ctx context.Context, token string, in models.LoanRequest) (*models.Loan, error) {
	args := m.Called(ctx, token, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockBackendAPI) GetWallet(ctx context.Context, token string) (*models.Wallet, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}
