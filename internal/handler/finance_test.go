package handler

import (
	"net/http"
	"testing"

	"github.com/cradoe/profilegate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBankAccountCreate_Validation(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/bank-accounts", map[string]any{
		"accountType":   "SAVINGS",
		"accountName":   "Ada Obi",
		"accountNumber": "12345",
		"bankName":      "",
		"bankCode":      "058",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	errs := decodeBody(t, rr)["errors"].(map[string]any)
	assert.Contains(t, errs, "accountType")
	assert.Contains(t, errs, "accountNumber")
	assert.Contains(t, errs, "bankName")
	env.api.AssertNotCalled(t, "CreateBankAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestBankAccountCreate_InvalidatesSnapshot(t *testing.T) {
	env := newTestEnv(t)

	env.api.On("GetProfile", mock.Anything, env.token).Return(partialProfile(), nil).Once()
	rr := env.do(t, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, env.redis.Exists("test:profile:user-1"))

	env.api.On("CreateBankAccount", mock.Anything, env.token, models.BankAccountRequest{
		AccountType:   models.BankAccountTypePersonal,
		AccountName:   "Ada Obi",
		AccountNumber: "0123456789",
		BankName:      "GTBank",
		BankCode:      "058",
	}).Return(&models.BankAccount{ID: "ba-1", AccountNumber: "0123456789"}, nil).Once()

	rr = env.do(t, http.MethodPost, "/api/bank-accounts", map[string]any{
		"accountName":   "Ada Obi",
		"accountNumber": " 0123456789 ",
		"bankName":      "GTBank",
		"bankCode":      "058",
	})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "ba-1", dataOf(t, rr)["id"])
	assert.False(t, env.redis.Exists("test:profile:user-1"))
	env.api.AssertExpectations(t)
}

func TestLoanCreate_CollateralAboveThreshold(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/loans", map[string]any{
		"amount":       2_000_000,
		"tenureMonths": 12,
		"purpose":      "Shop expansion",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["errors"], "collateral")

	rr = env.do(t, http.MethodPost, "/api/loans", map[string]any{
		"amount":       2_000_000,
		"tenureMonths": 12,
		"purpose":      "Shop expansion",
		"collateral":   map[string]any{"type": "VEHICLE", "estimatedValue": 1_500_000},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["errors"], "collateral.estimatedValue")
	env.api.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanCreate_BelowThresholdNeedsNoCollateral(t *testing.T) {
	env := newTestEnv(t)

	env.api.On("CreateLoan", mock.Anything, env.token, mock.MatchedBy(func(in models.LoanRequest) bool {
		return in.Amount == 500_000 && in.Collateral == nil
	})).Return(&models.Loan{ID: "loan-1", Amount: 500_000, Status: "PENDING"}, nil).Once()

	rr := env.do(t, http.MethodPost, "/api/loans", map[string]any{
		"amount":       500_000,
		"tenureMonths": 6,
		"purpose":      "School fees",
	})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "loan-1", dataOf(t, rr)["id"])
	env.activity.AssertCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestInvestmentReturns(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		invalid []string
	}{
		{
			name:    "unknown plan",
			input:   map[string]any{"planCode": "CRYPTO", "amount": 50_000, "tenureMonths": 12},
			invalid: []string{"planCode"},
		},
		{
			name:    "below plan minimum",
			input:   map[string]any{"planCode": "HIGH_YIELD", "amount": 50_000, "tenureMonths": 12},
			invalid: []string{"amount"},
		},
		{
			name:    "tenure above plan maximum",
			input:   map[string]any{"planCode": "FIXED_DEPOSIT", "amount": 50_000, "tenureMonths": 36},
			invalid: []string{"tenureMonths"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rr := env.do(t, http.MethodPost, "/api/investments/calculate-returns", tt.input)

			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			errs := decodeBody(t, rr)["errors"].(map[string]any)
			for _, field := range tt.invalid {
				assert.Contains(t, errs, field)
			}
			env.api.AssertNotCalled(t, "CalculateReturns", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("valid", func(t *testing.T) {
		env := newTestEnv(t)
		env.api.On("CalculateReturns", mock.Anything, env.token, models.InvestmentRequest{
			PlanCode:     "FIXED_DEPOSIT",
			Amount:       100_000,
			TenureMonths: 12,
		}).Return(&models.InvestmentReturns{Principal: 100_000, Interest: 12_000, TotalPayout: 112_000}, nil).Once()

		rr := env.do(t, http.MethodPost, "/api/investments/calculate-returns", map[string]any{
			"planCode":     "FIXED_DEPOSIT",
			"amount":       100_000,
			"tenureMonths": 12,
		})

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, float64(112_000), dataOf(t, rr)["totalPayout"])
	})
}

func TestWallet_BackendUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("GetWallet", mock.Anything, env.token).Return(nil, assert.AnError).Once()

	rr := env.do(t, http.MethodGet, "/api/wallet", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
