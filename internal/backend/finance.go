package backend

import (
	"context"
	"net/http"

	"github.com/cradoe/profilegate/internal/models"
)

func (c *Client) CalculateReturns(ctx context.Context, token string, in models.InvestmentRequest) (*models.InvestmentReturns, error) {
	req, err := jsonRequest(http.MethodPost, "/investments/calculate-returns", "calculate-returns", token, in)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	returns, err := normalizeReturns(c.logger, body)
	if err != nil {
		return nil, err
	}
	if returns.PlanCode == "" {
		returns.PlanCode = in.PlanCode
	}
	return returns, nil
}

func (c *Client) ListInvestments(ctx context.Context, token string) ([]models.Investment, error) {
	req, err := jsonRequest(http.MethodGet, "/investments", "investments", token, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	return normalizeInvestments(c.logger, body)
}

func (c *Client) CreateInvestment(ctx context.Context, token string, in models.InvestmentRequest) (*models.Investment, error) {
	req, err := jsonRequest(http.MethodPost, "/investments", "investment", token, in)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	return normalizeInvestment(c.logger, body)
}

func (c *Client) ListLoans(ctx context.Context, token string) ([]models.Loan, error) {
	req, err := jsonRequest(http.MethodGet, "/loans", "loans", token, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	return normalizeLoans(c.logger, body)
}

func (c *Client) CreateLoan(ctx context.Context, token string, in models.LoanRequest) (*models.Loan, error) {
	req, err := jsonRequest(http.MethodPost, "/loans", "loan", token, in)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	return normalizeLoan(c.logger, body)
}

func (c *Client) GetWallet(ctx context.Context, token string) (*models.Wallet, error) {
	req, err := jsonRequest(http.MethodGet, "/wallet", "wallet", token, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	return normalizeWallet(c.logger, body)
}
