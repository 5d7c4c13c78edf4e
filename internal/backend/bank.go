package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cradoe/profilegate/internal/models"
)

func (c *Client) ListBankAccounts(ctx context.Context, token string) ([]models.BankAccount, error) {
	req, err := jsonRequest(http.MethodGet, "/users/bank-accounts", "bank-accounts", token, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	return normalizeBankAccounts(c.logger, body)
}

func (c *Client) CreateBankAccount(ctx context.Context, token string, account models.BankAccountRequest) (*models.BankAccount, error) {
	req, err := jsonRequest(http.MethodPost, "/users/bank-accounts", "bank-account", token, account)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	return normalizeBankAccount(c.logger, body)
}

func (c *Client) UpdateBankAccount(ctx context.Context, token, id string, account models.BankAccountRequest) (*models.BankAccount, error) {
	req, err := jsonRequest(http.MethodPatch, "/users/bank-accounts/"+url.PathEscape(id), "bank-account-update", token, account)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	return normalizeBankAccount(c.logger, body)
}

func (c *Client) DeleteBankAccount(ctx context.Context, token, id string) error {
	req, err := jsonRequest(http.MethodDelete, "/users/bank-accounts/"+url.PathEscape(id), "bank-account-delete", token, nil)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, req)
	return err
}

func (c *Client) SetDefaultBankAccount(ctx context.Context, token, id string) error {
	req, err := jsonRequest(http.MethodPatch, "/users/bank-accounts/"+url.PathEscape(id)+"/default", "bank-account-default", token, nil)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, req)
	return err
}
