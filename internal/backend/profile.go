package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
)

var sectionPaths = map[profile.Section]string{
	profile.SectionPersonal:   "/users/profile",
	profile.SectionEmployment: "/users/employment",
	profile.SectionBusiness:   "/users/business",
	profile.SectionNextOfKin:  "/users/next-of-kin",
}

func (c *Client) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	req, err := jsonRequest(http.MethodGet, "/users/profile", "profile", token, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	return normalizeProfile(c.logger, body)
}

// UpdateSection writes one section. The bank account section updates the
// account named by the payload id, or creates one when there is no id. The
// guarantor section goes out as multipart without a file.
func (c *Client) UpdateSection(ctx context.Context, token string, section profile.Section, payload map[string]any) error {
	switch section {
	case profile.SectionGuarantor:
		return c.UpdateGuarantor(ctx, token, payload, nil)
	case profile.SectionBankAccount:
		account := bankAccountRequest(payload)
		if id, _ := payload[profile.BankAccountIDKey].(string); id != "" {
			_, err := c.UpdateBankAccount(ctx, token, id, account)
			return err
		}
		_, err := c.CreateBankAccount(ctx, token, account)
		return err
	}

	path, ok := sectionPaths[section]
	if !ok {
		return ValidationError(fmt.Sprintf("%s cannot be saved as a form", section.Label()))
	}

	req, err := jsonRequest(http.MethodPatch, path, string(section), token, payload)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, req)
	return err
}

// UpdateGuarantor sends the guarantor fields with the optional identification file.
func (c *Client) UpdateGuarantor(ctx context.Context, token string, fields map[string]any, file *Upload) error {
	if file != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.uploadTimeout)
		defer cancel()
	}

	req, err := multipartRequest(http.MethodPatch, "/users/guarantor", "guarantor", token, fields, "identification", file)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, req)
	return err
}

func bankAccountRequest(payload map[string]any) models.BankAccountRequest {
	str := func(key string) string {
		s, _ := payload[key].(string)
		return s
	}

	return models.BankAccountRequest{
		AccountType:   str("accountType"),
		AccountName:   str("accountName"),
		AccountNumber: str("accountNumber"),
		BankName:      str("bankName"),
		BankCode:      str("bankCode"),
	}
}
