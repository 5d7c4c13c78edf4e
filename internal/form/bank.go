package form

import (
	"strings"

	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/validator"
)

// NormalizeBankAccount trims the request and defaults the account type to PERSONAL.
func NormalizeBankAccount(in models.BankAccountRequest) models.BankAccountRequest {
	in.AccountType = normalizeValue("accountType", in.AccountType)
	in.AccountName = strings.TrimSpace(in.AccountName)
	in.AccountNumber = strings.TrimSpace(in.AccountNumber)
	in.BankName = strings.TrimSpace(in.BankName)
	in.BankCode = strings.TrimSpace(in.BankCode)

	if in.AccountType == "" {
		in.AccountType = models.BankAccountTypePersonal
	}
	return in
}

// ValidateBankAccount checks a normalized bank account request. The form save
// and the create route share it.
func ValidateBankAccount(in models.BankAccountRequest) map[string]string {
	var v validator.Validator

	v.CheckField(validator.PermittedValue(in.AccountType, models.BankAccountTypePersonal, models.BankAccountTypeBusiness), "accountType", "Account type must be PERSONAL or BUSINESS")
	v.CheckField(validator.NotBlank(in.AccountName), "accountName", "Account name is required")
	v.CheckField(validator.Matches(in.AccountNumber, validator.RgxAccountNumber), "accountNumber", "Account number must be exactly 10 digits")
	v.CheckField(validator.NotBlank(in.BankName), "bankName", "Bank name is required")
	v.CheckField(validator.NotBlank(in.BankCode), "bankCode", "Bank code is required")

	return v.FieldErrors
}

func (s *Session) bankAccountRequest() models.BankAccountRequest {
	return NormalizeBankAccount(models.BankAccountRequest{
		AccountType:   s.edit.values["accountType"],
		AccountName:   s.edit.values["accountName"],
		AccountNumber: s.edit.values["accountNumber"],
		BankName:      s.edit.values["bankName"],
		BankCode:      s.edit.values["bankCode"],
	})
}
