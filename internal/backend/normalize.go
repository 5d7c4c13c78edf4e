package backend

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/cradoe/profilegate/internal/metrics"
	"github.com/cradoe/profilegate/internal/models"
)

// The backend does not use one envelope consistently: the same payload arrives
// as {"data": {"user": ...}}, {"data": ...}, {"user": ...} or bare. Every endpoint
// maps its wire shape to a fixed internal type here and nowhere else.

const canonicalPath = "data"

var errNoUsableData = errors.New("no usable data in response")

type candidate struct {
	path  string
	value any
}

// candidates lists the places a payload may sit, most specific first.
func candidates(root any, keys []string) []candidate {
	var found []candidate

	object, ok := root.(map[string]any)
	if !ok {
		return append(found, candidate{path: "", value: root})
	}

	if data, ok := object["data"]; ok && data != nil {
		if inner, ok := data.(map[string]any); ok {
			for _, key := range keys {
				if v, ok := inner[key]; ok && v != nil {
					found = append(found, candidate{path: "data." + key, value: v})
				}
			}
		}
		found = append(found, candidate{path: canonicalPath, value: data})
	}

	for _, key := range keys {
		if v, ok := object[key]; ok && v != nil {
			found = append(found, candidate{path: key, value: v})
		}
	}

	return append(found, candidate{path: "", value: root})
}

// extract decodes the first candidate that usable accepts. Anything other than
// the canonical envelope is accepted with a warning; a ShapeError is returned only
// when no candidate yields usable data.
func extract[T any](logger *slog.Logger, endpoint string, body []byte, usable func(T) bool, keys ...string) (T, error) {
	var zero T

	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return zero, shapeError(endpoint, err)
	}

	for _, c := range candidates(root, keys) {
		js, err := json.Marshal(c.value)
		if err != nil {
			continue
		}

		var out T
		if err := json.Unmarshal(js, &out); err != nil {
			continue
		}
		if !usable(out) {
			continue
		}

		if c.path != canonicalPath {
			metrics.ShapeCoercions.WithLabelValues(endpoint, c.path).Inc()
			logger.Warn("coerced backend response shape", "endpoint", endpoint, "path", c.path)
		}
		return out, nil
	}

	return zero, shapeError(endpoint, errNoUsableData)
}

// profileWire accepts both the nested layout and the older flat layout where
// personal fields sit at the top level of the user object.
type profileWire struct {
	models.Profile
	models.Personal
	UserDocuments []models.Document `json:"userDocuments"`
}

func normalizeProfile(logger *slog.Logger, body []byte) (*models.Profile, error) {
	wire, err := extract(logger, "profile", body, func(w profileWire) bool {
		return w.Profile.ID != "" || w.Profile.Personal != nil || w.Personal.Email != "" || w.Personal.PhoneNumber != ""
	}, "user", "profile")
	if err != nil {
		return nil, err
	}

	p := wire.Profile
	if p.Personal == nil && (wire.Personal.Email != "" || wire.Personal.PhoneNumber != "") {
		logger.Warn("coerced flat personal fields", "endpoint", "profile")
		personal := wire.Personal
		p.Personal = &personal
	}
	if len(p.Documents) == 0 && len(wire.UserDocuments) > 0 {
		p.Documents = wire.UserDocuments
	}
	if p.BankAccounts == nil {
		p.BankAccounts = []models.BankAccount{}
	}
	if p.Documents == nil {
		p.Documents = []models.Document{}
	}

	return &p, nil
}

func normalizeBankAccounts(logger *slog.Logger, body []byte) ([]models.BankAccount, error) {
	return extract(logger, "bank-accounts", body, func(accounts []models.BankAccount) bool {
		return accounts != nil
	}, "bankAccounts", "accounts")
}

func normalizeBankAccount(logger *slog.Logger, body []byte) (*models.BankAccount, error) {
	account, err := extract(logger, "bank-account", body, func(a models.BankAccount) bool {
		return a.ID != "" || a.AccountNumber != ""
	}, "bankAccount", "account")
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func normalizeDocument(logger *slog.Logger, body []byte) (*models.Document, error) {
	doc, err := extract(logger, "upload-document", body, func(d models.Document) bool {
		return d.ID != "" || d.URL != ""
	}, "document")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func normalizeReturns(logger *slog.Logger, body []byte) (*models.InvestmentReturns, error) {
	returns, err := extract(logger, "calculate-returns", body, func(r models.InvestmentReturns) bool {
		return r.TotalPayout > 0 || r.Interest > 0
	}, "returns", "calculation")
	if err != nil {
		return nil, err
	}
	return &returns, nil
}

func normalizeInvestments(logger *slog.Logger, body []byte) ([]models.Investment, error) {
	return extract(logger, "investments", body, func(items []models.Investment) bool {
		return items != nil
	}, "investments", "items")
}

func normalizeInvestment(logger *slog.Logger, body []byte) (*models.Investment, error) {
	investment, err := extract(logger, "investment", body, func(i models.Investment) bool {
		return i.ID != ""
	}, "investment")
	if err != nil {
		return nil, err
	}
	return &investment, nil
}

func normalizeLoans(logger *slog.Logger, body []byte) ([]models.Loan, error) {
	return extract(logger, "loans", body, func(items []models.Loan) bool {
		return items != nil
	}, "loans", "items")
}

func normalizeLoan(logger *slog.Logger, body []byte) (*models.Loan, error) {
	loan, err := extract(logger, "loan", body, func(l models.Loan) bool {
		return l.ID != ""
	}, "loan")
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func normalizeWallet(logger *slog.Logger, body []byte) (*models.Wallet, error) {
	wallet, err := extract(logger, "wallet", body, func(w models.Wallet) bool {
		return w.ID != "" || w.AccountNumber != ""
	}, "wallet")
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}
