package handler

import (
	"net/http"
	"testing"

	"github.com/cradoe/profilegate/internal/backend"
	"github.com/cradoe/profilegate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completeProfile() *models.Profile {
	return &models.Profile{
		ID: "user-1",
		Personal: &models.Personal{
			FirstName:             "Ada",
			LastName:              "Obi",
			PhoneNumber:           "+2348012345678",
			Email:                 "ada@example.com",
			DateOfBirth:           "1990-04-12",
			BVN:                   "22222222222",
			BVNVerified:           true,
			MaritalStatus:         "SINGLE",
			HighestEducation:      "BSC",
			StreetNo:              "12",
			StreetName:            "Allen Avenue",
			State:                 "Lagos",
			LocalGovernment:       "Ikeja",
			HomeOwnership:         "RENTED",
			YearsInCurrentAddress: 3,
		},
		Employment: &models.Employment{EmploymentStatus: models.EmploymentStatusStudent},
		NextOfKin: &models.NextOfKin{
			FirstName:    "Chidi",
			LastName:     "Obi",
			PhoneNumber:  "+2348098765432",
			Relationship: "BROTHER",
			Address:      "5 Awolowo Road",
		},
		Guarantor: &models.Guarantor{
			FirstName:      "Ngozi",
			LastName:       "Eze",
			PhoneNumber:    "+2348011112222",
			Relationship:   "AUNT",
			Address:        "9 Broad Street",
			Occupation:     "Trader",
			Identification: "https://files.example.com/g1",
		},
		BankAccounts: []models.BankAccount{
			{ID: "ba-1", AccountType: models.BankAccountTypePersonal, AccountName: "Ada Obi", AccountNumber: "0123456789", BankName: "GTBank", IsDefault: true},
		},
		Documents: []models.Document{
			{ID: "d1", Type: models.DocumentUtilityBill},
			{ID: "d2", Type: models.DocumentIDDocument},
			{ID: "d3", Type: models.DocumentBankStatement},
		},
	}
}

func TestProfileCompletion(t *testing.T) {
	t.Run("partial profile is not eligible", func(t *testing.T) {
		env := newTestEnv(t)
		env.api.On("GetProfile", mock.Anything, env.token).Return(partialProfile(), nil).Once()

		rr := env.do(t, http.MethodGet, "/api/profile/completion", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		data := dataOf(t, rr)
		assert.Equal(t, true, data["loaded"])
		assert.Equal(t, false, data["allFormsCompleted"])
		assert.Equal(t, "employment", data["employmentBranch"])

		documents := data["documents"].(map[string]any)
		assert.Equal(t, true, documents["utilityBill"])
		assert.Equal(t, false, documents["governmentId"])

		personal := data["fields"].(map[string]any)["personal"].(map[string]any)
		assert.Equal(t, "locked", personal["email"])
		assert.Equal(t, "editable", personal["dateOfBirth"])
	})

	t.Run("complete profile is eligible", func(t *testing.T) {
		env := newTestEnv(t)
		env.api.On("GetProfile", mock.Anything, env.token).Return(completeProfile(), nil).Once()

		rr := env.do(t, http.MethodGet, "/api/profile/completion", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		data := dataOf(t, rr)
		assert.Equal(t, true, data["allFormsCompleted"])
		sections := data["sections"].(map[string]any)
		assert.Equal(t, true, sections["employment"])
		assert.Equal(t, false, sections["business"])
	})
}

func TestProfileShow_ServesSnapshotFromCache(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("GetProfile", mock.Anything, env.token).Return(partialProfile(), nil).Once()

	for range 3 {
		rr := env.do(t, http.MethodGet, "/api/profile", nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	env.api.AssertNumberOfCalls(t, "GetProfile", 1)

	env.api.On("GetProfile", mock.Anything, env.token).Return(completeProfile(), nil).Once()
	rr := env.do(t, http.MethodGet, "/api/profile?refresh=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	env.api.AssertNumberOfCalls(t, "GetProfile", 2)
}

func TestProfileShow_BackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"rejected", &backend.Error{Kind: backend.KindRejected, StatusCode: http.StatusUnauthorized, Message: "Session expired"}, http.StatusUnauthorized},
		{"network", &backend.Error{Kind: backend.KindNetwork, StatusCode: http.StatusBadGateway, Message: "Unable to reach the server. Please try again"}, http.StatusBadGateway},
		{"shape", &backend.Error{Kind: backend.KindShape, StatusCode: http.StatusBadGateway, Message: "The server returned an unexpected response. Please try again"}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.api.On("GetProfile", mock.Anything, env.token).Return(nil, tt.err).Once()

			rr := env.do(t, http.MethodGet, "/api/profile", nil)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}
