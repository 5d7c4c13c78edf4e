package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cradoe/profilegate/internal/cache"
	"github.com/cradoe/profilegate/internal/credentials"
	"github.com/cradoe/profilegate/internal/errHandler"
	"github.com/cradoe/profilegate/internal/helper"
	"github.com/cradoe/profilegate/internal/middleware"
	"github.com/cradoe/profilegate/internal/mocks"
	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/repository"
	"github.com/pascaldekloe/jwt"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	api       *mocks.MockBackendAPI
	publisher *mocks.MockPublisher
	activity  *mocks.MockActivityRepo
	redis     *miniredis.Miniredis
	handler   http.Handler
	token     string
}

func signedToken(t *testing.T, subject string) string {
	t.Helper()

	var claims jwt.Claims
	claims.Subject = subject
	claims.Issued = jwt.NewNumericTime(time.Now().Add(-time.Minute))
	claims.Expires = jwt.NewNumericTime(time.Now().Add(time.Hour))

	token, err := claims.HMACSign(jwt.HS256, []byte("backend-secret"))
	require.NoError(t, err)
	return string(token)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	snapshotCache := cache.NewFromClient(client, "test:")

	env := &testEnv{
		api:       new(mocks.MockBackendAPI),
		publisher: new(mocks.MockPublisher),
		activity:  new(mocks.MockActivityRepo),
		redis:     mr,
		token:     signedToken(t, "user-1"),
	}

	env.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	env.activity.On("Insert", mock.Anything, mock.Anything).Return(&repository.ActivityLog{ID: "log-1"}, nil).Maybe()

	var wg sync.WaitGroup
	errs := errHandler.New("", nil, logger, helper.New("http://localhost", &wg, logger))
	store := credentials.NewRedisStore(snapshotCache)

	h := NewRouteHandler(&RouteHandler{
		ErrHandler: errs,
		Profiles: repository.NewProfileRepository(repository.ProfileRepositoryOptions{
			API:       env.api,
			Cache:     snapshotCache,
			Publisher: env.publisher,
			Activity:  env.activity,
			Logger:    logger,
		}),
		Activity: env.activity,
		API:      env.api,
		Store:    store,
		Config:   mocks.MockConfig(),
		Logger:   logger,
	})

	mid := middleware.New(errs, logger, store)
	protected := func(fn http.HandlerFunc) http.Handler {
		return mid.RequireAuthenticatedUser(fn)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/session", h.HandleSessionCreate)
	mux.HandleFunc("GET /api/auth/session", h.HandleSessionShow)
	mux.HandleFunc("DELETE /api/auth/session", h.HandleSessionDelete)
	mux.Handle("GET /api/profile", protected(h.HandleProfileShow))
	mux.Handle("GET /api/profile/completion", protected(h.HandleProfileCompletion))
	mux.Handle("GET /api/profile/forms/{section}", protected(h.HandleFormShow))
	mux.Handle("PATCH /api/profile/forms/{section}", protected(h.HandleFormUpdate))
	mux.Handle("PATCH /api/profile/guarantor", protected(h.HandleGuarantorUpdate))
	mux.Handle("POST /api/bank-accounts", protected(h.HandleBankAccountCreate))
	mux.Handle("POST /api/documents/{slot}", protected(h.HandleDocumentUpload))
	mux.Handle("POST /api/investments/calculate-returns", protected(h.HandleInvestmentReturns))
	mux.Handle("POST /api/loans", protected(h.HandleLoanCreate))
	mux.Handle("GET /api/wallet", protected(h.HandleWallet))

	env.handler = mid.RequestID(mid.RecoverPanic(mid.Authenticate(mux)))
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, path, reader)
	if env.token != "" {
		req.Header.Set("Authorization", "Bearer "+env.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func dataOf(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	data, ok := decodeBody(t, rr)["data"].(map[string]any)
	require.True(t, ok, rr.Body.String())
	return data
}

// partialProfile has personal details partly filled and nothing else.
func partialProfile() *models.Profile {
	return &models.Profile{
		ID: "user-1",
		Personal: &models.Personal{
			FirstName:   "Ada",
			LastName:    "Obi",
			PhoneNumber: "+2348012345678",
			Email:       "ada@example.com",
			BVN:         "22222222222",
		},
		BankAccounts: []models.BankAccount{},
		Documents: []models.Document{
			{ID: "d1", Type: models.DocumentUtilityBill},
		},
	}
}
