package repository_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/cradoe/profilegate/internal/backend"
	"github.com/cradoe/profilegate/internal/cache"
	"github.com/cradoe/profilegate/internal/credentials"
	"github.com/cradoe/profilegate/internal/mocks"
	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
	"github.com/cradoe/profilegate/internal/repository"
	"github.com/cradoe/profilegate/internal/stream"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileFixture struct {
	repo      *repository.ProfileRepositoryImpl
	api       *mocks.MockBackendAPI
	publisher *mocks.MockPublisher
	activity  *mocks.MockActivityRepo
	redis     *miniredis.Miniredis
	creds     *credentials.Credentials
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := &profileFixture{
		api:       new(mocks.MockBackendAPI),
		publisher: new(mocks.MockPublisher),
		activity:  new(mocks.MockActivityRepo),
		redis:     mr,
		creds:     &credentials.Credentials{AccessToken: "token", UserID: "user-1"},
	}

	f.repo = repository.NewProfileRepository(repository.ProfileRepositoryOptions{
		API:       f.api,
		Cache:     cache.NewFromClient(client, "test:"),
		Publisher: f.publisher,
		Activity:  f.activity,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func snapshot() *models.Profile {
	return &models.Profile{
		ID:       "user-1",
		Personal: &models.Personal{FirstName: "Ada", Email: "ada@example.com"},
		Documents: []models.Document{
			{ID: "d1", Type: models.DocumentUtilityBill},
		},
	}
}

func TestProfileRepository_LoadUsesCache(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	f.api.On("GetProfile", mock.Anything, "token").Return(snapshot(), nil).Once()

	first, err := f.repo.Load(ctx, f.creds)
	require.NoError(t, err)
	assert.True(t, f.redis.Exists("test:"+repository.SnapshotKey("user-1")))

	second, err := f.repo.Load(ctx, f.creds)
	require.NoError(t, err)
	assert.Equal(t, first.Personal.FirstName, second.Personal.FirstName)

	f.api.AssertNumberOfCalls(t, "GetProfile", 1)
}

func TestProfileRepository_LoadWithoutUserIDSkipsCache(t *testing.T) {
	f := newProfileFixture(t)
	creds := &credentials.Credentials{AccessToken: "opaque"}

	f.api.On("GetProfile", mock.Anything, "opaque").Return(snapshot(), nil)

	_, err := f.repo.Load(context.Background(), creds)
	require.NoError(t, err)
	_, err = f.repo.Load(context.Background(), creds)
	require.NoError(t, err)

	f.api.AssertNumberOfCalls(t, "GetProfile", 2)
	assert.Empty(t, f.redis.Keys())
}

func TestProfileRepository_SaveInvalidatesPublishesAndLogs(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()
	payload := map[string]any{"firstName": "Ada"}

	require.NoError(t, f.redis.Set("test:"+repository.SnapshotKey("user-1"), `{"id":"user-1"}`))

	f.api.On("UpdateSection", mock.Anything, "token", profile.SectionPersonal, payload).Return(nil)
	f.publisher.On("Publish", mock.Anything, stream.ProfileUpdatedTopic, "user-1", mock.MatchedBy(func(value []byte) bool {
		event, err := stream.DecodeProfileUpdated(value)
		return err == nil && event.UserID == "user-1" && event.Section == "personal"
	})).Return(nil)
	f.activity.On("Insert", mock.Anything, mock.MatchedBy(func(log *repository.ActivityLog) bool {
		return log.Entity == repository.ActivityLogProfileEntity && log.EntityId == "personal"
	})).Return(&repository.ActivityLog{ID: "log-1"}, nil)

	require.NoError(t, f.repo.Save(ctx, f.creds, profile.SectionPersonal, payload))

	assert.False(t, f.redis.Exists("test:"+repository.SnapshotKey("user-1")))
	f.api.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.activity.AssertExpectations(t)
}

func TestProfileRepository_SaveFailureKeepsCache(t *testing.T) {
	f := newProfileFixture(t)
	rejected := backend.ValidationError("bad")

	require.NoError(t, f.redis.Set("test:"+repository.SnapshotKey("user-1"), `{"id":"user-1"}`))
	f.api.On("UpdateSection", mock.Anything, "token", profile.SectionEmployment, mock.Anything).Return(rejected)

	err := f.repo.Save(context.Background(), f.creds, profile.SectionEmployment, map[string]any{})
	assert.ErrorIs(t, err, rejected)

	assert.True(t, f.redis.Exists("test:"+repository.SnapshotKey("user-1")))
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.activity.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestProfileRepository_PublishFailureIsNotFatal(t *testing.T) {
	f := newProfileFixture(t)

	f.api.On("UpdateSection", mock.Anything, "token", profile.SectionNextOfKin, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	f.activity.On("Insert", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	err := f.repo.Save(context.Background(), f.creds, profile.SectionNextOfKin, map[string]any{})
	assert.NoError(t, err)
}

func TestProfileRepository_UploadDocumentChecksLockFirst(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	f.api.On("GetProfile", mock.Anything, "token").Return(snapshot(), nil)

	_, err := f.repo.UploadDocument(ctx, f.creds, profile.SlotUtilityBill, backend.Upload{Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, profile.ErrDocumentLocked)

	_, err = f.repo.UploadDocument(ctx, f.creds, profile.Slot("selfie"), backend.Upload{Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, profile.ErrUnknownSlot)

	f.api.AssertNotCalled(t, "UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileRepository_UploadDocument(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()
	upload := backend.Upload{Filename: "id.png", Body: strings.NewReader("png")}

	f.api.On("GetProfile", mock.Anything, "token").Return(snapshot(), nil)
	f.api.On("UploadDocument", mock.Anything, "token", models.DocumentIDDocument, upload).
		Return(&models.Document{ID: "d2", Type: models.DocumentIDDocument}, nil)
	f.publisher.On("Publish", mock.Anything, stream.ProfileUpdatedTopic, "user-1", mock.Anything).Return(nil)
	f.activity.On("Insert", mock.Anything, mock.MatchedBy(func(log *repository.ActivityLog) bool {
		return log.Entity == repository.ActivityLogDocumentEntity && log.EntityId == "ID_DOCUMENT"
	})).Return(&repository.ActivityLog{ID: "log-1"}, nil)

	doc, err := f.repo.UploadDocument(ctx, f.creds, profile.SlotGovernmentID, upload)
	require.NoError(t, err)
	assert.Equal(t, "d2", doc.ID)
	assert.False(t, f.redis.Exists("test:"+repository.SnapshotKey("user-1")))
}

func TestProfileRepository_Lock(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	release, err := f.repo.Lock(ctx, f.creds, "personal")
	require.NoError(t, err)
	assert.True(t, f.redis.Exists("test:save-lock:user-1:personal"))

	_, err = f.repo.Lock(ctx, f.creds, "personal")
	assert.ErrorIs(t, err, profile.ErrSaveInProgress)

	other, err := f.repo.Lock(ctx, f.creds, "employment")
	require.NoError(t, err)
	other()

	release()
	assert.False(t, f.redis.Exists("test:save-lock:user-1:personal"))

	release, err = f.repo.Lock(ctx, f.creds, "personal")
	require.NoError(t, err)
	release()
}

func TestProfileRepository_LockReleaseKeepsOtherOwner(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	release, err := f.repo.Lock(ctx, f.creds, "personal")
	require.NoError(t, err)

	// the lock expired and another request took it
	require.NoError(t, f.redis.Set("test:save-lock:user-1:personal", "other-request"))
	release()

	value, err := f.redis.Get("test:save-lock:user-1:personal")
	require.NoError(t, err)
	assert.Equal(t, "other-request", value)
}

func TestProfileRepository_UploadDocumentHeldSlot(t *testing.T) {
	f := newProfileFixture(t)
	require.NoError(t, f.redis.Set("test:save-lock:user-1:document:governmentId", "other-request"))

	_, err := f.repo.UploadDocument(context.Background(), f.creds, profile.SlotGovernmentID, backend.Upload{Body: strings.NewReader("x")})

	assert.ErrorIs(t, err, profile.ErrSaveInProgress)
	f.api.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	f.api.AssertNotCalled(t, "UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileRepository_UploadDocumentSurvivesCacheOutage(t *testing.T) {
	f := newProfileFixture(t)
	upload := backend.Upload{Filename: "id.png", Body: strings.NewReader("png")}

	f.api.On("GetProfile", mock.Anything, "token").Return(snapshot(), nil).Once()
	f.api.On("UploadDocument", mock.Anything, "token", models.DocumentIDDocument, upload).
		Return(&models.Document{ID: "d2", Type: models.DocumentIDDocument}, nil).Once()
	f.publisher.On("Publish", mock.Anything, stream.ProfileUpdatedTopic, "user-1", mock.Anything).Return(nil).Once()
	f.activity.On("Insert", mock.Anything, mock.Anything).Return(&repository.ActivityLog{ID: "log-1"}, nil).Once()

	f.redis.SetError("LOADING redis is loading the dataset in memory")

	doc, err := f.repo.UploadDocument(context.Background(), f.creds, profile.SlotGovernmentID, upload)
	require.NoError(t, err)
	assert.Equal(t, "d2", doc.ID)

	f.api.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.activity.AssertExpectations(t)
}

func TestProfileRepository_ChangedReportsInvalidationFailure(t *testing.T) {
	f := newProfileFixture(t)

	f.publisher.On("Publish", mock.Anything, stream.ProfileUpdatedTopic, "user-1", mock.Anything).Return(nil).Once()
	f.activity.On("Insert", mock.Anything, mock.Anything).Return(&repository.ActivityLog{ID: "log-1"}, nil).Once()
	f.redis.SetError("LOADING redis is loading the dataset in memory")

	err := f.repo.Changed(context.Background(), f.creds, repository.Change{
		Section:  profile.SectionPersonal,
		Entity:   repository.ActivityLogProfileEntity,
		EntityID: "personal",
	})

	assert.Error(t, err)
	f.publisher.AssertExpectations(t)
	f.activity.AssertExpectations(t)
}
