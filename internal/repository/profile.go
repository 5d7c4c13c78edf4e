package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cradoe/profilegate/internal/backend"
	"github.com/cradoe/profilegate/internal/cache"
	appcontext "github.com/cradoe/profilegate/internal/context"
	"github.com/cradoe/profilegate/internal/credentials"
	"github.com/cradoe/profilegate/internal/metrics"
	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
	"github.com/cradoe/profilegate/internal/stream"
	"github.com/google/uuid"
)

const (
	DefaultSnapshotTTL = 5 * time.Minute

	// saveLockTTL outlives the longest backend call, uploads included.
	saveLockTTL = 2 * time.Minute
)

// ProfileRepository is the gateway's view of the backend profile. The backend stays
// the source of truth; the snapshot cache only saves a round trip between writes.
type ProfileRepository interface {
	Load(ctx context.Context, creds *credentials.Credentials) (*models.Profile, error)
	Refresh(ctx context.Context, creds *credentials.Credentials) (*models.Profile, error)
	Save(ctx context.Context, creds *credentials.Credentials, section profile.Section, payload map[string]any) error
	SaveGuarantor(ctx context.Context, creds *credentials.Credentials, fields map[string]any, file *backend.Upload) error
	UploadDocument(ctx context.Context, creds *credentials.Credentials, slot profile.Slot, file backend.Upload) (*models.Document, error)
	Changed(ctx context.Context, creds *credentials.Credentials, change Change) error
	Lock(ctx context.Context, creds *credentials.Credentials, scope string) (func(), error)
}

// Change describes a successful write for the event stream and the activity log.
// An empty Section means the profile snapshot itself is unaffected.
type Change struct {
	Section     profile.Section
	Entity      string
	EntityID    string
	Description string
}

type ProfileRepositoryImpl struct {
	api       backend.API
	cache     *cache.Cache
	publisher stream.Publisher
	activity  ActivityRepository
	logger    *slog.Logger
	ttl       time.Duration
}

type ProfileRepositoryOptions struct {
	API         backend.API
	Cache       *cache.Cache
	Publisher   stream.Publisher
	Activity    ActivityRepository
	Logger      *slog.Logger
	SnapshotTTL time.Duration
}

func NewProfileRepository(opts ProfileRepositoryOptions) *ProfileRepositoryImpl {
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = DefaultSnapshotTTL
	}

	return &ProfileRepositoryImpl{
		api:       opts.API,
		cache:     opts.Cache,
		publisher: opts.Publisher,
		activity:  opts.Activity,
		logger:    opts.Logger,
		ttl:       opts.SnapshotTTL,
	}
}

func SnapshotKey(userID string) string {
	return "profile:" + userID
}

func saveLockKey(userID, scope string) string {
	return "save-lock:" + userID + ":" + scope
}

// Lock marks a write of scope as in flight for the user until the returned
// release func is called. A second caller gets profile.ErrSaveInProgress.
// When redis is unavailable the write goes ahead without the lock.
func (repo *ProfileRepositoryImpl) Lock(ctx context.Context, creds *credentials.Credentials, scope string) (func(), error) {
	if creds.UserID == "" {
		return func() {}, nil
	}

	key := saveLockKey(creds.UserID, scope)
	owner := uuid.NewString()

	acquired, err := repo.cache.SetNX(ctx, key, owner, saveLockTTL)
	if err != nil {
		repo.logger.Warn("acquiring save lock", "user_id", creds.UserID, "scope", scope, "error", err)
		return func() {}, nil
	}
	if !acquired {
		return nil, profile.ErrSaveInProgress
	}

	release := func() {
		// the request may already be cancelled; the lock still has to go
		err := repo.cache.DeleteIfEquals(context.WithoutCancel(ctx), key, owner)
		if err != nil {
			repo.logger.Warn("releasing save lock", "user_id", creds.UserID, "scope", scope, "error", err)
		}
	}
	return release, nil
}

// Load serves the cached snapshot when one exists, otherwise fetches it.
func (repo *ProfileRepositoryImpl) Load(ctx context.Context, creds *credentials.Credentials) (*models.Profile, error) {
	if creds.UserID != "" {
		var p models.Profile
		err := repo.cache.GetJSON(ctx, SnapshotKey(creds.UserID), &p)
		switch {
		case err == nil:
			metrics.SnapshotCache.WithLabelValues("hit").Inc()
			return &p, nil
		case errors.Is(err, cache.ErrMiss):
			metrics.SnapshotCache.WithLabelValues("miss").Inc()
		default:
			metrics.SnapshotCache.WithLabelValues("error").Inc()
			repo.logger.Warn("reading profile snapshot", "user_id", creds.UserID, "error", err)
		}
	}

	return repo.Refresh(ctx, creds)
}

// Refresh always fetches the full snapshot from the backend and rewrites the cache.
func (repo *ProfileRepositoryImpl) Refresh(ctx context.Context, creds *credentials.Credentials) (*models.Profile, error) {
	p, err := repo.api.GetProfile(ctx, creds.AccessToken)
	if err != nil {
		return nil, err
	}

	if creds.UserID != "" {
		if err := repo.cache.SetJSON(ctx, SnapshotKey(creds.UserID), p, repo.ttl); err != nil {
			repo.logger.Warn("writing profile snapshot", "user_id", creds.UserID, "error", err)
		}
	}

	return p, nil
}

// Save writes one section through to the backend. The caller re-fetches the
// snapshot afterwards with Refresh.
func (repo *ProfileRepositoryImpl) Save(ctx context.Context, creds *credentials.Credentials, section profile.Section, payload map[string]any) error {
	err := repo.api.UpdateSection(ctx, creds.AccessToken, section, payload)
	if err != nil {
		metrics.SectionSaves.WithLabelValues(string(section), "failed").Inc()
		return err
	}
	metrics.SectionSaves.WithLabelValues(string(section), "saved").Inc()

	repo.changed(ctx, creds, Change{
		Section:     section,
		Entity:      ActivityLogProfileEntity,
		EntityID:    string(section),
		Description: "updated " + section.Label(),
	})
	return nil
}

func (repo *ProfileRepositoryImpl) SaveGuarantor(ctx context.Context, creds *credentials.Credentials, fields map[string]any, file *backend.Upload) error {
	err := repo.api.UpdateGuarantor(ctx, creds.AccessToken, fields, file)
	if err != nil {
		metrics.SectionSaves.WithLabelValues(string(profile.SectionGuarantor), "failed").Inc()
		return err
	}
	metrics.SectionSaves.WithLabelValues(string(profile.SectionGuarantor), "saved").Inc()

	repo.changed(ctx, creds, Change{
		Section:     profile.SectionGuarantor,
		Entity:      ActivityLogProfileEntity,
		EntityID:    string(profile.SectionGuarantor),
		Description: "updated " + profile.SectionGuarantor.Label(),
	})
	return nil
}

// UploadDocument checks the slot against a freshly fetched snapshot before any
// upload is attempted, so a locked slot never reaches the backend. The check and
// the upload run under the slot's save lock.
func (repo *ProfileRepositoryImpl) UploadDocument(ctx context.Context, creds *credentials.Credentials, slot profile.Slot, file backend.Upload) (*models.Document, error) {
	if _, ok := profile.ParseSlot(string(slot)); !ok {
		return nil, profile.ErrUnknownSlot
	}

	release, err := repo.Lock(ctx, creds, "document:"+string(slot))
	if err != nil {
		return nil, err
	}
	defer release()

	p, err := repo.Refresh(ctx, creds)
	if err != nil {
		return nil, err
	}

	if err := profile.CheckUpload(p, slot); err != nil {
		return nil, err
	}

	doc, err := repo.api.UploadDocument(ctx, creds.AccessToken, slot.DocumentType(), file)
	if err != nil {
		return nil, err
	}

	section := profile.SectionDocuments
	if slot == profile.SlotBankStatement {
		section = profile.SectionBankStatement
	}

	repo.changed(ctx, creds, Change{
		Section:     section,
		Entity:      ActivityLogDocumentEntity,
		EntityID:    string(slot.DocumentType()),
		Description: "uploaded " + string(slot),
	})
	return doc, nil
}

// changed records a write the backend has already accepted. Errors are only logged.
func (repo *ProfileRepositoryImpl) changed(ctx context.Context, creds *credentials.Credentials, change Change) {
	if err := repo.Changed(ctx, creds, change); err != nil {
		repo.logger.Error("invalidating profile snapshot", "user_id", creds.UserID, "section", change.Section, "error", err)
	}
}

// Changed drops the cached snapshot, announces the change and records it.
// Only a failed invalidation is returned; the event is still published so the
// cache worker gets another chance to drop the snapshot. Event and log failures
// are logged.
func (repo *ProfileRepositoryImpl) Changed(ctx context.Context, creds *credentials.Credentials, change Change) error {
	requestID := appcontext.RequestID(ctx)

	var invalidateErr error
	if change.Section != "" && creds.UserID != "" {
		invalidateErr = repo.cache.Delete(ctx, SnapshotKey(creds.UserID))

		if repo.publisher != nil {
			event := stream.ProfileUpdated{
				UserID:     creds.UserID,
				Section:    string(change.Section),
				RequestID:  requestID,
				OccurredAt: time.Now().UTC(),
			}

			value, err := event.Encode()
			if err == nil {
				err = repo.publisher.Publish(ctx, stream.ProfileUpdatedTopic, creds.UserID, value)
			}
			if err != nil {
				repo.logger.Warn("publishing profile event", "user_id", creds.UserID, "section", change.Section, "error", err)
			}
		}
	}

	if repo.activity != nil && creds.UserID != "" {
		_, err := repo.activity.Insert(ctx, &ActivityLog{
			UserID:      creds.UserID,
			Entity:      change.Entity,
			EntityId:    change.EntityID,
			Description: change.Description,
			RequestID:   requestID,
		})
		if err != nil {
			repo.logger.Warn("recording activity", "user_id", creds.UserID, "entity", change.Entity, "error", err)
		}
	}

	return invalidateErr
}
