// Every profile write that passes through the gateway is recorded here.
// The backend owns the profile itself; this table is the gateway's own audit
// trail of who changed which section and when, keyed by the request id that
// was forwarded to the backend.
// entity and entity_id are polymorphic so the same table covers sections,
// documents, bank accounts, investments and loans.
package repository

import (
	"context"
	"time"
)

type ActivityRepository interface {
	Insert(ctx context.Context, log *ActivityLog) (*ActivityLog, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]ActivityLog, error)
}

type ActivityLog struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Entity      string    `db:"entity" json:"entity"`
	EntityId    string    `db:"entity_id" json:"entityId"`
	Description string    `db:"description" json:"description"`
	RequestID   string    `db:"request_id" json:"requestId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

const (
	// ActivityLogProfileEntity is used for form sections; entity_id holds the section name
	ActivityLogProfileEntity = "profile"

	// ActivityLogDocumentEntity is used for document uploads; entity_id holds the document type
	ActivityLogDocumentEntity = "document"

	ActivityLogBankAccountEntity = "bank_account"
	ActivityLogInvestmentEntity  = "investment"
	ActivityLogLoanEntity        = "loan"

	maxActivityLogLimit = 100
)

type ActivityRepositoryImpl struct {
	db *DB
}

func NewActivityRepository(db *DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (repo *ActivityRepositoryImpl) Insert(ctx context.Context, log *ActivityLog) (*ActivityLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO activity_logs (user_id, entity, entity_id, description, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	inserted := *log
	err := repo.db.QueryRowxContext(ctx, query,
		log.UserID,
		log.Entity,
		log.EntityId,
		log.Description,
		log.RequestID,
	).Scan(&inserted.ID, &inserted.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &inserted, nil
}

// ListByUser returns the user's most recent entries, newest first.
func (repo *ActivityRepositoryImpl) ListByUser(ctx context.Context, userID string, limit int) ([]ActivityLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if limit <= 0 || limit > maxActivityLogLimit {
		limit = maxActivityLogLimit
	}

	query := `
		SELECT id, user_id, entity, entity_id, description, request_id, created_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	logs := []ActivityLog{}
	if err := repo.db.SelectContext(ctx, &logs, query, userID, limit); err != nil {
		return nil, err
	}

	return logs, nil
}
