// Every state transition in the issuance workflow is logged here.
// The entity/entity_id pair is polymorphic so one table serves
// applications, presentations, amendments and officer actions alike.
// The audit trail is what examiners and regulators read back, so
// writers that change decisions must log in the same transaction.
package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type ActivityRepository interface {
	Insert(log *ActivityLog, tx *sqlx.Tx) (string, error)
	GetAllByEntity(entity, entityID string) ([]ActivityLog, error)
}

type ActivityLog struct {
	ID          string    `db:"id"`
	OfficerID   string    `db:"officer_id"`
	Entity      string    `db:"entity"`
	EntityId    string    `db:"entity_id"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

const (
	// ActivityLogApplicationEntity covers intake, screening, decisions and drafts
	ActivityLogApplicationEntity = "application"

	// ActivityLogPresentationEntity covers document submission and examination
	ActivityLogPresentationEntity = "presentation"

	// ActivityLogAmendmentEntity covers amendment requests and approvals
	ActivityLogAmendmentEntity = "amendment"

	// ActivityLogOfficerEntity covers officer sign-in and account actions
	ActivityLogOfficerEntity = "officer"
)

type ActivityRepositoryImpl struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (repo *ActivityRepositoryImpl) Insert(log *ActivityLog, tx *sqlx.Tx) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id string

	query := `
		INSERT INTO activity_logs (officer_id, entity, entity_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	args := []any{log.OfficerID, log.Entity, log.EntityId, log.Description}

	if tx != nil {
		err := tx.QueryRowContext(ctx, query, args...).Scan(&id)
		if err != nil {
			return "", err
		}
		return id, nil
	}

	err := repo.db.GetContext(ctx, &id, query, args...)
	if err != nil {
		return "", err
	}

	return id, nil
}

func (repo *ActivityRepositoryImpl) GetAllByEntity(entity, entityID string) ([]ActivityLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var logs []ActivityLog

	query := `
		SELECT id, officer_id, entity, entity_id, description, created_at
		FROM activity_logs
		WHERE entity=$1 AND entity_id=$2
		ORDER BY created_at DESC`

	err := repo.db.SelectContext(ctx, &logs, query, entity, entityID)
	return logs, err
}
