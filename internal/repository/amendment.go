package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lucidbank/lcbridge/internal/models"
)

type AmendmentRepository interface {
	Insert(a *models.Amendment) (string, error)
	GetOne(applicationID string, sequence int) (*models.Amendment, bool, error)
	GetAllByApplication(applicationID string) ([]models.Amendment, error)
	NextSequence(applicationID string) (int, error)
	Approve(id, mt707 string, approvedAt time.Time, tx *sqlx.Tx) error
}

type AmendmentRepositoryImpl struct {
	db *sqlx.DB
}

func NewAmendmentRepository(db *sqlx.DB) AmendmentRepository {
	return &AmendmentRepositoryImpl{db: db}
}

func (repo *AmendmentRepositoryImpl) Insert(a *models.Amendment) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO amendments (
			application_id, sequence, field, old_value, new_value, reason, fee, status
		) VALUES (
			:application_id, :sequence, :field, :old_value, :new_value, :reason, :fee, :status
		)
		RETURNING id`

	rows, err := repo.db.NamedQueryContext(ctx, query, a)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var id string
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
	}

	return id, rows.Err()
}

func (repo *AmendmentRepositoryImpl) GetOne(applicationID string, sequence int) (*models.Amendment, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var a models.Amendment

	query := `SELECT * FROM amendments WHERE application_id=$1 AND sequence=$2`

	err := repo.db.GetContext(ctx, &a, query, applicationID, sequence)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &a, true, nil
}

func (repo *AmendmentRepositoryImpl) GetAllByApplication(applicationID string) ([]models.Amendment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var amendments []models.Amendment

	query := `SELECT * FROM amendments WHERE application_id=$1 ORDER BY sequence`

	err := repo.db.SelectContext(ctx, &amendments, query, applicationID)
	return amendments, err
}

// NextSequence numbers amendments per application starting at 1.
func (repo *AmendmentRepositoryImpl) NextSequence(applicationID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var next int

	query := `SELECT COALESCE(MAX(sequence), 0) + 1 FROM amendments WHERE application_id=$1`

	err := repo.db.GetContext(ctx, &next, query, applicationID)
	return next, err
}

// Approve marks the amendment approved and stores the rendered MT707.
// Runs in the caller's transaction alongside the field rewrite.
func (repo *AmendmentRepositoryImpl) Approve(id, mt707 string, approvedAt time.Time, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE amendments
		SET status=$1, mt707_text=$2, approved_at=$3
		WHERE id=$4 AND status=$5`

	args := []any{models.AmendmentStatusApproved, mt707, approvedAt, id, models.AmendmentStatusPending}

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = repo.db.ExecContext(ctx, query, args...)
	}
	return err
}
