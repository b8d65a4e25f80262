package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lucidbank/lcbridge/internal/models"
)

type DiscrepancyRepository interface {
	ReplaceForPresentation(presentationID string, items []models.Discrepancy, tx *sqlx.Tx) error
	GetAllByPresentation(presentationID string) ([]models.Discrepancy, error)
	GetAllByApplication(applicationID string) ([]models.Discrepancy, error)
	Resolve(id, resolution string) error
}

type DiscrepancyRepositoryImpl struct {
	db *sqlx.DB
}

func NewDiscrepancyRepository(db *sqlx.DB) DiscrepancyRepository {
	return &DiscrepancyRepositoryImpl{db: db}
}

// ReplaceForPresentation deletes every stored discrepancy for the
// presentation and inserts the fresh findings. Re-running an examination
// is therefore idempotent; stale rows never survive a rerun.
func (repo *DiscrepancyRepositoryImpl) ReplaceForPresentation(presentationID string, items []models.Discrepancy, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	ownTx := tx == nil
	if ownTx {
		var err error
		tx, err = repo.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()
	}

	deleteQuery := `DELETE FROM discrepancies WHERE presentation_id=$1`
	if _, err := tx.ExecContext(ctx, deleteQuery, presentationID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO discrepancies (
			application_id, presentation_id, field, lc_value, doc_value,
			severity, rule, description, resolution
		) VALUES (
			:application_id, :presentation_id, :field, :lc_value, :doc_value,
			:severity, :rule, :description, :resolution
		)`

	for i := range items {
		if _, err := tx.NamedExecContext(ctx, insertQuery, &items[i]); err != nil {
			return err
		}
	}

	if ownTx {
		return tx.Commit()
	}
	return nil
}

func (repo *DiscrepancyRepositoryImpl) GetAllByPresentation(presentationID string) ([]models.Discrepancy, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var discrepancies []models.Discrepancy

	query := `SELECT * FROM discrepancies WHERE presentation_id=$1 ORDER BY created_at, field`

	err := repo.db.SelectContext(ctx, &discrepancies, query, presentationID)
	return discrepancies, err
}

func (repo *DiscrepancyRepositoryImpl) GetAllByApplication(applicationID string) ([]models.Discrepancy, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var discrepancies []models.Discrepancy

	query := `SELECT * FROM discrepancies WHERE application_id=$1 ORDER BY created_at, field`

	err := repo.db.SelectContext(ctx, &discrepancies, query, applicationID)
	return discrepancies, err
}

func (repo *DiscrepancyRepositoryImpl) Resolve(id, resolution string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE discrepancies SET resolution=$1 WHERE id=$2`

	_, err := repo.db.ExecContext(ctx, query, resolution, id)
	return err
}
