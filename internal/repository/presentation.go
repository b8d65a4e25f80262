package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lucidbank/lcbridge/internal/models"
)

type PresentationRepository interface {
	Insert(p *models.Presentation) (string, error)
	GetOne(id string) (*models.Presentation, bool, error)
	GetAllByApplication(applicationID string) ([]models.Presentation, error)
	UpdateExamination(id, status string, examinedAt time.Time, tx *sqlx.Tx) error
}

type PresentationRepositoryImpl struct {
	db *sqlx.DB
}

func NewPresentationRepository(db *sqlx.DB) PresentationRepository {
	return &PresentationRepositoryImpl{db: db}
}

func (repo *PresentationRepositoryImpl) Insert(p *models.Presentation) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO document_presentations (
			application_id,
			invoice_amount, invoice_currency, invoice_date,
			bl_number, bl_date, vessel,
			shipment_date, port_of_loading, port_of_discharge,
			commercial_invoice, bill_of_lading, packing_list,
			certificate_of_origin, insurance_certificate, inspection_certificate,
			weight_certificate, additional_documents,
			status
		) VALUES (
			:application_id,
			:invoice_amount, :invoice_currency, :invoice_date,
			:bl_number, :bl_date, :vessel,
			:shipment_date, :port_of_loading, :port_of_discharge,
			:commercial_invoice, :bill_of_lading, :packing_list,
			:certificate_of_origin, :insurance_certificate, :inspection_certificate,
			:weight_certificate, :additional_documents,
			:status
		)
		RETURNING id`

	rows, err := repo.db.NamedQueryContext(ctx, query, p)
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

func (repo *PresentationRepositoryImpl) GetOne(id string) (*models.Presentation, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var p models.Presentation

	query := `SELECT * FROM document_presentations WHERE id=$1`

	err := repo.db.GetContext(ctx, &p, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &p, true, nil
}

func (repo *PresentationRepositoryImpl) GetAllByApplication(applicationID string) ([]models.Presentation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var presentations []models.Presentation

	query := `SELECT * FROM document_presentations WHERE application_id=$1 ORDER BY submitted_at DESC`

	err := repo.db.SelectContext(ctx, &presentations, query, applicationID)
	return presentations, err
}

// UpdateExamination records the examiner verdict; it shares a transaction
// with the discrepancy replacement so the two can never drift apart.
func (repo *PresentationRepositoryImpl) UpdateExamination(id, status string, examinedAt time.Time, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE document_presentations SET status=$1, examined_at=$2 WHERE id=$3`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, status, examinedAt, id)
	} else {
		_, err = repo.db.ExecContext(ctx, query, status, examinedAt, id)
	}
	return err
}
