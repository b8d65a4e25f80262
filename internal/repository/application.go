package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lucidbank/lcbridge/internal/models"
)

var ErrColumnNotAmendable = errors.New("repository: column is not open to amendment")

// amendableColumns whitelists the application columns an approved
// amendment may rewrite. Anything else is rejected outright; the column
// name is interpolated into SQL so the whitelist is load-bearing.
var amendableColumns = map[string]bool{
	"amount":               true,
	"tolerance_pct":        true,
	"expiry_date":          true,
	"latest_shipment_date": true,
	"port_of_loading":      true,
	"port_of_discharge":    true,
	"goods_description":    true,
	"quantity":             true,
	"unit_price":           true,
	"partial_shipment":     true,
	"transshipment":        true,
	"additional_documents": true,
	"special_instructions": true,
}

type ApplicationRepository interface {
	Insert(app *models.LCApplication) (string, error)
	GetOne(id string) (*models.LCApplication, bool, error)
	GetByReference(reference string) (*models.LCApplication, bool, error)
	List(status string) ([]models.LCApplication, error)
	UpdateCompliance(app *models.LCApplication) error
	UpdateDecision(app *models.LCApplication, tx *sqlx.Tx) error
	UpdateDraft(id, lcNumber, draftText string, at time.Time) error
	UpdateDraftPDFPath(id, path string) error
	UpdateMT700(id, mt700 string, at time.Time) error
	UpdateStatus(id, status string) error
	AmendColumn(id, column, value string, tx *sqlx.Tx) error
}

type ApplicationRepositoryImpl struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (repo *ApplicationRepositoryImpl) Insert(app *models.LCApplication) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO lc_applications (
			reference,
			applicant_name, applicant_address, applicant_city, applicant_country,
			applicant_account, applicant_tax_id,
			beneficiary_name, beneficiary_address, beneficiary_city, beneficiary_country,
			beneficiary_bank_name, beneficiary_bank_bic, beneficiary_iban,
			issuing_bank, issuing_bank_bic, advising_bank, advising_bank_bic,
			confirming_bank, negotiating_bank,
			currency, amount, tolerance_pct,
			issue_date, expiry_date, expiry_place, latest_shipment_date,
			incoterms, port_of_loading, port_of_discharge,
			goods_description, quantity, unit_price, hs_code, country_of_origin,
			partial_shipment, transshipment,
			lc_type, payment_terms, required_documents, additional_documents, special_instructions,
			collateral_type, collateral_value,
			fd_number, fd_bank, fd_amount, fd_currency, fd_maturity, fd_lien,
			sec_isin, sec_issuer, sec_market_value, sec_quantity, sec_custodian, sec_volatility, sec_pledged,
			cash_margin_amount,
			annual_turnover, years_in_business, credit_score, existing_bank_limit, composite_rating,
			kyc_status, sanctions_applicant, sanctions_beneficiary, country_risk_status, aml_status,
			stp_decision, status
		) VALUES (
			:reference,
			:applicant_name, :applicant_address, :applicant_city, :applicant_country,
			:applicant_account, :applicant_tax_id,
			:beneficiary_name, :beneficiary_address, :beneficiary_city, :beneficiary_country,
			:beneficiary_bank_name, :beneficiary_bank_bic, :beneficiary_iban,
			:issuing_bank, :issuing_bank_bic, :advising_bank, :advising_bank_bic,
			:confirming_bank, :negotiating_bank,
			:currency, :amount, :tolerance_pct,
			:issue_date, :expiry_date, :expiry_place, :latest_shipment_date,
			:incoterms, :port_of_loading, :port_of_discharge,
			:goods_description, :quantity, :unit_price, :hs_code, :country_of_origin,
			:partial_shipment, :transshipment,
			:lc_type, :payment_terms, :required_documents, :additional_documents, :special_instructions,
			:collateral_type, :collateral_value,
			:fd_number, :fd_bank, :fd_amount, :fd_currency, :fd_maturity, :fd_lien,
			:sec_isin, :sec_issuer, :sec_market_value, :sec_quantity, :sec_custodian, :sec_volatility, :sec_pledged,
			:cash_margin_amount,
			:annual_turnover, :years_in_business, :credit_score, :existing_bank_limit, :composite_rating,
			:kyc_status, :sanctions_applicant, :sanctions_beneficiary, :country_risk_status, :aml_status,
			:stp_decision, :status
		)
		RETURNING id`

	rows, err := repo.db.NamedQueryContext(ctx, query, app)
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

func (repo *ApplicationRepositoryImpl) GetOne(id string) (*models.LCApplication, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var app models.LCApplication

	query := `SELECT * FROM lc_applications WHERE id=$1`

	err := repo.db.GetContext(ctx, &app, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &app, true, nil
}

func (repo *ApplicationRepositoryImpl) GetByReference(reference string) (*models.LCApplication, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var app models.LCApplication

	query := `SELECT * FROM lc_applications WHERE reference=$1`

	err := repo.db.GetContext(ctx, &app, query, reference)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &app, true, nil
}

func (repo *ApplicationRepositoryImpl) List(status string) ([]models.LCApplication, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var apps []models.LCApplication

	if status == "" {
		query := `SELECT * FROM lc_applications ORDER BY created_at DESC LIMIT 100`
		return apps, repo.db.SelectContext(ctx, &apps, query)
	}

	query := `SELECT * FROM lc_applications WHERE status=$1 ORDER BY created_at DESC LIMIT 100`
	return apps, repo.db.SelectContext(ctx, &apps, query, status)
}

func (repo *ApplicationRepositoryImpl) UpdateCompliance(app *models.LCApplication) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE lc_applications
		SET kyc_status=$1, sanctions_applicant=$2, sanctions_beneficiary=$3,
			country_risk_status=$4, aml_status=$5, updated_at=now()
		WHERE id=$6`

	_, err := repo.db.ExecContext(ctx, query,
		app.KYCStatus,
		app.SanctionsApplicant,
		app.SanctionsBeneficiary,
		app.CountryRiskStatus,
		app.AMLStatus,
		app.ID,
	)
	return err
}

// UpdateDecision overwrites the whole STP block. The decision and its
// audit trail must land in the same transaction, so a tx is accepted.
func (repo *ApplicationRepositoryImpl) UpdateDecision(app *models.LCApplication, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE lc_applications
		SET stp_decision=$1, stp_reason=$2, haircut_pct=$3, eligible_value=$4,
			stp_run_at=$5, stp_run_by=$6, status=$7, updated_at=now()
		WHERE id=$8`

	args := []any{
		app.STPDecision,
		app.STPReason,
		app.HaircutPct,
		app.EligibleValue,
		app.STPRunAt,
		app.STPRunBy,
		app.Status,
		app.ID,
	}

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = repo.db.ExecContext(ctx, query, args...)
	}
	return err
}

func (repo *ApplicationRepositoryImpl) UpdateDraft(id, lcNumber, draftText string, at time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE lc_applications
		SET lc_number=$1, draft_text=$2, draft_generated_at=$3, updated_at=now()
		WHERE id=$4`

	_, err := repo.db.ExecContext(ctx, query, lcNumber, draftText, at, id)
	return err
}

func (repo *ApplicationRepositoryImpl) UpdateDraftPDFPath(id, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE lc_applications SET draft_pdf_path=$1, updated_at=now() WHERE id=$2`

	_, err := repo.db.ExecContext(ctx, query, path, id)
	return err
}

func (repo *ApplicationRepositoryImpl) UpdateMT700(id, mt700 string, at time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE lc_applications
		SET mt700_text=$1, mt700_generated_at=$2, updated_at=now()
		WHERE id=$3`

	_, err := repo.db.ExecContext(ctx, query, mt700, at, id)
	return err
}

func (repo *ApplicationRepositoryImpl) UpdateStatus(id, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE lc_applications SET status=$1, updated_at=now() WHERE id=$2`

	_, err := repo.db.ExecContext(ctx, query, status, id)
	return err
}

// AmendColumn applies an approved amendment to the underlying column.
// Runs inside the approval transaction when one is supplied.
func (repo *ApplicationRepositoryImpl) AmendColumn(id, column, value string, tx *sqlx.Tx) error {
	if !amendableColumns[column] {
		return fmt.Errorf("%w: %s", ErrColumnNotAmendable, column)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := fmt.Sprintf(`UPDATE lc_applications SET %s=$1, updated_at=now() WHERE id=$2`, column)

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, value, id)
	} else {
		_, err = repo.db.ExecContext(ctx, query, value, id)
	}
	return err
}
