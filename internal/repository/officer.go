package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lucidbank/lcbridge/internal/models"
)

type OfficerRepository interface {
	Insert(officer *models.Officer) (string, error)
	GetOne(id string) (*models.Officer, bool, error)
	GetByEmail(email string) (*models.Officer, bool, error)
	SetStatus(id, status string) error
}

type OfficerRepositoryImpl struct {
	db *sqlx.DB
}

func NewOfficerRepository(db *sqlx.DB) OfficerRepository {
	return &OfficerRepositoryImpl{db: db}
}

func (repo *OfficerRepositoryImpl) Insert(officer *models.Officer) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id string

	query := `
		INSERT INTO officers (first_name, last_name, email, role, hashed_password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := repo.db.GetContext(ctx, &id, query,
		officer.FirstName,
		officer.LastName,
		officer.Email,
		officer.Role,
		officer.HashedPassword,
	)
	if err != nil {
		return "", err
	}

	return id, nil
}

func (repo *OfficerRepositoryImpl) GetOne(id string) (*models.Officer, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var officer models.Officer

	query := `
		SELECT id, first_name, last_name, email, role, status, hashed_password, created_at
		FROM officers WHERE id=$1 AND deleted_at IS NULL`

	err := repo.db.GetContext(ctx, &officer, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &officer, true, nil
}

func (repo *OfficerRepositoryImpl) GetByEmail(email string) (*models.Officer, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var officer models.Officer

	query := `
		SELECT id, first_name, last_name, email, role, status, hashed_password, created_at
		FROM officers WHERE email=$1 AND deleted_at IS NULL`

	err := repo.db.GetContext(ctx, &officer, query, email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &officer, true, nil
}

func (repo *OfficerRepositoryImpl) SetStatus(id, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE officers SET status=$1 WHERE id=$2`

	_, err := repo.db.ExecContext(ctx, query, status, id)
	return err
}
