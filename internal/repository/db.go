package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/lucidbank/lcbridge/assets"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
)

const defaultTimeout = 3 * time.Second

// Database interface defines available repositories
type Database interface {
	Officer() OfficerRepository
	Application() ApplicationRepository
	Presentation() PresentationRepository
	Discrepancy() DiscrepancyRepository
	Amendment() AmendmentRepository
	Activity() ActivityRepository

	Close() error
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// DatabaseImpl implements the Database interface
type DatabaseImpl struct {
	db               *sqlx.DB
	officerRepo      OfficerRepository
	applicationRepo  ApplicationRepository
	presentationRepo PresentationRepository
	discrepancyRepo  DiscrepancyRepository
	amendmentRepo    AmendmentRepository
	activityRepo     ActivityRepository

	mu sync.Mutex
}

// New initializes a database connection and runs migrations if enabled
func New(dsn string, automigrate bool) (Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", "postgres://"+dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	// Run migrations if enabled
	if automigrate {
		iofsDriver, err := iofs.New(assets.EmbeddedFiles, "migrations")
		if err != nil {
			return nil, err
		}

		migrator, err := migrate.NewWithSourceInstance("iofs", iofsDriver, "postgres://"+dsn)
		if err != nil {
			return nil, err
		}

		if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, err
		}
	}

	// Return DatabaseImpl instance without pre-initializing repositories
	return &DatabaseImpl{db: db}, nil
}

func (d *DatabaseImpl) Close() error {
	return d.db.Close()
}

func (d *DatabaseImpl) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	tx, err := d.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (d *DatabaseImpl) Officer() OfficerRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.officerRepo == nil {
		d.officerRepo = NewOfficerRepository(d.db)
	}
	return d.officerRepo
}

func (d *DatabaseImpl) Application() ApplicationRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.applicationRepo == nil {
		d.applicationRepo = NewApplicationRepository(d.db)
	}
	return d.applicationRepo
}

func (d *DatabaseImpl) Presentation() PresentationRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.presentationRepo == nil {
		d.presentationRepo = NewPresentationRepository(d.db)
	}
	return d.presentationRepo
}

func (d *DatabaseImpl) Discrepancy() DiscrepancyRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.discrepancyRepo == nil {
		d.discrepancyRepo = NewDiscrepancyRepository(d.db)
	}
	return d.discrepancyRepo
}

func (d *DatabaseImpl) Amendment() AmendmentRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.amendmentRepo == nil {
		d.amendmentRepo = NewAmendmentRepository(d.db)
	}
	return d.amendmentRepo
}

func (d *DatabaseImpl) Activity() ActivityRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.activityRepo == nil {
		d.activityRepo = NewActivityRepository(d.db)
	}
	return d.activityRepo
}
