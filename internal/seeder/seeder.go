// Package seeder loads demonstration records so a fresh environment has
// something to process: a desk officer and a handful of applications
// covering the interesting decision paths.
package seeder

import (
	"log"

	"github.com/lucidbank/lcbridge/internal/repository"
)

type Seeder struct {
	DB repository.Database
}

func New(db repository.Database) *Seeder {
	return &Seeder{
		DB: db,
	}
}

func (seeder *Seeder) Run() {
	if err := seeder.seedOfficers(); err != nil {
		log.Printf("Error seeding officers: %v", err)
	}

	if err := seeder.seedApplications(); err != nil {
		log.Printf("Error seeding applications: %v", err)
	}
}
