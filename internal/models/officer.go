package models

import (
	"database/sql"
	"time"
)

type Officer struct {
	ID             string       `db:"id" json:"id"`
	FirstName      string       `db:"first_name" json:"first_name"`
	LastName       string       `db:"last_name" json:"last_name"`
	Email          string       `db:"email" json:"email"`
	Role           string       `db:"role" json:"role"`
	Status         string       `db:"status" json:"status"`
	HashedPassword string       `db:"hashed_password" json:"-"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	DeletedAt      sql.NullTime `db:"deleted_at" json:"deleted_at"`
}

const (
	OfficerActiveStatus = "active"
	OfficerLockedStatus = "locked"
)
