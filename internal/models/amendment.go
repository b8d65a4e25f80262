package models

import (
	"database/sql"
	"time"
)

// Amendment is a requested change to one application field, numbered
// sequentially per application. Approval mutates the field directly and
// renders an MT707 draft.
type Amendment struct {
	ID            string         `db:"id" json:"id"`
	ApplicationID string         `db:"application_id" json:"application_id"`
	Sequence      int            `db:"sequence" json:"sequence"`
	Field         string         `db:"field" json:"field"`
	OldValue      string         `db:"old_value" json:"old_value"`
	NewValue      string         `db:"new_value" json:"new_value"`
	Reason        string         `db:"reason" json:"reason"`
	Fee           float64        `db:"fee" json:"fee"`
	Status        string         `db:"status" json:"status"`
	MT707Text     sql.NullString `db:"mt707_text" json:"mt707_text"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	ApprovedAt    sql.NullTime   `db:"approved_at" json:"approved_at"`
}

const (
	AmendmentStatusPending  = "Pending"
	AmendmentStatusApproved = "Approved"
)
