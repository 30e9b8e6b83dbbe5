package models

import "time"

// AuditFields holds the bookkeeping columns shared by reference tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
