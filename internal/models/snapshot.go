package models

import "time"

// DRESnapshot is the DB representation of a monthly close.
type DRESnapshot struct {
	SnapshotID          string
	Month               int
	Year                int
	GrossRevenue        int64
	Taxes               int64
	NetRevenue          int64
	OperationalExpenses int64
	EBITDA              int64
	NetResult           int64
	TaxesEstimated      bool
	CreatedAt           time.Time
}
