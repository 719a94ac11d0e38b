package models

import "time"

// Invoice is the DB representation of a monthly resident invoice.
type Invoice struct {
	InvoiceID  string
	ResidentID string
	Month      int
	Year       int
	Status     string
	DueDate    time.Time
	AuditFields
}

// InvoiceItem is one charged line of an invoice, amount in cents.
type InvoiceItem struct {
	ItemID     string
	InvoiceID  string
	CategoryID string
	Amount     int64
}

// FinancialMovement is the DB representation of an ad-hoc financial entry.
type FinancialMovement struct {
	MovementID   string
	CategoryID   string // empty when uncategorized, stored as NULL
	MovementType string
	Description  string
	Amount       int64
	Month        int
	Year         int
	AuditFields
}
