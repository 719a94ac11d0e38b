package domain

import "time"

// InvoiceStatus is the billing state of a monthly resident invoice.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "PAID"
	InvoicePending InvoiceStatus = "PENDING"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

// InvoiceItem is one charged line of an invoice, keyed by chart-of-accounts
// category. Amounts are integer cents.
type InvoiceItem struct {
	ItemID     string `json:"itemID"`
	CategoryID string `json:"categoryID"`
	Amount     int64  `json:"amount"`
}

// Invoice is a monthly billing document for one resident.
type Invoice struct {
	InvoiceID  string        `json:"invoiceID"`
	ResidentID string        `json:"residentID"`
	Month      int           `json:"month"`
	Year       int           `json:"year"`
	Status     InvoiceStatus `json:"status"`
	DueDate    time.Time     `json:"dueDate"`
	Items      []InvoiceItem `json:"items"`
	AuditFields
}

// MovementType classifies ad-hoc financial movements that are not invoice lines.
type MovementType string

const (
	MovementStockUsage MovementType = "stock_usage"
	MovementPurchase   MovementType = "purchase"
	MovementAdjustment MovementType = "adjustment"
)

// FinancialMovement is a non-invoice financial entry for a period. CategoryID
// may be empty; whether such a movement still reaches the report depends on the
// chart's fallback rules for its type.
type FinancialMovement struct {
	MovementID   string       `json:"movementID"`
	CategoryID   string       `json:"categoryID"`
	MovementType MovementType `json:"movementType"`
	Description  string       `json:"description"`
	Amount       int64        `json:"amount"`
	Month        int          `json:"month"`
	Year         int          `json:"year"`
	AuditFields
}
