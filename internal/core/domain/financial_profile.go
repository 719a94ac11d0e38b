package domain

import "time"

// FeeConfig is the currently effective monthly charge composition for one
// resident, all amounts in integer cents.
type FeeConfig struct {
	BaseValue           int64  `json:"baseValue"`
	CareLevelAdjustment int64  `json:"careLevelAdjustment"`
	FixedExtras         int64  `json:"fixedExtras"`
	Discount            int64  `json:"discount"`
	Notes               string `json:"notes"`
}

// Total is the effective monthly charge.
func (f FeeConfig) Total() int64 {
	return f.BaseValue + f.CareLevelAdjustment + f.FixedExtras - f.Discount
}

// ContractRecord is one entry of a resident's append-only contract history.
// EndDate is nil while the contract is in effect; at most one record per
// resident is open at any time.
type ContractRecord struct {
	ContractID          string     `json:"contractID"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	BaseValue           int64      `json:"baseValue"`
	CareLevelAdjustment int64      `json:"careLevelAdjustment"`
	FixedExtras         int64      `json:"fixedExtras"`
	Discount            int64      `json:"discount"`
	ReadjustmentIndex   string     `json:"readjustmentIndex"`
	Notes               string     `json:"notes"`
}

// IsOpen reports whether the contract is currently in effect.
func (c ContractRecord) IsOpen() bool {
	return c.EndDate == nil
}

// ResidentFinancialProfile owns the current fee configuration and the ordered
// contract history of one resident. Profiles are never deleted, only
// superseded; Version backs the compare-and-swap write used to detect
// concurrent edits between preview and apply.
type ResidentFinancialProfile struct {
	ProfileID       string           `json:"profileID"`
	ResidentID      string           `json:"residentID"`
	FeeConfig       *FeeConfig       `json:"feeConfig"`
	ContractHistory []ContractRecord `json:"contractHistory"` // insertion order = chronological
	BenefitValue    int64            `json:"benefitValue"`    // effective monthly total
	Version         int64            `json:"version"`
	AuditFields
}

// ReadjustmentPreview is one row of a read-only mass readjustment simulation.
type ReadjustmentPreview struct {
	ResidentID   string `json:"residentID"`
	ResidentName string `json:"residentName"`
	CurrentTotal int64  `json:"currentTotal"`
	NewBaseValue int64  `json:"newBaseValue"`
	NewCareLevel int64  `json:"newCareLevel"`
	NewTotal     int64  `json:"newTotal"`
	Difference   int64  `json:"difference"`
}

// ReadjustmentRunResult summarizes an applied batch run. Residents succeed or
// fail independently; Details holds one human-readable line per failure.
type ReadjustmentRunResult struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Details      []string `json:"details"`
}
