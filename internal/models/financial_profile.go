package models

import "time"

// ResidentFinancialProfile is the DB representation of a resident's financial
// profile. The fee configuration columns are nullable as a unit; HasFeeConfig
// reflects whether they were set.
type ResidentFinancialProfile struct {
	ProfileID           string
	ResidentID          string
	HasFeeConfig        bool
	BaseValue           int64
	CareLevelAdjustment int64
	FixedExtras         int64
	Discount            int64
	FeeNotes            string
	BenefitValue        int64
	Version             int64
	AuditFields
}

// ContractRecord is one row of the append-only contract history.
type ContractRecord struct {
	ContractID          string
	ProfileID           string
	StartDate           time.Time
	EndDate             *time.Time
	BaseValue           int64
	CareLevelAdjustment int64
	FixedExtras         int64
	Discount            int64
	ReadjustmentIndex   string
	Notes               string
	Position            int // insertion order within the profile history
}
