package models

// Resident is the DB representation of a roster entry.
type Resident struct {
	ResidentID string
	Name       string
	Status     string
	AuditFields
}
