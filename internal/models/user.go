package models

// User is the DB representation of an operator account.
type User struct {
	UserID       string
	Username     string
	Name         string
	PasswordHash string
	AuditFields
}
