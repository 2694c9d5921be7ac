package models

import "time"

// User is the database row shape of the users table.
type User struct {
	UserID                 string
	Name                   string
	Email                  string
	PasswordHash           *string
	AuthProvider           string
	ProviderUserID         *string
	RefreshTokenHash       *string
	RefreshTokenExpiryTime *time.Time
	AuditFields
}
