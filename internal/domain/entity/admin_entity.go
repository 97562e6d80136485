package entity

import "time"

// Admin is a dashboard operator.
// PasswordHash holds a bcrypt hash; accounts are provisioned by cmd/seed.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuditEntry records an authentication event
type AuditEntry struct {
	AdminID   string
	Username  string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
}
