package entity

import "time"

// Registration is a bootcamp application submitted through the public form.
// Values are stored exactly as submitted; a registration is never updated.
type Registration struct {
	ID                   string
	FullName             string
	LastName             string
	DateOfBirth          string // YYYY-MM-DD
	Major                string
	Department           string
	Campus               string
	ProgrammingKnowledge string
	ProgrammingGoals     string
	CreatedAt            time.Time
}
