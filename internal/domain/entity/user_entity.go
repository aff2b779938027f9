package entity

import (
	"time"
)

// Role is the role family a user belongs to. Each role family has its own token signing secret.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCandidate, RoleRecruiter:
		return true
	}
	return false
}

// User is the aggregate root for the credential store.
// Passwords are stored as bcrypt hashes in Password field.
// UlID is the stable external identifier carried inside bearer tokens.
type User struct {
	ID        int64
	UlID      string
	Email     string
	Password  string
	FullName  string
	Role      Role
	Skills    *string
	Bio       *string
	ResumeURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
