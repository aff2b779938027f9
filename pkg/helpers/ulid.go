package helpers

import "github.com/oklog/ulid/v2"

// NewULID returns a new lexicographically sortable identifier for users, jobs and applications.
func NewULID() string {
	return ulid.Make().String()
}

// IsULID reports whether s parses as a ULID.
func IsULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
