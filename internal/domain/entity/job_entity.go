package entity

import "time"

type Job struct {
	ID           int64
	UlID         string
	Title        string
	Description  string
	Requirements string
	RecruiterID  string // recruiter's user UlID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// JobPatch carries the fields of a partial job update; nil means unchanged.
type JobPatch struct {
	Title        *string
	Description  *string
	Requirements *string
}

// Apply copies the non-nil fields of p onto j.
func (p JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Requirements != nil {
		j.Requirements = *p.Requirements
	}
}
