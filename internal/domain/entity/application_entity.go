package entity

import "time"

// ApplicationStatus moves from pending to exactly one of accepted or rejected.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// Decided reports whether s is a terminal status a recruiter may set.
func (s ApplicationStatus) Decided() bool {
	return s == StatusAccepted || s == StatusRejected
}

type JobApplication struct {
	ID          int64
	UlID        string
	JobID       string // job UlID
	CandidateID string // candidate user UlID
	Status      ApplicationStatus
	AppliedAt   time.Time
}

// AppliedJob is a candidate's application joined with the job it targets.
type AppliedJob struct {
	Application JobApplication
	Job         Job
}

// Applicant is an application to a recruiter's job joined with the candidate's profile.
type Applicant struct {
	Application JobApplication
	Candidate   User
}
