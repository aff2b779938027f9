package handlers

import (
	"time"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
)

type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Skills    *string   `json:"skills"`
	Bio       *string   `json:"bio"`
	ResumeURL *string   `json:"resume_url"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *entity.User) userDTO {
	return userDTO{
		ID:        u.UlID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Skills:    u.Skills,
		Bio:       u.Bio,
		ResumeURL: u.ResumeURL,
		CreatedAt: u.CreatedAt,
	}
}

type jobDTO struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	RecruiterID  string    `json:"recruiter_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toJobDTO(j *entity.Job) jobDTO {
	return jobDTO{
		ID:           j.UlID,
		Title:        j.Title,
		Description:  j.Description,
		Requirements: j.Requirements,
		RecruiterID:  j.RecruiterID,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func toJobDTOs(jobs []entity.Job) []jobDTO {
	out := make([]jobDTO, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobDTO(&jobs[i]))
	}
	return out
}

type applicationDTO struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

func toApplicationDTO(a *entity.JobApplication) applicationDTO {
	return applicationDTO{
		ID:          a.UlID,
		JobID:       a.JobID,
		CandidateID: a.CandidateID,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
	}
}

type appliedJobDTO struct {
	applicationDTO
	Job jobDTO `json:"job"`
}

func toAppliedJobDTOs(in []entity.AppliedJob) []appliedJobDTO {
	out := make([]appliedJobDTO, 0, len(in))
	for i := range in {
		out = append(out, appliedJobDTO{
			applicationDTO: toApplicationDTO(&in[i].Application),
			Job:            toJobDTO(&in[i].Job),
		})
	}
	return out
}

type applicantDTO struct {
	applicationDTO
	Candidate struct {
		ID        string  `json:"id"`
		FullName  string  `json:"full_name"`
		Email     string  `json:"email"`
		Skills    *string `json:"skills"`
		Bio       *string `json:"bio"`
		ResumeURL *string `json:"resume_url"`
	} `json:"candidate"`
}

func toApplicantDTOs(in []entity.Applicant) []applicantDTO {
	out := make([]applicantDTO, 0, len(in))
	for i := range in {
		a := applicantDTO{applicationDTO: toApplicationDTO(&in[i].Application)}
		u := &in[i].Candidate
		a.Candidate.ID = u.UlID
		a.Candidate.FullName = u.FullName
		a.Candidate.Email = u.Email
		a.Candidate.Skills = u.Skills
		a.Candidate.Bio = u.Bio
		a.Candidate.ResumeURL = u.ResumeURL
		out = append(out, a)
	}
	return out
}
