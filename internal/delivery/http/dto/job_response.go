package dto

import (
	"time"

	"jobpost/internal/domain/job"
)

type JobResponse struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Company             string    `json:"company"`
	Location            string    `json:"location"`
	JobType             string    `json:"jobType"`
	SalaryRange         string    `json:"salaryRange"`
	Description         string    `json:"description"`
	Requirements        string    `json:"requirements"`
	Responsibilities    string    `json:"responsibilities"`
	ApplicationDeadline string    `json:"applicationDeadline"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:                  j.ID,
		Title:               j.Title,
		Company:             j.Company,
		Location:            j.Location,
		JobType:             j.JobType.String(),
		SalaryRange:         j.SalaryRange,
		Description:         j.Description,
		Requirements:        j.Requirements,
		Responsibilities:    j.Responsibilities,
		ApplicationDeadline: j.ApplicationDeadline.Format(job.DateLayout),
		CreatedAt:           j.CreatedAt.UTC(),
		UpdatedAt:           j.UpdatedAt.UTC(),
	}
}

func NewJobListResponse(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewJobResponse(it))
	}
	return out
}
