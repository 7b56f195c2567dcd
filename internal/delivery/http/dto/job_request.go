package dto

import "jobpost/internal/usecase"

// CreateJobRequest is the POST /jobs body. The validate tags are the request
// schema: every field is required and non-blank.
type CreateJobRequest struct {
	Title               string `json:"title" validate:"required,notblank"`
	Company             string `json:"company" validate:"required,notblank"`
	Location            string `json:"location" validate:"required,notblank"`
	JobType             string `json:"jobType" validate:"required,jobtype"`
	SalaryRange         string `json:"salaryRange" validate:"required,notblank"`
	Description         string `json:"description" validate:"required,notblank"`
	Requirements        string `json:"requirements" validate:"required,notblank"`
	Responsibilities    string `json:"responsibilities" validate:"required,notblank"`
	ApplicationDeadline string `json:"applicationDeadline" validate:"required,isodate"`
}

func (r CreateJobRequest) ToInput() usecase.CreateJobInput {
	return usecase.CreateJobInput{
		Title:               r.Title,
		Company:             r.Company,
		Location:            r.Location,
		JobType:             r.JobType,
		SalaryRange:         r.SalaryRange,
		Description:         r.Description,
		Requirements:        r.Requirements,
		Responsibilities:    r.Responsibilities,
		ApplicationDeadline: r.ApplicationDeadline,
	}
}
