package dto

import (
	"time"

	"kariyer_backend/internal/models"
)

type JobListQuery struct {
	Query    string           `form:"q"`
	City     string           `form:"city"`
	Category string           `form:"category"`
	Sector   models.JobSector `form:"sector" validate:"omitempty,is-job-sector"`
	Type     models.JobType   `form:"type" validate:"omitempty,is-job-type"`
	Page     int              `form:"page"`
	PageSize int              `form:"page_size"`
	// IncludeInactive is set only by staff routes.
	IncludeInactive bool `form:"-"`
}

type JobRequest struct {
	Title        string           `json:"title" validate:"required,min=2,max=200"`
	Institution  string           `json:"institution" validate:"required,max=200"`
	City         string           `json:"city" validate:"max=80"`
	Sector       models.JobSector `json:"sector" validate:"required,is-job-sector"`
	Type         models.JobType   `json:"type" validate:"required,is-job-type"`
	Category     string           `json:"category" validate:"max=80"`
	Description  string           `json:"description"`
	Requirements string           `json:"requirements"`
	Education    string           `json:"education" validate:"max=80"`
	Positions    int              `json:"positions" validate:"min=0"`
	Salary       string           `json:"salary" validate:"max=80"`
	SourceURL    string           `json:"source_url" validate:"omitempty,url"`
	Deadline     *time.Time       `json:"deadline"`
	IsActive     *bool            `json:"is_active"`
}

type JobFilters struct {
	Cities     []string `json:"cities"`
	Categories []string `json:"categories"`
}

type JobMatchRequest struct {
	CVID string `json:"cv_id" validate:"required"`
}

type GenerateJobsRequest struct {
	Count int `json:"count" validate:"required,min=1,max=200"`
}

type GenerateJobsResponse struct {
	Generated int `json:"generated"`
	Upserted  int `json:"upserted"`
}
