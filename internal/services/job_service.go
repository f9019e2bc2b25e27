package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kariyer_backend/internal/ai"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/jobfeed"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
)

const manualJobSource = "admin"

type JobService interface {
	List(db *gorm.DB, query dto.JobListQuery) (*dto.PaginatedResponse, error)
	Get(db *gorm.DB, id string, includeInactive bool) (*models.JobListing, error)
	Filters(db *gorm.DB) (*dto.JobFilters, error)
	Create(db *gorm.DB, actor dto.Actor, req *dto.JobRequest) (*models.JobListing, error)
	Update(db *gorm.DB, actor dto.Actor, id string, req *dto.JobRequest) (*models.JobListing, error)
	Delete(db *gorm.DB, actor dto.Actor, id string) error
	Match(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.JobMatchRequest) (*ai.JobMatch, error)
	Generate(db *gorm.DB, actor dto.Actor, count int) (*dto.GenerateJobsResponse, error)
	DeactivateExpired(db *gorm.DB, now time.Time) (int64, error)
}

type jobService struct {
	jobRepo   repositories.JobRepository
	cvRepo    repositories.CVRepository
	generator *jobfeed.Generator
	assistant ai.Assistant
	meter     tokenMeter
	matchCost int
	audit     AuditService
}

func NewJobService(
	jobRepo repositories.JobRepository,
	cvRepo repositories.CVRepository,
	userRepo repositories.UserRepository,
	generator *jobfeed.Generator,
	assistant ai.Assistant,
	matchCost int,
	audit AuditService,
) JobService {
	return &jobService{
		jobRepo:   jobRepo,
		cvRepo:    cvRepo,
		generator: generator,
		assistant: assistant,
		meter:     tokenMeter{userRepo: userRepo},
		matchCost: matchCost,
		audit:     audit,
	}
}

func (s *jobService) List(db *gorm.DB, query dto.JobListQuery) (*dto.PaginatedResponse, error) {
	jobs, total, err := s.jobRepo.List(db, repositories.JobFilter{
		Query:           query.Query,
		City:            query.City,
		Category:        query.Category,
		Sector:          query.Sector,
		Type:            query.Type,
		IncludeInactive: query.IncludeInactive,
		Page:            query.Page,
		PageSize:        query.PageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	page, size := pageOrDefault(query.Page, query.PageSize)
	return dto.NewPaginatedResponse(jobs, total, page, size), nil
}

func (s *jobService) Get(db *gorm.DB, id string, includeInactive bool) (*models.JobListing, error) {
	job, err := s.jobRepo.FindByID(db, id)
	if err != nil {
		return nil, handleJobError(err)
	}
	if !job.IsActive && !includeInactive {
		return nil, apperrors.ErrJobNotFound
	}
	return job, nil
}

func (s *jobService) Filters(db *gorm.DB) (*dto.JobFilters, error) {
	cities, err := s.jobRepo.DistinctValues(db, "city")
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	categories, err := s.jobRepo.DistinctValues(db, "category")
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if cities == nil {
		cities = []string{}
	}
	if categories == nil {
		categories = []string{}
	}
	return &dto.JobFilters{Cities: cities, Categories: categories}, nil
}

func (s *jobService) Create(db *gorm.DB, actor dto.Actor, req *dto.JobRequest) (*models.JobListing, error) {
	job := &models.JobListing{
		ExternalID: manualJobSource + "-" + uuid.NewString(),
		Source:     manualJobSource,
		PostedAt:   time.Now(),
		IsActive:   true,
	}
	applyJobRequest(job, req)

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.jobRepo.Create(tx, job); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if err := s.audit.Record(tx, actor, ActionJobCreate, "job", job.ID, map[string]string{"title": job.Title}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return job, nil
}

func (s *jobService) Update(db *gorm.DB, actor dto.Actor, id string, req *dto.JobRequest) (*models.JobListing, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	job, err := s.jobRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleJobError(err)
	}
	applyJobRequest(job, req)
	if err := s.jobRepo.Update(tx, job); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if err := s.audit.Record(tx, actor, ActionJobUpdate, "job", job.ID, map[string]interface{}{
		"title":     job.Title,
		"is_active": job.IsActive,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return job, nil
}

func (s *jobService) Delete(db *gorm.DB, actor dto.Actor, id string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.jobRepo.Delete(tx, id); err != nil {
		return handleJobError(err)
	}
	if err := s.audit.Record(tx, actor, ActionJobDelete, "job", id, nil); err != nil {
		return err
	}
	return wrapDB(tx.Commit().Error)
}

// Match scores one of the caller's CVs against a listing.
func (s *jobService) Match(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.JobMatchRequest) (*ai.JobMatch, error) {
	job, err := s.Get(db, jobID, false)
	if err != nil {
		return nil, err
	}
	cv, err := s.cvRepo.FindByID(db, req.CVID)
	if err != nil {
		if errors.Is(err, repositories.ErrCVNotFound) {
			return nil, apperrors.ErrCVNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	if cv.UserID != userID {
		return nil, apperrors.ErrCVNotFound
	}
	if err := s.meter.ensure(db, userID, s.matchCost); err != nil {
		return nil, err
	}

	match, err := s.assistant.MatchJob(ctx, json.RawMessage(cv.Data), job, "tr")
	if err != nil {
		return nil, aiError(err)
	}
	if err := s.meter.charge(db, userID, s.matchCost); err != nil {
		return nil, err
	}
	return match, nil
}

// Generate runs the static feed and upserts the result by external id.
func (s *jobService) Generate(db *gorm.DB, actor dto.Actor, count int) (*dto.GenerateJobsResponse, error) {
	if count <= 0 {
		return nil, apperrors.NewBadRequestError("count must be positive")
	}
	jobs := s.generator.Generate(count, time.Now())

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	upserted, err := s.jobRepo.UpsertByExternalID(tx, jobs)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if actor.UserID != "" {
		if err := s.audit.Record(tx, actor, ActionJobGenerate, "job", "", map[string]interface{}{
			"count":    count,
			"upserted": upserted,
		}); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("Job feed generated", "count", len(jobs), "upserted", upserted)
	return &dto.GenerateJobsResponse{Generated: len(jobs), Upserted: int(upserted)}, nil
}

func (s *jobService) DeactivateExpired(db *gorm.DB, now time.Time) (int64, error) {
	n, err := s.jobRepo.DeactivateExpired(db, now)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return n, nil
}

func applyJobRequest(job *models.JobListing, req *dto.JobRequest) {
	job.Title = strings.TrimSpace(req.Title)
	job.Institution = strings.TrimSpace(req.Institution)
	job.City = strings.TrimSpace(req.City)
	job.Sector = req.Sector
	job.Type = req.Type
	job.Category = strings.TrimSpace(req.Category)
	job.Description = req.Description
	job.Requirements = req.Requirements
	job.Education = req.Education
	job.Positions = req.Positions
	if job.Positions < 1 {
		job.Positions = 1
	}
	job.Salary = req.Salary
	job.SourceURL = req.SourceURL
	job.Deadline = req.Deadline
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
}

func handleJobError(err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.ErrJobNotFound
	}
	return apperrors.DatabaseError(err)
}
