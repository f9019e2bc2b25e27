package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kariyer_backend/internal/ai"
	"kariyer_backend/internal/cvparser"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
)

const defaultCVTemplate = "classic"

type CVService interface {
	List(db *gorm.DB, userID string) ([]models.CV, error)
	Get(db *gorm.DB, userID, cvID string) (*models.CV, error)
	Create(db *gorm.DB, userID string, req *dto.CVRequest) (*models.CV, error)
	Update(db *gorm.DB, userID, cvID string, req *dto.CVRequest) (*models.CV, error)
	Delete(db *gorm.DB, userID, cvID string) error
	SetPrimary(db *gorm.DB, userID, cvID string) (*models.CV, error)
	ExportHTML(db *gorm.DB, userID, cvID string) ([]byte, error)

	Import(ctx context.Context, db *gorm.DB, userID string, file dto.UploadInput) (*models.CV, error)
	Analyze(ctx context.Context, db *gorm.DB, userID, cvID, language string) (*models.CV, error)
	Improve(ctx context.Context, db *gorm.DB, userID string, req *dto.ImproveTextRequest) (*dto.ImproveTextResponse, error)
}

type cvService struct {
	cvRepo    repositories.CVRepository
	assistant ai.Assistant
	meter     tokenMeter
	costs     AICosts
	maxUpload int64
}

func NewCVService(cvRepo repositories.CVRepository, userRepo repositories.UserRepository, assistant ai.Assistant, costs AICosts, maxUpload int64) CVService {
	return &cvService{
		cvRepo:    cvRepo,
		assistant: assistant,
		meter:     tokenMeter{userRepo: userRepo},
		costs:     costs,
		maxUpload: maxUpload,
	}
}

func (s *cvService) List(db *gorm.DB, userID string) ([]models.CV, error) {
	list, err := s.cvRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if list == nil {
		list = []models.CV{}
	}
	return list, nil
}

// Get returns the CV only to its owner.
func (s *cvService) Get(db *gorm.DB, userID, cvID string) (*models.CV, error) {
	cv, err := s.cvRepo.FindByID(db, cvID)
	if err != nil {
		if errors.Is(err, repositories.ErrCVNotFound) {
			return nil, apperrors.ErrCVNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	if cv.UserID != userID {
		return nil, apperrors.ErrCVNotFound
	}
	return cv, nil
}

func (s *cvService) Create(db *gorm.DB, userID string, req *dto.CVRequest) (*models.CV, error) {
	data, err := normalizeCVData(req.Data)
	if err != nil {
		return nil, err
	}
	cv := &models.CV{
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Template: templateOrDefault(req.Template),
		Data:     data,
	}
	if err := s.create(db, cv); err != nil {
		return nil, err
	}
	return cv, nil
}

// create stores a CV; the user's first CV becomes primary.
func (s *cvService) create(db *gorm.DB, cv *models.CV) error {
	count, err := s.cvRepo.CountByUser(db, cv.UserID)
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	cv.IsPrimary = count == 0
	if err := s.cvRepo.Create(db, cv); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *cvService) Update(db *gorm.DB, userID, cvID string, req *dto.CVRequest) (*models.CV, error) {
	cv, err := s.Get(db, userID, cvID)
	if err != nil {
		return nil, err
	}
	data, err := normalizeCVData(req.Data)
	if err != nil {
		return nil, err
	}

	cv.Title = strings.TrimSpace(req.Title)
	if req.Template != "" {
		cv.Template = req.Template
	}
	cv.Data = data
	if err := s.cvRepo.Update(db, cv); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return cv, nil
}

func (s *cvService) Delete(db *gorm.DB, userID, cvID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	cv, err := s.Get(tx, userID, cvID)
	if err != nil {
		return err
	}
	if err := s.cvRepo.Delete(tx, cv.ID); err != nil {
		return apperrors.DatabaseError(err)
	}
	if cv.IsPrimary {
		if err := s.cvRepo.PromoteLatest(tx, userID); err != nil {
			return apperrors.DatabaseError(err)
		}
	}
	return wrapDB(tx.Commit().Error)
}

func (s *cvService) SetPrimary(db *gorm.DB, userID, cvID string) (*models.CV, error) {
	cv, err := s.Get(db, userID, cvID)
	if err != nil {
		return nil, err
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return s.cvRepo.SetPrimary(tx, userID, cv.ID)
	}); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	cv.IsPrimary = true
	return cv, nil
}

func (s *cvService) ExportHTML(db *gorm.DB, userID, cvID string) ([]byte, error) {
	cv, err := s.Get(db, userID, cvID)
	if err != nil {
		return nil, err
	}
	html, err := renderCVHTML(cv.Title, cv.Template, cv.Data)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return html, nil
}

// Import extracts the text of an uploaded PDF, DOCX or TXT file and lets the model structure it.
func (s *cvService) Import(ctx context.Context, db *gorm.DB, userID string, file dto.UploadInput) (*models.CV, error) {
	if s.maxUpload > 0 && file.Size > s.maxUpload {
		return nil, apperrors.ErrFileTooLarge
	}
	mime := cvparser.DetectType(file.FileName, file.MimeType)
	switch mime {
	case cvparser.MimePDF, cvparser.MimeDOCX, cvparser.MimeText:
	default:
		return nil, apperrors.ErrInvalidFileType
	}
	if err := s.meter.ensure(db, userID, s.costs.CVParse); err != nil {
		return nil, err
	}

	text, err := cvparser.ExtractText(mime, file.Data)
	if err != nil {
		if errors.Is(err, cvparser.ErrUnsupportedType) {
			return nil, apperrors.ErrInvalidFileType
		}
		return nil, apperrors.NewBadRequestError("Could not read the uploaded document")
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrCVEmptyText
	}

	parsed, err := s.assistant.ParseCV(ctx, text)
	if err != nil {
		return nil, aiError(err)
	}

	title := strings.TrimSpace(parsed.Title)
	if title == "" {
		title = strings.TrimSuffix(file.FileName, fileExt(file.FileName))
	}
	cv := &models.CV{
		UserID:   userID,
		Title:    truncate(title, 160),
		Template: defaultCVTemplate,
		Data:     datatypes.JSON(parsed.Data),
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.create(tx, cv); err != nil {
		return nil, err
	}
	if err := s.meter.charge(tx, userID, s.costs.CVParse); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return cv, nil
}

func (s *cvService) Analyze(ctx context.Context, db *gorm.DB, userID, cvID, language string) (*models.CV, error) {
	cv, err := s.Get(db, userID, cvID)
	if err != nil {
		return nil, err
	}
	if err := s.meter.ensure(db, userID, s.costs.CVAnalysis); err != nil {
		return nil, err
	}

	analysis, err := s.assistant.AnalyzeCV(ctx, json.RawMessage(cv.Data), language)
	if err != nil {
		return nil, aiError(err)
	}
	raw, err := json.Marshal(analysis)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	score := analysis.Score
	cv.Analysis = datatypes.JSON(raw)
	cv.Score = &score
	if err := s.cvRepo.Update(tx, cv); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if err := s.meter.charge(tx, userID, s.costs.CVAnalysis); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return cv, nil
}

func (s *cvService) Improve(ctx context.Context, db *gorm.DB, userID string, req *dto.ImproveTextRequest) (*dto.ImproveTextResponse, error) {
	if err := s.meter.ensure(db, userID, s.costs.Improve); err != nil {
		return nil, err
	}
	improved, err := s.assistant.Improve(ctx, req.Section, req.Text, req.Language)
	if err != nil {
		return nil, aiError(err)
	}
	if err := s.meter.charge(db, userID, s.costs.Improve); err != nil {
		return nil, err
	}
	return &dto.ImproveTextResponse{Improved: improved}, nil
}

// normalizeCVData requires a JSON object and compacts it.
func normalizeCVData(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, apperrors.ValidationError(map[string]string{"data": "data must be a JSON object"})
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"data": "data must be a JSON object"})
	}
	return datatypes.JSON(buf.Bytes()), nil
}

func templateOrDefault(t string) string {
	if t == "" {
		return defaultCVTemplate
	}
	return t
}

func fileExt(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i:]
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
