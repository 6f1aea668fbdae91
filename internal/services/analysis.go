package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/crew"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/extractor"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/models"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/repository"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/storage"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/utils"
)

const DefaultQuery = "Summarise my Blood Test Report"

type AnalysisService interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error)
	GetAnalysis(ctx context.Context, id string) (*models.Analysis, error)
	ListAnalyses(ctx context.Context, limit int) ([]models.Analysis, error)
	GetReport(ctx context.Context, id string) ([]byte, error)
}

type analysisService struct {
	repo      repository.Repository
	storage   storage.Storage
	crew      crew.Orchestrator
	inspector extractor.Inspector
	uploadDir string
	logger    *utils.Logger
}

// NewService wires the analysis flow. store may be nil, which disables the
// report archive.
func NewService(repo repository.Repository, store storage.Storage, orchestrator crew.Orchestrator, inspector extractor.Inspector, uploadDir string, logger *utils.Logger) AnalysisService {
	return &analysisService{
		repo:      repo,
		storage:   store,
		crew:      orchestrator,
		inspector: inspector,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

func (s *analysisService) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if !isPDFUpload(req.Filename, req.ContentType) {
		s.logger.Warn("Rejected non-PDF upload", "filename", req.Filename, "content_type", req.ContentType)
		return nil, utils.NewBadRequestError("Please upload a PDF file.")
	}

	id := utils.GenerateID()
	logger := s.logger.With("id", id, "filename", req.Filename)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		logger.Error("Failed to create upload directory", "error", err, "dir", s.uploadDir)
		return nil, utils.NewInternalError("Failed to store uploaded file")
	}

	path := filepath.Join(s.uploadDir, fmt.Sprintf("blood_test_report_%s.pdf", id))
	defer s.removeUpload(logger, path)

	written, err := saveUpload(path, req.File)
	if err != nil {
		logger.Error("Failed to save upload", "error", err, "path", path)
		return nil, utils.NewInternalError("Failed to store uploaded file")
	}
	if written == 0 {
		return nil, utils.NewBadRequestError("Uploaded file is empty")
	}

	pageCount, err := s.inspector.PageCount(path)
	if err != nil {
		logger.Warn("Uploaded file failed PDF validation", "error", err)
		return nil, utils.NewBadRequestError("Uploaded file is not a readable PDF")
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = DefaultQuery
	}

	logger.Info("Starting blood report analysis", "pages", pageCount, "bytes", written)

	record := &models.Analysis{
		ID:        id,
		Filename:  req.Filename,
		Query:     query,
		PageCount: pageCount,
		CreatedAt: time.Now().UTC(),
	}

	result, err := s.crew.Kickoff(ctx, crew.Inputs{Query: query, FilePath: path})
	if err != nil {
		logger.Error("Blood report analysis failed", "error", err)
		detail := err.Error()
		record.Status = models.StatusFailed
		record.Error = &detail
		s.saveRecord(ctx, logger, record)
		return nil, utils.NewInternalError("Error processing blood report: " + detail)
	}

	analysis := result.String()
	record.Status = models.StatusSuccess
	record.Result = &analysis
	if s.saveRecord(ctx, logger, record) {
		s.archive(ctx, logger, record.ID, analysis)
	}

	logger.Info("Blood report analysed", "tasks", len(result.Tasks), "analysis_length", len(analysis))

	return &models.AnalyzeResponse{
		ID:            id,
		Status:        models.StatusSuccess,
		Query:         query,
		Analysis:      analysis,
		FileProcessed: req.Filename,
	}, nil
}

func (s *analysisService) GetAnalysis(ctx context.Context, id string) (*models.Analysis, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get analysis", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve analysis")
	}
	if a == nil {
		return nil, utils.NewNotFoundError("Analysis not found")
	}
	return a, nil
}

func (s *analysisService) ListAnalyses(ctx context.Context, limit int) ([]models.Analysis, error) {
	analyses, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list analyses", "error", err)
		return nil, utils.NewInternalError("Failed to list analyses")
	}
	return analyses, nil
}

func (s *analysisService) GetReport(ctx context.Context, id string) ([]byte, error) {
	a, err := s.GetAnalysis(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.storage == nil || a.ArchiveKey == nil {
		return nil, utils.NewNotFoundError("Report archive not available")
	}

	data, err := s.storage.Download(ctx, *a.ArchiveKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, utils.NewNotFoundError("Report archive not available")
	}
	if err != nil {
		s.logger.Error("Failed to download report", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve report")
	}
	return data, nil
}

// saveRecord stores the history entry. History is secondary to the response,
// so failures are logged and reported as false.
func (s *analysisService) saveRecord(ctx context.Context, logger *utils.Logger, record *models.Analysis) bool {
	if err := s.repo.Create(context.WithoutCancel(ctx), record); err != nil {
		logger.Error("Failed to save analysis record", "error", err)
		return false
	}
	return true
}

func (s *analysisService) archive(ctx context.Context, logger *utils.Logger, id, analysis string) {
	if s.storage == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	key := fmt.Sprintf("reports/%s.md", id)
	if err := s.storage.Upload(ctx, key, []byte(analysis), "text/markdown"); err != nil {
		logger.Error("Failed to archive report", "error", err, "key", key)
		return
	}

	if err := s.repo.SetArchiveKey(ctx, id, key); err != nil {
		logger.Error("Failed to record archive key", "error", err, "key", key)
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.Warn("Failed to remove orphaned report", "error", err, "key", key)
		}
	}
}

// removeUpload deletes the temporary upload. Failures are logged only and
// never replace the request's own result.
func (s *analysisService) removeUpload(logger *utils.Logger, path string) {
	err := os.Remove(path)
	switch {
	case err == nil:
		logger.Debug("Removed temporary upload", "path", path)
	case errors.Is(err, os.ErrNotExist):
	default:
		logger.Warn("Failed to remove temporary upload", "path", path, "error", err)
	}
}

func saveUpload(path string, src io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return written, err
}

// isPDFUpload accepts a .pdf filename or a declared application/pdf type.
func isPDFUpload(filename, contentType string) bool {
	if extractor.HasPDFExtension(filename) {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && strings.EqualFold(mediaType, "application/pdf")
}
