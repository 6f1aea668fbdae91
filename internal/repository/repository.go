package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Analysis) error
	GetByID(ctx context.Context, id string) (*models.Analysis, error)
	SetArchiveKey(ctx context.Context, id, key string) error
	ListRecent(ctx context.Context, limit int) ([]models.Analysis, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *models.Analysis) error {
	query := `
		INSERT INTO analyses (id, filename, query, status, analysis, error, page_count, archive_key, created_at)
		VALUES (:id, :filename, :query, :status, :analysis, :error, :page_count, :archive_key, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, a)
	return err
}

// GetByID returns nil, nil when no analysis has the given id.
func (r *repository) GetByID(ctx context.Context, id string) (*models.Analysis, error) {
	var a models.Analysis

	query := `
		SELECT id, filename, query, status, analysis, error, page_count, archive_key, created_at
		FROM analyses
		WHERE id = ?
	`

	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) SetArchiveKey(ctx context.Context, id, key string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE analyses SET archive_key = ? WHERE id = ?`, key, id)
	return err
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]models.Analysis, error) {
	analyses := []models.Analysis{}

	query := `
		SELECT id, filename, query, status, analysis, error, page_count, archive_key, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT ?
	`

	if err := r.db.SelectContext(ctx, &analyses, query, limit); err != nil {
		return nil, err
	}
	return analyses, nil
}
