package services

import (
	"context"
	"errors"
	"os"
	"sort"
	"sync"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/crew"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/models"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/storage"
)

type fakeRepo struct {
	mu        sync.Mutex
	analyses  map[string]*models.Analysis
	createErr error
	setKeyErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{analyses: map[string]*models.Analysis{}}
}

func (r *fakeRepo) Create(ctx context.Context, a *models.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *a
	r.analyses[a.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) SetArchiveKey(ctx context.Context, id, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setKeyErr != nil {
		return r.setKeyErr
	}
	a, ok := r.analyses[id]
	if !ok {
		return errors.New("no such analysis")
	}
	a.ArchiveKey = &key
	return nil
}

func (r *fakeRepo) ListRecent(ctx context.Context, limit int) ([]models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Analysis, 0, len(r.analyses))
	for _, a := range r.analyses {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeStorage struct {
	objects   map[string][]byte
	uploadErr error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Download(ctx context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	return nil
}

// fakeCrew records its inputs and whether the upload existed while it ran.
type fakeCrew struct {
	inputs      crew.Inputs
	fileExisted bool
	err         error
}

func (c *fakeCrew) Kickoff(ctx context.Context, inputs crew.Inputs) (*crew.Result, error) {
	c.inputs = inputs
	_, statErr := os.Stat(inputs.FilePath)
	c.fileExisted = statErr == nil
	if c.err != nil {
		return nil, c.err
	}
	return &crew.Result{Tasks: []crew.TaskOutput{
		{Task: "verification", Title: "Report Verification", Output: "Is Blood Report: yes"},
		{Task: "help_patients", Title: "Clinical Analysis", Output: "Hemoglobin normal."},
	}}, nil
}

type fakeInspector struct {
	pages int
	err   error
}

func (i *fakeInspector) PageCount(path string) (int, error) {
	return i.pages, i.err
}
