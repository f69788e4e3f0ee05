package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"alumnidir/internal/model"
)

// LookupRepository defines programme and branch persistence operations.
type LookupRepository interface {
	ListProgrammes(ctx context.Context) ([]model.Programme, error)
	ListBranches(ctx context.Context) ([]model.Branch, error)
	FindOrCreateProgramme(ctx context.Context, name string) (*model.Programme, error)
	FindOrCreateBranch(ctx context.Context, name string) (*model.Branch, error)
}

type lookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository creates a new lookup repository.
func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) ListProgrammes(ctx context.Context) ([]model.Programme, error) {
	programmes := make([]model.Programme, 0)
	if err := r.db.WithContext(ctx).Order("programme_id").Find(&programmes).Error; err != nil {
		return nil, err
	}
	return programmes, nil
}

func (r *lookupRepository) ListBranches(ctx context.Context) ([]model.Branch, error) {
	branches := make([]model.Branch, 0)
	if err := r.db.WithContext(ctx).Order("branch_id").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// FindOrCreateProgramme finds a programme by name or creates it if it doesn't exist.
func (r *lookupRepository) FindOrCreateProgramme(ctx context.Context, name string) (*model.Programme, error) {
	var existing model.Programme
	err := r.db.WithContext(ctx).Where("programme_name = ?", name).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	programme := &model.Programme{ProgrammeName: name}
	if err := r.db.WithContext(ctx).Create(programme).Error; err != nil {
		return nil, err
	}
	return programme, nil
}

// FindOrCreateBranch finds a branch by name or creates it if it doesn't exist.
func (r *lookupRepository) FindOrCreateBranch(ctx context.Context, name string) (*model.Branch, error) {
	var existing model.Branch
	err := r.db.WithContext(ctx).Where("branch_name = ?", name).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	branch := &model.Branch{BranchName: name}
	if err := r.db.WithContext(ctx).Create(branch).Error; err != nil {
		return nil, err
	}
	return branch, nil
}
