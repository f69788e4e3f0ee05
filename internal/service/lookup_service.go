package service

import (
	"context"

	"alumnidir/internal/model"
	"alumnidir/internal/repository"
)

// LookupService lists the read-only programme and branch tables.
type LookupService interface {
	ListProgrammes(ctx context.Context) ([]model.Programme, error)
	ListBranches(ctx context.Context) ([]model.Branch, error)
}

type lookupService struct {
	repo repository.LookupRepository
}

// NewLookupService creates a new lookup service.
func NewLookupService(repo repository.LookupRepository) LookupService {
	return &lookupService{repo: repo}
}

func (s *lookupService) ListProgrammes(ctx context.Context) ([]model.Programme, error) {
	return s.repo.ListProgrammes(ctx)
}

func (s *lookupService) ListBranches(ctx context.Context) ([]model.Branch, error) {
	return s.repo.ListBranches(ctx)
}
