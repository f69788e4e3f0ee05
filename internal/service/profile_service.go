package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"alumnidir/internal/cache"
	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/model"
	"alumnidir/internal/repository"
)

// ProfileService assembles the composite profile document for one user.
type ProfileService interface {
	GetProfile(ctx context.Context, id uint) (*model.Profile, error)
}

type profileService struct {
	userRepo       repository.UserRepository
	internshipRepo repository.InternshipRepository
	projectRepo    repository.ProjectRepository
	cache          *cache.Client
	ttl            time.Duration
}

// NewProfileService creates a new profile service.
func NewProfileService(
	userRepo repository.UserRepository,
	internshipRepo repository.InternshipRepository,
	projectRepo repository.ProjectRepository,
	cache *cache.Client,
	ttl time.Duration,
) ProfileService {
	return &profileService{
		userRepo:       userRepo,
		internshipRepo: internshipRepo,
		projectRepo:    projectRepo,
		cache:          cache,
		ttl:            ttl,
	}
}

// GetProfile reads the user with its lookups, then its internships, then its
// projects. The three reads are independent statements, so a write landing
// between them can show up in one section and not another. An update racing
// a cache fill can leave the older profile cached until the TTL expires; a
// delete cannot, see dropIfDeleted.
func (s *profileService) GetProfile(ctx context.Context, id uint) (*model.Profile, error) {
	var cached model.Profile
	if s.cache.GetJSON(ctx, profileCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.FindByIDWithLookups(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	internships, err := s.internshipRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		User:          *user,
		ProgrammeName: user.JoinedProgrammeName(),
		BranchName:    user.JoinedBranchName(),
		Internships:   nonNil(internships),
		Projects:      nonNil(projects),
	}
	profile.User.Programme = nil
	profile.User.Branch = nil

	s.cache.SetJSON(ctx, profileCacheKey(id), profile, s.ttl)
	dropIfDeleted(ctx, s.cache, s.userRepo, id, profileCacheKey(id))
	return profile, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
