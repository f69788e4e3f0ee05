package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"alumnidir/internal/cache"
	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/model"
	"alumnidir/internal/repository"
)

// UserService exposes the directory's CRUD operations over users.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
	ListDirectory(ctx context.Context) ([]model.DirectoryEntry, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	AddUser(ctx context.Context, input model.NewUser) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, input model.UserUpdate) error
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo     repository.UserRepository
	cache    *cache.Client
	ttl      time.Duration
	validate *validator.Validate
}

// NewUserService builds a UserService with repository and cache. A nil cache
// disables read caching.
func NewUserService(repo repository.UserRepository, cache *cache.Client, ttl time.Duration) UserService {
	return &userService{
		repo:     repo,
		cache:    cache,
		ttl:      ttl,
		validate: newValidator(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func profileCacheKey(id uint) string {
	return fmt.Sprintf("profile:%d", id)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	return s.repo.List(ctx)
}

func (s *userService) ListDirectory(ctx context.Context) ([]model.DirectoryEntry, error) {
	return s.repo.ListDirectory(ctx)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, userCacheKey(id), user, s.ttl)
	dropIfDeleted(ctx, s.cache, s.repo, id, userCacheKey(id))
	return user, nil
}

// dropIfDeleted removes a freshly cached entry when the user row is gone.
// DeleteUser removes the row before it invalidates, so a fill that lands
// after that invalidation still sees the row missing here.
func dropIfDeleted(ctx context.Context, c *cache.Client, repo repository.UserRepository, id uint, key string) {
	if c == nil {
		return
	}
	exists, err := repo.Exists(ctx, id)
	if err == nil && !exists {
		_ = c.Delete(ctx, key)
	}
}

func (s *userService) AddUser(ctx context.Context, input model.NewUser) (*model.User, error) {
	if err := s.checkRequired(input); err != nil {
		return nil, err
	}

	user := input.WithDefaults()
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// checkRequired turns validator failures into a ValidationError naming the
// missing JSON fields.
func (s *userService) checkRequired(input model.NewUser) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return &apperrors.ValidationError{Fields: fields}
}

// UpdateUser overwrites every editable column. admission_year keeps its
// stored value. The existence check and the write are separate statements;
// a concurrent delete in between turns the write into a no-op.
func (s *userService) UpdateUser(ctx context.Context, id uint, input model.UserUpdate) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrUserNotFound
	}

	if err := s.repo.Overwrite(ctx, id, input.WithDefaults()); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, userCacheKey(id), profileCacheKey(id))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, userCacheKey(id), profileCacheKey(id))
	return nil
}
