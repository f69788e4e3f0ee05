package repository

import (
	"context"

	"gorm.io/gorm"

	"alumnidir/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByIDWithLookups(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]model.UserSummary, error)
	ListDirectory(ctx context.Context) ([]model.DirectoryEntry, error)
	Overwrite(ctx context.Context, id uint, fields *model.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("Programme", "Branch").Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithLookups loads the user left-joined to its programme and branch.
// A missing lookup leaves the relation empty rather than failing.
func (r *userRepository) FindByIDWithLookups(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Joins("Programme").
		Joins("Branch").
		Where("users.user_id = ?", id).
		Take(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email_id = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.UserSummary, error) {
	summaries := make([]model.UserSummary, 0)
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("user_id", "first_name", "last_name", "email_id", "phone_number", "gender", "admission_year").
		Order("user_id").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *userRepository) ListDirectory(ctx context.Context) ([]model.DirectoryEntry, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("Programme").
		Joins("Branch").
		Order("users.user_id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	entries := make([]model.DirectoryEntry, 0, len(users))
	for i := range users {
		entries = append(entries, users[i].DirectoryEntry())
	}
	return entries, nil
}

// Overwrite writes every editable column from fields, zero values included.
func (r *userRepository) Overwrite(ctx context.Context, id uint, fields *model.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", id).
		Select(model.EditableUserColumns).
		Updates(fields).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&model.User{}).Error
}
