package repository

import (
	"context"

	"gorm.io/gorm"

	"alumnidir/internal/model"
)

// InternshipRepository defines internship persistence operations.
type InternshipRepository interface {
	Create(ctx context.Context, internship *model.Internship) error
	FindByUserID(ctx context.Context, userID uint) ([]model.Internship, error)
}

type internshipRepository struct {
	db *gorm.DB
}

// NewInternshipRepository creates a new internship repository.
func NewInternshipRepository(db *gorm.DB) InternshipRepository {
	return &internshipRepository{db: db}
}

// Create creates a new internship record.
func (r *internshipRepository) Create(ctx context.Context, internship *model.Internship) error {
	return r.db.WithContext(ctx).Omit("User").Create(internship).Error
}

// FindByUserID returns a user's internships in insertion order.
func (r *internshipRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Internship, error) {
	internships := make([]model.Internship, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("internship_id").Find(&internships).Error; err != nil {
		return nil, err
	}
	return internships, nil
}
