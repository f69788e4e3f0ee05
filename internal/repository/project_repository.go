package repository

import (
	"context"

	"gorm.io/gorm"

	"alumnidir/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByUserID(ctx context.Context, userID uint) ([]model.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project record.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit("User").Create(project).Error
}

// FindByUserID returns a user's projects in insertion order.
func (r *projectRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Project, error) {
	projects := make([]model.Project, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("project_id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
