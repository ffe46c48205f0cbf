package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nkarpov/portfolio-site-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects from the database, drafts included.
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Find(&projects).Error
	return projects, err
}

// FindPublished returns published projects, narrowed by category and
// technology when those filters are concrete. The "all" value and the
// empty string disable a filter; search and ordering happen in the
// catalog package.
func (r *ProjectRepo) FindPublished(category, tech string) ([]*models.Project, error) {
	query := r.db.Where("status = ?", models.StatusPublished)
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	if tech != "" && tech != "all" {
		query = query.Where(datatypes.JSONArrayQuery("technologies").Contains(tech))
	}

	var projects []*models.Project
	err := query.Find(&projects).Error
	return projects, err
}

// DistinctCategories returns the sorted set of categories present
// across all projects.
func (r *ProjectRepo) DistinctCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.Project{}).
		Where("category <> ''").
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

// FindByID returns a project by its ID, or nil when no such row exists.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update replaces all editable fields of an existing project.
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// SetFeatured flips the featured flag without touching other fields.
func (r *ProjectRepo) SetFeatured(id uuid.UUID, featured bool) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("featured", featured).Error
}

// SetStatus switches a project between draft and published.
func (r *ProjectRepo) SetStatus(id uuid.UUID, status string) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
