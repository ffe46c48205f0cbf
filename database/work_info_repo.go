package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nkarpov/portfolio-site-backend/models"
)

type WorkInfoRepo struct {
	db *gorm.DB
}

func NewWorkInfoRepo(db *gorm.DB) *WorkInfoRepo {
	return &WorkInfoRepo{db}
}

// Get returns the singleton work info document, creating it with
// defaults on first read.
func (r *WorkInfoRepo) Get() (*models.WorkInfo, error) {
	var info models.WorkInfo
	err := r.db.First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := models.DefaultWorkInfo()
		if err := r.db.Create(defaults).Error; err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Update replaces the singleton document wholesale, keeping its identity.
func (r *WorkInfoRepo) Update(info *models.WorkInfo) error {
	existing, err := r.Get()
	if err != nil {
		return err
	}
	info.ID = existing.ID
	info.CreatedAt = existing.CreatedAt
	return r.db.Save(info).Error
}
