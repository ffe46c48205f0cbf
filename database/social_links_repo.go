package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nkarpov/portfolio-site-backend/models"
)

type SocialLinksRepo struct {
	db *gorm.DB
}

func NewSocialLinksRepo(db *gorm.DB) *SocialLinksRepo {
	return &SocialLinksRepo{db}
}

// Get returns the singleton social links document, creating it with
// defaults on first read.
func (r *SocialLinksRepo) Get() (*models.SocialLinks, error) {
	var links models.SocialLinks
	err := r.db.First(&links).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := models.DefaultSocialLinks()
		if err := r.db.Create(defaults).Error; err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &links, nil
}

// Update replaces the singleton document wholesale, keeping its identity.
func (r *SocialLinksRepo) Update(links *models.SocialLinks) error {
	existing, err := r.Get()
	if err != nil {
		return err
	}
	links.ID = existing.ID
	links.CreatedAt = existing.CreatedAt
	return r.db.Save(links).Error
}
