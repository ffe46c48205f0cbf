package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo     *ProjectRepo
	workInfoRepo    *WorkInfoRepo
	socialLinksRepo *SocialLinksRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:     NewProjectRepo(db),
		workInfoRepo:    NewWorkInfoRepo(db),
		socialLinksRepo: NewSocialLinksRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) WorkInfoRepo() *WorkInfoRepo {
	return d.workInfoRepo
}

func (d Database) SocialLinksRepo() *SocialLinksRepo {
	return d.socialLinksRepo
}
