package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project status values. Only published projects appear in the public catalog.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Categories is the fixed vocabulary a project category must come from.
var Categories = []string{"Web", "Mobile", "Desktop", "Design", "AI/ML", "Other"}

// Technologies is the fixed vocabulary project technologies are drawn from.
var Technologies = []string{
	"React", "Next.js", "Vue", "Angular", "TypeScript", "JavaScript",
	"Node.js", "Go", "Python", "PHP", "PostgreSQL", "MongoDB", "Firebase",
	"Redis", "Docker", "Kubernetes", "Tailwind", "Figma", "Swift", "Kotlin",
	"Flutter", "GraphQL",
}

// ProcessStep is one entry of a project's process timeline. The ID is only
// unique within the owning project; it addresses edits and removals.
type ProcessStep struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"` // planned, in-progress, completed
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// ResultMetric is one entry of a project's result metrics list.
type ResultMetric struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
	Type  string `json:"type"` // percentage, number, time, currency
}

// Project is the central entity of the portfolio catalog.
type Project struct {
	ID               uuid.UUID                         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title            string                            `json:"title" gorm:"type:varchar(100);not null"`
	ShortDescription string                            `json:"shortDescription" gorm:"type:varchar(200);not null"`
	FullDescription  string                            `json:"fullDescription" gorm:"type:text"`
	Functionality    string                            `json:"functionality" gorm:"type:text"`
	Challenges       string                            `json:"challenges" gorm:"type:text"`
	Results          string                            `json:"results" gorm:"type:text"`
	Thumbnail        string                            `json:"thumbnail" gorm:"type:text"`
	ProcessSteps     datatypes.JSONSlice[ProcessStep]  `json:"processSteps" gorm:"type:jsonb"`
	ResultMetrics    datatypes.JSONSlice[ResultMetric] `json:"resultMetrics" gorm:"type:jsonb"`
	Technologies     datatypes.JSONSlice[string]       `json:"technologies" gorm:"type:jsonb"`
	Category         string                            `json:"category" gorm:"type:varchar(32);index"`
	GithubURL        string                            `json:"githubUrl" gorm:"type:text"`
	DemoURL          string                            `json:"demoUrl" gorm:"type:text"`
	Status           string                            `json:"status" gorm:"type:varchar(16);not null;default:draft;index"`
	Featured         bool                              `json:"featured" gorm:"not null;default:false"`
	StartedAt        *time.Time                        `json:"startedAt,omitempty"`
	CompletedAt      *time.Time                        `json:"completedAt,omitempty"`
	ClientName       string                            `json:"clientName,omitempty" gorm:"type:varchar(120)"`
	CreatedAt        time.Time                         `json:"createdAt"`
	UpdatedAt        time.Time                         `json:"updatedAt"`
}

// SortDate is the date the catalog orders by: startedAt when set,
// otherwise createdAt.
func (p *Project) SortDate() time.Time {
	if p.StartedAt != nil {
		return *p.StartedAt
	}
	return p.CreatedAt
}

// HasTechnology reports whether tech is in the project's technology set.
func (p *Project) HasTechnology(tech string) bool {
	for _, t := range p.Technologies {
		if t == tech {
			return true
		}
	}
	return false
}

// ValidCategory reports whether c is in the fixed category vocabulary.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
