package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PricingPlan is one offer on the work terms page.
type PricingPlan struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Period   string   `json:"period,omitempty"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular"`
}

// WorkStep describes one stage of the collaboration process.
type WorkStep struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
}

// Benefit is a selling point shown on the work terms page.
type Benefit struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// FAQ is a question/answer pair.
type FAQ struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// WorkInfo is a singleton document holding everything on the work terms
// page: pricing, process, benefits, FAQs and contact particulars. It is
// created lazily with defaults on first read.
type WorkInfo struct {
	ID           uuid.UUID                         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PricingPlans datatypes.JSONSlice[PricingPlan]  `json:"pricingPlans" gorm:"type:jsonb"`
	ProcessSteps datatypes.JSONSlice[WorkStep]     `json:"processSteps" gorm:"type:jsonb"`
	Benefits     datatypes.JSONSlice[Benefit]      `json:"benefits" gorm:"type:jsonb"`
	FAQs         datatypes.JSONSlice[FAQ]          `json:"faqs" gorm:"type:jsonb"`
	ContactEmail string                            `json:"contactEmail" gorm:"type:varchar(254)"`
	ContactPhone string                            `json:"contactPhone" gorm:"type:varchar(32)"`
	Telegram     string                            `json:"telegram" gorm:"type:varchar(120)"`
	Availability string                            `json:"availability" gorm:"type:varchar(200)"`
	CreatedAt    time.Time                         `json:"createdAt"`
	UpdatedAt    time.Time                         `json:"updatedAt"`
}

// DefaultWorkInfo returns the document stored on first read when the
// collection is still empty.
func DefaultWorkInfo() *WorkInfo {
	return &WorkInfo{
		PricingPlans: datatypes.NewJSONSlice([]PricingPlan{}),
		ProcessSteps: datatypes.NewJSONSlice([]WorkStep{}),
		Benefits:     datatypes.NewJSONSlice([]Benefit{}),
		FAQs:         datatypes.NewJSONSlice([]FAQ{}),
		Availability: "open",
	}
}
