package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SocialLink is one entry of the ordered social links list.
type SocialLink struct {
	ID       int64  `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Enabled  bool   `json:"enabled"`
	Order    int    `json:"order"`
}

// SocialLinks is a singleton document: the ordered link list plus the
// three placement visibility flags.
type SocialLinks struct {
	ID            uuid.UUID                       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Links         datatypes.JSONSlice[SocialLink] `json:"links" gorm:"type:jsonb"`
	ShowInHeader  bool                            `json:"showInHeader" gorm:"not null;default:true"`
	ShowInFooter  bool                            `json:"showInFooter" gorm:"not null;default:true"`
	ShowInContact bool                            `json:"showInContact" gorm:"not null;default:true"`
	CreatedAt     time.Time                       `json:"createdAt"`
	UpdatedAt     time.Time                       `json:"updatedAt"`
}

// DefaultSocialLinks returns the document stored on first read when the
// collection is still empty.
func DefaultSocialLinks() *SocialLinks {
	return &SocialLinks{
		Links:         datatypes.NewJSONSlice([]SocialLink{}),
		ShowInHeader:  true,
		ShowInFooter:  true,
		ShowInContact: true,
	}
}
