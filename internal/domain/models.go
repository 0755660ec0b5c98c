package domain

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Status is the publication state of an idea.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Idea is a saved business idea.
type Idea struct {
	ID          string         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[];not null;default:'{}'"`
	Category    *string        `json:"category" gorm:"type:varchar(255)"`
	Status      Status         `json:"status" gorm:"type:varchar(16);not null;default:'DRAFT'"`
	UserID      string         `json:"userId" gorm:"type:varchar(255);not null;index"`
	Likes       int64          `json:"likes" gorm:"not null;default:0"`
	IsArchived  bool           `json:"isArchived" gorm:"not null;default:false"`
	Metadata    datatypes.JSON `json:"metadata" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"not null;default:now()"`
	UpdatedAt   time.Time      `json:"updatedAt" gorm:"not null;default:now()"`
}

// IdeaMetadata is the analysis detail stored alongside an idea.
type IdeaMetadata struct {
	MVPFeatures             string `json:"mvpFeatures,omitempty"`
	Monetization            string `json:"monetization,omitempty"`
	TechnicalImplementation string `json:"technicalImplementation,omitempty"`
	KeyInsights             string `json:"keyInsights,omitempty"`
	ViabilityScore          string `json:"viabilityScore,omitempty"`
	MarketPotential         string `json:"marketPotential,omitempty"`
	TechnicalFeasibility    string `json:"technicalFeasibility,omitempty"`
	ResourceRequirements    string `json:"resourceRequirements,omitempty"`
	Competition             string `json:"competition,omitempty"`
	SupportingEvidence      string `json:"supportingEvidence,omitempty"`
}

// IdeaPatch holds the fields a client may change on an existing idea.
// Nil fields are left untouched.
type IdeaPatch struct {
	Title       *string
	Description *string
	Tags        []string
	Category    *string
	Status      *Status
}

// Empty reports whether the patch changes nothing.
func (p IdeaPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Tags == nil && p.Category == nil && p.Status == nil
}

// Apply copies the set fields of p onto idea.
func (p IdeaPatch) Apply(idea *Idea) {
	if p.Title != nil {
		idea.Title = *p.Title
	}
	if p.Description != nil {
		idea.Description = *p.Description
	}
	if p.Tags != nil {
		idea.Tags = append(pq.StringArray{}, p.Tags...)
	}
	if p.Category != nil {
		c := *p.Category
		idea.Category = &c
	}
	if p.Status != nil {
		idea.Status = *p.Status
	}
}
