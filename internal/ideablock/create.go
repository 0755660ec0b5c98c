package ideablock

import (
	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/service"
)

const (
	UntitledIdea  = "Untitled Idea"
	NoDescription = "No description available"
	maxTitleRunes = 255
)

// ToCreateInput builds the request that saves b for userID. Missing names
// and descriptions get placeholders so the request passes validation.
func (b Block) ToCreateInput(userID string, tags []string) service.CreateInput {
	title := deref(b.IdeaName)
	if title == "" {
		title = UntitledIdea
	}
	if r := []rune(title); len(r) > maxTitleRunes {
		title = string(r[:maxTitleRunes])
	}

	description := deref(b.Description)
	if description == "" {
		description = NoDescription
	}

	if tags == nil {
		tags = []string{}
	}

	in := service.CreateInput{
		Title:       title,
		Description: description,
		Tags:        tags,
		UserID:      userID,
	}
	if b.TargetMarket != nil && *b.TargetMarket != "" {
		category := *b.TargetMarket
		in.Category = &category
	}
	if md := b.Metadata(); md != (domain.IdeaMetadata{}) {
		in.Metadata = &md
	}
	return in
}
