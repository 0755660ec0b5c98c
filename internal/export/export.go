// Package export renders saved ideas as a Markdown or HTML document.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/yuin/goldmark"
)

// Markdown renders ideas in the given order under a single heading.
func Markdown(title string, ideas []*domain.Idea) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(ideas) == 0 {
		sb.WriteString("_No saved ideas._\n")
		return sb.String()
	}

	for _, idea := range ideas {
		fmt.Fprintf(&sb, "## %s\n\n", idea.Title)
		fmt.Fprintf(&sb, "%s\n\n", idea.Description)

		fmt.Fprintf(&sb, "- **Status:** %s\n", idea.Status)
		fmt.Fprintf(&sb, "- **Likes:** %d\n", idea.Likes)
		if idea.Category != nil && *idea.Category != "" {
			fmt.Fprintf(&sb, "- **Category:** %s\n", *idea.Category)
		}
		if len(idea.Tags) > 0 {
			fmt.Fprintf(&sb, "- **Tags:** %s\n", strings.Join(idea.Tags, ", "))
		}
		fmt.Fprintf(&sb, "- **Saved:** %s\n", idea.CreatedAt.UTC().Format("2006-01-02"))

		if md, ok := metadata(idea); ok {
			writeMetadata(&sb, md)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// HTML converts the Markdown rendering to an HTML fragment.
func HTML(title string, ideas []*domain.Idea) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(title, ideas)), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func metadata(idea *domain.Idea) (domain.IdeaMetadata, bool) {
	var md domain.IdeaMetadata
	if len(idea.Metadata) == 0 || string(idea.Metadata) == "null" {
		return md, false
	}
	if err := json.Unmarshal(idea.Metadata, &md); err != nil {
		return md, false
	}
	return md, md != (domain.IdeaMetadata{})
}

func writeMetadata(sb *strings.Builder, md domain.IdeaMetadata) {
	sb.WriteString("\n### Analysis\n\n")
	rows := []struct{ label, value string }{
		{"MVP features", md.MVPFeatures},
		{"Monetization", md.Monetization},
		{"Technical implementation", md.TechnicalImplementation},
		{"Key insights", md.KeyInsights},
		{"Viability score", md.ViabilityScore},
		{"Market potential", md.MarketPotential},
		{"Technical feasibility", md.TechnicalFeasibility},
		{"Resource requirements", md.ResourceRequirements},
		{"Competition", md.Competition},
		{"Supporting evidence", md.SupportingEvidence},
	}
	for _, r := range rows {
		if r.value != "" {
			fmt.Fprintf(sb, "- **%s:** %s\n", r.label, r.value)
		}
	}
}
