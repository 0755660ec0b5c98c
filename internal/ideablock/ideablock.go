// Package ideablock decodes the delimited idea format produced by the
// language model:
//
//	[START_IDEA]
//	IDEA_NAME: ...
//	DESCRIPTION: ...
//	[END_IDEA]
//
// Decoding is lenient. Unknown lines are dropped, a repeated field keeps its
// last value, and a field value must fit on one line. A value line that
// itself starts with a known prefix is read as that field.
package ideablock

import (
	"strings"

	"github.com/UkralStul/video-ideas-service/internal/domain"
)

const (
	StartMarker = "[START_IDEA]"
	EndMarker   = "[END_IDEA]"
)

// Block is one decoded idea. Nil fields were not present in the source text.
type Block struct {
	IdeaName                *string `json:"ideaName,omitempty"`
	Description             *string `json:"description,omitempty"`
	TargetMarket            *string `json:"targetMarket,omitempty"`
	MVPFeatures             *string `json:"mvpFeatures,omitempty"`
	Monetization            *string `json:"monetization,omitempty"`
	TechnicalImplementation *string `json:"technicalImplementation,omitempty"`
	KeyInsights             *string `json:"keyInsights,omitempty"`
	ViabilityScore          *string `json:"viabilityScore,omitempty"`
	MarketPotential         *string `json:"marketPotential,omitempty"`
	TechnicalFeasibility    *string `json:"technicalFeasibility,omitempty"`
	ResourceRequirements    *string `json:"resourceRequirements,omitempty"`
	Competition             *string `json:"competition,omitempty"`
	SupportingEvidence      *string `json:"supportingEvidence,omitempty"`
}

type field struct {
	prefix string
	slot   func(*Block) **string
}

var fields = []field{
	{"IDEA_NAME:", func(b *Block) **string { return &b.IdeaName }},
	{"DESCRIPTION:", func(b *Block) **string { return &b.Description }},
	{"TARGET_MARKET:", func(b *Block) **string { return &b.TargetMarket }},
	{"MVP_FEATURES:", func(b *Block) **string { return &b.MVPFeatures }},
	{"MONETIZATION:", func(b *Block) **string { return &b.Monetization }},
	{"TECHNICAL_IMPLEMENTATION:", func(b *Block) **string { return &b.TechnicalImplementation }},
	{"KEY_INSIGHTS:", func(b *Block) **string { return &b.KeyInsights }},
	{"VIABILITY_SCORE:", func(b *Block) **string { return &b.ViabilityScore }},
	{"MARKET_POTENTIAL:", func(b *Block) **string { return &b.MarketPotential }},
	{"TECHNICAL_FEASIBILITY:", func(b *Block) **string { return &b.TechnicalFeasibility }},
	{"RESOURCE_REQUIREMENTS:", func(b *Block) **string { return &b.ResourceRequirements }},
	{"COMPETITION:", func(b *Block) **string { return &b.Competition }},
	{"SUPPORTING_EVIDENCE:", func(b *Block) **string { return &b.SupportingEvidence }},
}

// Parse extracts every idea block from raw, in source order. It never fails;
// text without usable blocks yields an empty slice.
func Parse(raw string) []Block {
	blocks := make([]Block, 0)

	fragments := strings.Split(raw, StartMarker)
	for _, fragment := range fragments[1:] {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		if end := strings.Index(fragment, EndMarker); end >= 0 {
			fragment = fragment[:end]
		}
		if block, ok := parseBlock(strings.TrimSpace(fragment)); ok {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func parseBlock(text string) (Block, bool) {
	var (
		block Block
		set   int
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, f := range fields {
			if rest, ok := strings.CutPrefix(line, f.prefix); ok {
				value := strings.TrimSpace(rest)
				*f.slot(&block) = &value
				set++
				break
			}
		}
	}
	return block, set > 0
}

// Metadata collects the analysis fields stored alongside a saved idea.
func (b Block) Metadata() domain.IdeaMetadata {
	return domain.IdeaMetadata{
		MVPFeatures:             deref(b.MVPFeatures),
		Monetization:            deref(b.Monetization),
		TechnicalImplementation: deref(b.TechnicalImplementation),
		KeyInsights:             deref(b.KeyInsights),
		ViabilityScore:          deref(b.ViabilityScore),
		MarketPotential:         deref(b.MarketPotential),
		TechnicalFeasibility:    deref(b.TechnicalFeasibility),
		ResourceRequirements:    deref(b.ResourceRequirements),
		Competition:             deref(b.Competition),
		SupportingEvidence:      deref(b.SupportingEvidence),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
