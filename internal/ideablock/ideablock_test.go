package ideablock

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestParse_NoiseAroundSingleBlock(t *testing.T) {
	raw := "noise [START_IDEA]\nIDEA_NAME: Foo\nDESCRIPTION: Bar\n[END_IDEA] trailing"

	blocks := Parse(raw)

	require.Len(t, blocks, 1)
	assert.Equal(t, Block{IdeaName: ptr("Foo"), Description: ptr("Bar")}, blocks[0])
	assert.Nil(t, blocks[0].TargetMarket)
	assert.Nil(t, blocks[0].SupportingEvidence)
}

func TestParse_KeepsSourceOrder(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&sb, "[START_IDEA]\nIDEA_NAME: Idea %d\n[END_IDEA]\n\n", i)
	}

	blocks := Parse(sb.String())

	require.Len(t, blocks, 5)
	for i, b := range blocks {
		require.NotNil(t, b.IdeaName)
		assert.Equal(t, fmt.Sprintf("Idea %d", i), *b.IdeaName)
	}
}

func TestParse_AllFields(t *testing.T) {
	raw := `Here are the ideas.

          [START_IDEA]
          IDEA_NAME: Niche CRM

          DESCRIPTION: A CRM for dog groomers
          TARGET_MARKET: Small grooming salons
          MVP_FEATURES: Booking, reminders
          MONETIZATION: Subscription
          TECHNICAL_IMPLEMENTATION: Web app
          KEY_INSIGHTS: Start local
          VIABILITY_SCORE: 7/10
          MARKET_POTENTIAL: Medium
          TECHNICAL_FEASIBILITY: High
          RESOURCE_REQUIREMENTS: Low
          COMPETITION: Generic CRMs
          SUPPORTING_EVIDENCE: "I built it in a weekend"
          [END_IDEA]`

	blocks := Parse(raw)

	require.Len(t, blocks, 1)
	b := blocks[0]
	assert.Equal(t, "Niche CRM", *b.IdeaName)
	assert.Equal(t, "A CRM for dog groomers", *b.Description)
	assert.Equal(t, "Small grooming salons", *b.TargetMarket)
	assert.Equal(t, "Booking, reminders", *b.MVPFeatures)
	assert.Equal(t, "Subscription", *b.Monetization)
	assert.Equal(t, "Web app", *b.TechnicalImplementation)
	assert.Equal(t, "Start local", *b.KeyInsights)
	assert.Equal(t, "7/10", *b.ViabilityScore)
	assert.Equal(t, "Medium", *b.MarketPotential)
	assert.Equal(t, "High", *b.TechnicalFeasibility)
	assert.Equal(t, "Low", *b.ResourceRequirements)
	assert.Equal(t, "Generic CRMs", *b.Competition)
	assert.Equal(t, `"I built it in a weekend"`, *b.SupportingEvidence)
}

func TestParse_UnrecognisedOnlyBlockIsDropped(t *testing.T) {
	raw := "[START_IDEA]\nNAME: nope\nsome prose\n[END_IDEA]\n[START_IDEA]\nIDEA_NAME: Kept\n[END_IDEA]"

	blocks := Parse(raw)

	require.Len(t, blocks, 1)
	assert.Equal(t, "Kept", *blocks[0].IdeaName)
}

func TestParse_DuplicatePrefixLastWins(t *testing.T) {
	raw := "[START_IDEA]\nVIABILITY_SCORE: 3/10\nVIABILITY_SCORE: 8/10\n[END_IDEA]"

	blocks := Parse(raw)

	require.Len(t, blocks, 1)
	assert.Equal(t, "8/10", *blocks[0].ViabilityScore)
}

func TestParse_MultiLineValuesAreTruncated(t *testing.T) {
	raw := "[START_IDEA]\nDESCRIPTION: first line\nsecond line is lost\n[END_IDEA]"

	blocks := Parse(raw)

	require.Len(t, blocks, 1)
	assert.Equal(t, "first line", *blocks[0].Description)
}

func TestParse_EmptyAndMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no markers", "IDEA_NAME: Outside any block"},
		{"whitespace blocks", "[START_IDEA]   \n\t[START_IDEA]\n"},
		{"only end marker", "IDEA_NAME: x\n[END_IDEA]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Parse(tt.raw)
			assert.NotNil(t, blocks)
			assert.Empty(t, blocks)
		})
	}
}

func TestParse_MissingEndMarkerUsesRestOfFragment(t *testing.T) {
	raw := "[START_IDEA]\nIDEA_NAME: One\n[START_IDEA]\nIDEA_NAME: Two\n[END_IDEA]"

	blocks := Parse(raw)

	require.Len(t, blocks, 2)
	assert.Equal(t, "One", *blocks[0].IdeaName)
	assert.Equal(t, "Two", *blocks[1].IdeaName)
}

func TestParse_TextAfterEndMarkerIgnored(t *testing.T) {
	raw := "[START_IDEA]\nIDEA_NAME: A\n[END_IDEA]\nCOMPETITION: leaked"

	blocks := Parse(raw)

	require.Len(t, blocks, 1)
	assert.Nil(t, blocks[0].Competition)
}

func TestBlock_Metadata(t *testing.T) {
	b := Block{IdeaName: ptr("x"), ViabilityScore: ptr("9/10"), Competition: ptr("none")}

	md := b.Metadata()

	assert.Equal(t, "9/10", md.ViabilityScore)
	assert.Equal(t, "none", md.Competition)
	assert.Empty(t, md.MVPFeatures)
}
