package ideablock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCreateInput(t *testing.T) {
	b := Block{
		IdeaName:       ptr("Pet CRM"),
		Description:    ptr("CRM for groomers"),
		TargetMarket:   ptr("Salons"),
		ViabilityScore: ptr("8/10"),
	}

	in := b.ToCreateInput("user-1", []string{"Chan", "youtube"})

	assert.Equal(t, "Pet CRM", in.Title)
	assert.Equal(t, "CRM for groomers", in.Description)
	assert.Equal(t, []string{"Chan", "youtube"}, in.Tags)
	assert.Equal(t, "user-1", in.UserID)
	require.NotNil(t, in.Category)
	assert.Equal(t, "Salons", *in.Category)
	require.NotNil(t, in.Metadata)
	assert.Equal(t, "8/10", in.Metadata.ViabilityScore)
}

func TestToCreateInput_Placeholders(t *testing.T) {
	in := Block{MVPFeatures: ptr("Login")}.ToCreateInput("u", nil)

	assert.Equal(t, UntitledIdea, in.Title)
	assert.Equal(t, NoDescription, in.Description)
	assert.NotNil(t, in.Tags)
	assert.Empty(t, in.Tags)
	assert.Nil(t, in.Category)
}

func TestToCreateInput_TruncatesTitleByRunes(t *testing.T) {
	in := Block{IdeaName: ptr(strings.Repeat("é", 300))}.ToCreateInput("u", nil)

	assert.Equal(t, 255, len([]rune(in.Title)))
	assert.Nil(t, in.Metadata)
}
