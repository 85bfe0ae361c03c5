package openai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStory(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		expectedTitle   string
		expectedContent string
	}{
		{
			name:            "Both markers present",
			raw:             "TÍTULO: O Dragão de Cristal\nHISTÓRIA: Era uma vez um dragão.\n\nEle voava alto.",
			expectedTitle:   "O Dragão de Cristal",
			expectedContent: "Era uma vez um dragão.\n\nEle voava alto.",
		},
		{
			name:            "Markers with extra whitespace",
			raw:             "TÍTULO:   A Floresta Falante  \nHISTÓRIA:   Num reino distante...",
			expectedTitle:   "A Floresta Falante",
			expectedContent: "Num reino distante...",
		},
		{
			name:            "No markers falls back to templated title",
			raw:             "Era uma vez uma menina chamada Alice que adorava estrelas.",
			expectedTitle:   "A Mágica Aventura de Alice",
			expectedContent: "Era uma vez uma menina chamada Alice que adorava estrelas.",
		},
		{
			name:            "Title marker only",
			raw:             "TÍTULO: Alice e a Lua\nEra uma vez uma menina.",
			expectedTitle:   "Alice e a Lua",
			expectedContent: "Era uma vez uma menina.",
		},
		{
			name:            "Content marker only",
			raw:             "HISTÓRIA: Era uma vez uma menina corajosa.",
			expectedTitle:   "A Mágica Aventura de Alice",
			expectedContent: "Era uma vez uma menina corajosa.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			story := ParseStory("Alice", tt.raw)
			assert.Equal(t, tt.expectedTitle, story.Title)
			assert.Equal(t, tt.expectedContent, story.Content)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(StoryParams{
		ChildName:         "João",
		ChildAge:          6,
		ChildGender:       "menino",
		StoryTheme:        "Aventura na Floresta",
		StoryValues:       []string{"coragem", "amizade"},
		AdditionalDetails: "adora dinossauros",
	})

	assert.Contains(t, prompt, "João")
	assert.Contains(t, prompt, "um menino de 6 anos")
	assert.Contains(t, prompt, "Aventura na Floresta")
	assert.Contains(t, prompt, "coragem, amizade")
	assert.Contains(t, prompt, "adora dinossauros")
	assert.Contains(t, prompt, titleMarker)
	assert.Contains(t, prompt, contentMarker)
	// mood defaults when not provided
	assert.Contains(t, prompt, "Tom da história: feliz")
}

func TestBuildPromptGirl(t *testing.T) {
	prompt := BuildPrompt(StoryParams{
		ChildName:   "Alice",
		ChildAge:    8,
		ChildGender: "menina",
		StoryTheme:  "Fundo do Mar",
		StoryMood:   "calmo",
	})

	assert.Contains(t, prompt, "uma menina de 8 anos")
	assert.Contains(t, prompt, "Tom da história: calmo")
	assert.False(t, strings.Contains(prompt, "Valores a serem ensinados"))
}
