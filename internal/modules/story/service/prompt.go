package service

import (
	"strconv"
	"strings"

	"anoa.com/storyassistant/internal/modules/story/dto"
)

const SystemPrompt = "You are an AI storytelling assistant."

// BuildPrompt renders the user message sent to the model. Optional sections
// are left out when empty.
func BuildPrompt(params dto.StoryParameters, taleText, userStart string) string {
	var b strings.Builder

	b.WriteString("Generate a " + params.Length + " story with the following parameters:\n")
	b.WriteString("Story Origin: " + params.StoryOrigin + "\n")
	b.WriteString("Use Case: " + params.UseCase + "\n")
	b.WriteString("Time Frame: " + params.TimeFrame + "\n")
	if params.Age != nil && *params.Age != 0 {
		b.WriteString("Age: " + strconv.Itoa(*params.Age) + "\n")
	}
	b.WriteString("Focus: " + strings.Join(params.Focus, ", ") + "\n")
	b.WriteString("Story Type: " + params.StoryType + "\n")
	b.WriteString("Narrative Structure: " + params.NarrativeStructure + "\n")
	b.WriteString("Simplified Structure: " + params.SimplifiedStructure + "\n")
	b.WriteString("Creative Enhancements: " + strings.Join(params.CreativeEnhancements, ", ") + "\n")

	if taleText != "" {
		b.WriteString("Based on the following well-known tale, create a similar story:\n" + taleText + "\n")
	}
	if userStart != "" {
		b.WriteString("Start with the following user-provided story beginning:\n" + userStart + "\n")
	}

	return b.String()
}
