package dto

import (
	"fmt"
	"strings"

	"anoa.com/storyassistant/pkg/apperror"
)

const (
	OriginPersonalAnecdote = "Personal Anecdote"
	OriginWellKnownTale    = "Well-known Tale"

	TimeFrameCustomAge = "Custom Age"

	MaxFocus = 5
	MinAge   = 1
	MaxAge   = 120
)

var (
	StoryOrigins = []string{OriginPersonalAnecdote, OriginWellKnownTale}

	UseCases = []string{
		"Personal Branding",
		"Company Origin",
		"Product Launch",
		"Customer Success",
		"Team Building",
	}

	TimeFrames = []string{"Childhood", "Mid-career", "Recent Experience", TimeFrameCustomAge}

	FocusQualities = []string{
		"Generosity", "Integrity", "Loyalty", "Devotion", "Kindness", "Sincerity",
		"Self-control", "Confidence", "Persuasiveness", "Ambition", "Resourcefulness",
		"Decisiveness", "Faithfulness", "Patience", "Determination", "Persistence",
		"Fairness", "Cooperation", "Optimism", "Proactive", "Charisma", "Ethics",
		"Relentlessness", "Authority", "Enthusiasm", "Boldness",
	}

	Lengths = []string{
		"Short (250-500 words)",
		"Medium (500-1000 words)",
		"Long (1000-1500 words)",
	}

	StoryTypes = []string{
		"Where we came from: A founding Story",
		"Why we can't stay here: A case-for-change story",
		"Where we're going: A vision story",
		"How we're going to get there: A strategy story",
		"Why I lead the way I do: Leadership philosophy story",
		"Why you should want to work here: A rallying story",
		"Personal stories: Who you are, what you do, how you do it, and who you do it for",
		"What we believe: A story about values",
		"Who we serve: A customer story",
		"What we do for our customers: A sales story",
		"How we're different: A marketing story",
	}

	NarrativeStructures = []string{
		"Story-Spine (Default)",
		"The Story Hanger",
		"Hero's Journey",
		"Beginning to End",
		"In Media Res",
		"Nested Loops",
		"The Cliffhanger",
	}

	SimplifiedStructures = []string{
		"Overcoming the Monster",
		"Rags to Riches",
		"The Quest",
		"Voyage and Return",
		"Rebirth",
		"Comedy",
		"Tragedy",
	}

	CreativeEnhancements = []string{"Quotes", "Metaphors", "Comparisons", "Sensory Details", "Dialogue"}
)

// StoryParameters is the set of choices the user makes before generating.
type StoryParameters struct {
	StoryOrigin          string   `json:"story_origin"`
	UseCase              string   `json:"use_case"`
	TimeFrame            string   `json:"time_frame"`
	Age                  *int     `json:"age,omitempty"`
	Focus                []string `json:"focus"`
	Length               string   `json:"length"`
	StoryType            string   `json:"story_type"`
	NarrativeStructure   string   `json:"narrative_structure"`
	SimplifiedStructure  string   `json:"simplified_structure"`
	CreativeEnhancements []string `json:"creative_enhancements"`
}

type OptionsResponse struct {
	StoryOrigins         []string `json:"story_origins"`
	UseCases             []string `json:"use_cases"`
	TimeFrames           []string `json:"time_frames"`
	FocusQualities       []string `json:"focus_qualities"`
	MaxFocus             int      `json:"max_focus"`
	MinAge               int      `json:"min_age"`
	MaxAge               int      `json:"max_age"`
	Lengths              []string `json:"lengths"`
	StoryTypes           []string `json:"story_types"`
	NarrativeStructures  []string `json:"narrative_structures"`
	SimplifiedStructures []string `json:"simplified_structures"`
	CreativeEnhancements []string `json:"creative_enhancements"`
}

func Options() OptionsResponse {
	return OptionsResponse{
		StoryOrigins:         StoryOrigins,
		UseCases:             UseCases,
		TimeFrames:           TimeFrames,
		FocusQualities:       FocusQualities,
		MaxFocus:             MaxFocus,
		MinAge:               MinAge,
		MaxAge:               MaxAge,
		Lengths:              Lengths,
		StoryTypes:           StoryTypes,
		NarrativeStructures:  NarrativeStructures,
		SimplifiedStructures: SimplifiedStructures,
		CreativeEnhancements: CreativeEnhancements,
	}
}

// Validate checks every field against its catalogue. The age is required
// for "Custom Age" and rejected for any other time frame.
func (p StoryParameters) Validate() error {
	var problems []string

	check := func(field, value string, allowed []string) {
		if !contains(allowed, value) {
			problems = append(problems, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, "; ")))
		}
	}

	check("story_origin", p.StoryOrigin, StoryOrigins)
	check("use_case", p.UseCase, UseCases)
	check("time_frame", p.TimeFrame, TimeFrames)
	check("length", p.Length, Lengths)
	check("story_type", p.StoryType, StoryTypes)
	check("narrative_structure", p.NarrativeStructure, NarrativeStructures)
	check("simplified_structure", p.SimplifiedStructure, SimplifiedStructures)

	if p.TimeFrame == TimeFrameCustomAge {
		if p.Age == nil {
			problems = append(problems, "age is required when time_frame is Custom Age")
		} else if *p.Age < MinAge || *p.Age > MaxAge {
			problems = append(problems, fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge))
		}
	} else if p.Age != nil {
		problems = append(problems, "age is only allowed when time_frame is Custom Age")
	}

	if len(p.Focus) > MaxFocus {
		problems = append(problems, fmt.Sprintf("focus allows at most %d qualities", MaxFocus))
	}
	if err := checkSubset("focus", p.Focus, FocusQualities); err != "" {
		problems = append(problems, err)
	}
	if err := checkSubset("creative_enhancements", p.CreativeEnhancements, CreativeEnhancements); err != "" {
		problems = append(problems, err)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidInput, strings.Join(problems, ", "))
	}
	return nil
}

func checkSubset(field string, values, allowed []string) string {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if !contains(allowed, v) {
			return fmt.Sprintf("%s contains unknown value %q", field, v)
		}
		if _, dup := seen[v]; dup {
			return fmt.Sprintf("%s contains %q more than once", field, v)
		}
		seen[v] = struct{}{}
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
