package dto

import (
	"errors"
	"testing"

	"anoa.com/storyassistant/pkg/apperror"
)

func validParameters() StoryParameters {
	return StoryParameters{
		StoryOrigin:         OriginPersonalAnecdote,
		UseCase:             "Team Building",
		TimeFrame:           "Mid-career",
		Focus:               []string{"Optimism"},
		Length:              "Medium (500-1000 words)",
		StoryType:           "Who we serve: A customer story",
		NarrativeStructure:  "Story-Spine (Default)",
		SimplifiedStructure: "Rebirth",
	}
}

func intPtr(v int) *int { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *StoryParameters)
		ok     bool
	}{
		{name: "valid", mutate: func(p *StoryParameters) {}, ok: true},
		{name: "custom age in range", mutate: func(p *StoryParameters) {
			p.TimeFrame = TimeFrameCustomAge
			p.Age = intPtr(120)
		}, ok: true},
		{name: "custom age missing", mutate: func(p *StoryParameters) {
			p.TimeFrame = TimeFrameCustomAge
		}},
		{name: "custom age out of range", mutate: func(p *StoryParameters) {
			p.TimeFrame = TimeFrameCustomAge
			p.Age = intPtr(0)
		}},
		{name: "age without custom time frame", mutate: func(p *StoryParameters) {
			p.Age = intPtr(30)
		}},
		{name: "unknown use case", mutate: func(p *StoryParameters) {
			p.UseCase = "Fundraising"
		}},
		{name: "too many focus qualities", mutate: func(p *StoryParameters) {
			p.Focus = []string{"Generosity", "Integrity", "Loyalty", "Devotion", "Kindness", "Sincerity"}
		}},
		{name: "five focus qualities", mutate: func(p *StoryParameters) {
			p.Focus = []string{"Generosity", "Integrity", "Loyalty", "Devotion", "Kindness"}
		}, ok: true},
		{name: "duplicate focus", mutate: func(p *StoryParameters) {
			p.Focus = []string{"Ethics", "Ethics"}
		}},
		{name: "unknown enhancement", mutate: func(p *StoryParameters) {
			p.CreativeEnhancements = []string{"Rhymes"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParameters()
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, apperror.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestOptionsCatalogue(t *testing.T) {
	opts := Options()
	if len(opts.FocusQualities) != 26 || len(opts.StoryTypes) != 11 {
		t.Fatalf("unexpected catalogue sizes: %d focus, %d story types", len(opts.FocusQualities), len(opts.StoryTypes))
	}
	if len(opts.NarrativeStructures) != 7 || len(opts.SimplifiedStructures) != 7 {
		t.Fatalf("unexpected structure counts")
	}
}
