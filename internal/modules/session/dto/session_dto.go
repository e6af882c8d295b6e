package dto

import (
	"time"

	storyDto "anoa.com/storyassistant/internal/modules/story/dto"
)

const (
	PageMain          = "main"
	PageProfessionals = "professionals"
	PageAbout         = "about"
)

// Draft is the story currently being edited. It lives only in the session
// until the user saves it.
type Draft struct {
	Title      string                    `json:"title"`
	Content    string                    `json:"content"`
	Parameters *storyDto.StoryParameters `json:"parameters,omitempty"`
}

type State struct {
	Page         string    `json:"page"`
	CurrentStory *Draft    `json:"current_story"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SetPageRequest struct {
	Page string `json:"page" binding:"required,oneof=main professionals about"`
}

type UpdateDraftRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}
