package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateRequest struct {
	Parameters StoryParameters `json:"parameters"`
	TaleTitle  string          `json:"tale_title"`
	StartText  string          `json:"start_text"`
}

type DraftResponse struct {
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	Parameters StoryParameters `json:"parameters"`
}

type SaveStoryRequest struct {
	Title      string           `json:"title" binding:"required,max=255"`
	Content    string           `json:"content" binding:"required"`
	Parameters *StoryParameters `json:"parameters"`
}

type SaveStoryResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

type StoryResponse struct {
	ID         uuid.UUID        `json:"id"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	Parameters *StoryParameters `json:"parameters,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

type ExportRequest struct {
	Content string `json:"content" binding:"required"`
	Format  string `json:"format"`
}

type ShareResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}
