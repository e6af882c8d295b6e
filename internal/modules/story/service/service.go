package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"anoa.com/storyassistant/internal/entity"
	"anoa.com/storyassistant/internal/llm"
	search "anoa.com/storyassistant/internal/modules/search/service"
	sessionDto "anoa.com/storyassistant/internal/modules/session/dto"
	session "anoa.com/storyassistant/internal/modules/session/service"
	"anoa.com/storyassistant/internal/modules/story/dto"
	"anoa.com/storyassistant/internal/modules/story/repository"
	tale "anoa.com/storyassistant/internal/modules/tale/service"
	"anoa.com/storyassistant/internal/monitoring"
	"anoa.com/storyassistant/pkg/apperror"
	"anoa.com/storyassistant/pkg/export"
	"anoa.com/storyassistant/pkg/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Options struct {
	GenerateRateLimit time.Duration
	UploadFolder      string
}

// ExportedFile is a rendered story ready to be sent or uploaded.
type ExportedFile struct {
	Data        []byte
	FileName    string
	ContentType string
}

type StoryService interface {
	Generate(ctx context.Context, userID uuid.UUID, req dto.GenerateRequest) (*dto.DraftResponse, error)
	Save(ctx context.Context, userID uuid.UUID, req dto.SaveStoryRequest) (*dto.SaveStoryResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.StoryResponse, error)
	Get(ctx context.Context, userID uuid.UUID, storyID string) (*dto.StoryResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, storyID string) error
	Download(ctx context.Context, userID uuid.UUID, storyID, format string) (*ExportedFile, error)
	ExportContent(content, format string) (*ExportedFile, error)
	Share(ctx context.Context, userID uuid.UUID, storyID, format string) (*dto.ShareResponse, error)
}

type storyService struct {
	repo        repository.StoryRepository
	generator   llm.Provider
	tales       tale.TaleService
	sessions    session.SessionService
	search      search.StorySearchService
	fileStorage storage.FileStorage
	redisClient *redis.Client
	opts        Options
	now         func() time.Time
}

// NewStoryService wires the story workflow. searchSvc, fileStorage and
// redisClient may be nil; the matching features are then skipped or
// reported as unavailable.
func NewStoryService(
	repo repository.StoryRepository,
	generator llm.Provider,
	tales tale.TaleService,
	sessions session.SessionService,
	searchSvc search.StorySearchService,
	fileStorage storage.FileStorage,
	redisClient *redis.Client,
	opts Options,
) StoryService {
	return &storyService{
		repo:        repo,
		generator:   generator,
		tales:       tales,
		sessions:    sessions,
		search:      searchSvc,
		fileStorage: fileStorage,
		redisClient: redisClient,
		opts:        opts,
		now:         time.Now,
	}
}

func (s *storyService) Generate(ctx context.Context, userID uuid.UUID, req dto.GenerateRequest) (*dto.DraftResponse, error) {
	if err := req.Parameters.Validate(); err != nil {
		return nil, err
	}

	taleText := ""
	if req.Parameters.StoryOrigin == dto.OriginWellKnownTale && strings.TrimSpace(req.TaleTitle) != "" {
		t, err := s.tales.FindByTitle(strings.TrimSpace(req.TaleTitle))
		if err != nil {
			return nil, err
		}
		taleText = t.Text
	}

	start := strings.TrimSpace(req.StartText)

	allowed, err := checkAndSetRateLimit(ctx, s.redisClient, userID, generateAction, s.opts.GenerateRateLimit)
	if err != nil {
		log.Printf("Rate limit check failed for user %s: %v", userID, err)
	} else if !allowed {
		monitoring.StoryGenerations.WithLabelValues("rate_limited").Inc()
		ttl, _ := getRateLimitTTL(ctx, s.redisClient, userID, generateAction)
		return nil, &RateLimitError{RetryAfter: ttl}
	}

	prompt := BuildPrompt(req.Parameters, taleText, start)

	generated, err := s.generator.GenerateText(ctx, SystemPrompt, prompt)
	if err != nil {
		monitoring.StoryGenerations.WithLabelValues("error").Inc()
		log.Printf("Story generation error for user %s: %v", userID, err)
		if clearErr := clearRateLimit(ctx, s.redisClient, userID, generateAction); clearErr != nil {
			log.Printf("Failed to clear rate limit for user %s: %v", userID, clearErr)
		}
		return nil, apperror.ErrGeneration
	}
	monitoring.StoryGenerations.WithLabelValues("success").Inc()

	content := generated
	if start != "" {
		content = start + "\n\n" + generated
	}

	params := req.Parameters
	draft := &dto.DraftResponse{
		Title:      "Story_" + s.now().Format("20060102_150405"),
		Content:    content,
		Parameters: params,
	}

	if _, err := s.sessions.SetDraft(ctx, userID.String(), sessionDto.Draft{
		Title:      draft.Title,
		Content:    draft.Content,
		Parameters: &params,
	}); err != nil {
		log.Printf("Failed to store draft in session for user %s: %v", userID, err)
	}

	return draft, nil
}

func (s *storyService) Save(ctx context.Context, userID uuid.UUID, req dto.SaveStoryRequest) (*dto.SaveStoryResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", apperror.ErrInvalidInput)
	}

	params := req.Parameters
	if params == nil {
		params = s.draftParameters(ctx, userID)
	}

	raw := datatypes.JSON("null")
	if params != nil {
		if err := params.Validate(); err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to encode story parameters: %w", err)
		}
		raw = datatypes.JSON(encoded)
	}

	story := &entity.Story{
		UserID:     userID,
		Title:      title,
		Content:    req.Content,
		Parameters: raw,
	}

	if err := s.repo.Create(ctx, story); err != nil {
		log.Printf("Database error while saving story for user %s: %v", userID, err)
		return nil, fmt.Errorf("error saving story: %w", apperror.ErrDatabase)
	}

	if s.search != nil {
		if err := s.search.IndexStory(story); err != nil {
			log.Printf("Failed to index story %s: %v", story.ID, err)
		}
	}

	return &dto.SaveStoryResponse{ID: story.ID, Message: "Story saved successfully!"}, nil
}

func (s *storyService) List(ctx context.Context, userID uuid.UUID) ([]dto.StoryResponse, error) {
	stories, err := s.repo.FindByOwner(ctx, userID.String())
	if err != nil {
		log.Printf("Database error while listing stories for user %s: %v", userID, err)
		return nil, fmt.Errorf("error loading stories: %w", apperror.ErrDatabase)
	}

	res := make([]dto.StoryResponse, 0, len(stories))
	for i := range stories {
		res = append(res, toStoryResponse(&stories[i]))
	}
	return res, nil
}

func (s *storyService) Get(ctx context.Context, userID uuid.UUID, storyID string) (*dto.StoryResponse, error) {
	story, err := s.findOwned(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	res := toStoryResponse(story)
	return &res, nil
}

func (s *storyService) Delete(ctx context.Context, userID uuid.UUID, storyID string) error {
	id, err := uuid.Parse(storyID)
	if err != nil {
		return fmt.Errorf("story not found: %w", apperror.ErrNotFound)
	}

	affected, err := s.repo.DeleteByOwner(ctx, userID.String(), id.String())
	if err != nil {
		log.Printf("Database error while deleting story %s: %v", id, err)
		return fmt.Errorf("error deleting story: %w", apperror.ErrDatabase)
	}
	if affected == 0 {
		return fmt.Errorf("story not found: %w", apperror.ErrNotFound)
	}

	if s.search != nil {
		if err := s.search.DeleteStory(id.String()); err != nil {
			log.Printf("Failed to remove story %s from index: %v", id, err)
		}
	}

	return nil
}

func (s *storyService) Download(ctx context.Context, userID uuid.UUID, storyID, format string) (*ExportedFile, error) {
	story, err := s.findOwned(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	return s.ExportContent(story.Content, format)
}

func (s *storyService) ExportContent(content, format string) (*ExportedFile, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidInput, err)
	}

	data, err := export.Export(content, f)
	if err != nil {
		return nil, fmt.Errorf("failed to export story: %w", err)
	}

	return &ExportedFile{
		Data:        data,
		FileName:    export.FileName(f, s.now()),
		ContentType: export.ContentType(f),
	}, nil
}

func (s *storyService) Share(ctx context.Context, userID uuid.UUID, storyID, format string) (*dto.ShareResponse, error) {
	if s.fileStorage == nil {
		return nil, fmt.Errorf("file sharing is not configured: %w", apperror.ErrServiceUnavailable)
	}

	file, err := s.Download(ctx, userID, storyID, format)
	if err != nil {
		return nil, err
	}

	url, err := s.fileStorage.Upload(ctx, bytes.NewReader(file.Data), s.opts.UploadFolder, file.FileName)
	if err != nil {
		log.Printf("Failed to upload story %s: %v", storyID, err)
		return nil, fmt.Errorf("error sharing story: %w", apperror.ErrServiceUnavailable)
	}

	return &dto.ShareResponse{URL: url, FileName: file.FileName}, nil
}

// findOwned hides other users' stories behind the same not-found error as
// missing ones.
func (s *storyService) findOwned(ctx context.Context, userID uuid.UUID, storyID string) (*entity.Story, error) {
	id, err := uuid.Parse(storyID)
	if err != nil {
		return nil, fmt.Errorf("story not found: %w", apperror.ErrNotFound)
	}

	story, err := s.repo.FindByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("story not found: %w", apperror.ErrNotFound)
		}
		log.Printf("Database error while loading story %s: %v", id, err)
		return nil, fmt.Errorf("error loading story: %w", apperror.ErrDatabase)
	}
	if story.UserID != userID {
		return nil, fmt.Errorf("story not found: %w", apperror.ErrNotFound)
	}

	return story, nil
}

func (s *storyService) draftParameters(ctx context.Context, userID uuid.UUID) *dto.StoryParameters {
	state, err := s.sessions.Get(ctx, userID.String())
	if err != nil {
		log.Printf("Failed to load session for user %s: %v", userID, err)
		return nil
	}
	if state.CurrentStory == nil {
		return nil
	}
	return state.CurrentStory.Parameters
}

func toStoryResponse(story *entity.Story) dto.StoryResponse {
	res := dto.StoryResponse{
		ID:        story.ID,
		Title:     story.Title,
		Content:   story.Content,
		CreatedAt: story.CreatedAt,
	}

	if len(story.Parameters) > 0 && string(story.Parameters) != "null" {
		var params dto.StoryParameters
		if err := json.Unmarshal(story.Parameters, &params); err == nil {
			res.Parameters = &params
		}
	}

	return res
}
