package service

import (
	"context"
	"fmt"
	"time"

	"anoa.com/storyassistant/internal/modules/session/dto"
	"anoa.com/storyassistant/internal/modules/session/repository"
	"anoa.com/storyassistant/pkg/apperror"
)

type SessionService interface {
	// Get returns the stored state, or a fresh state on the main page.
	Get(ctx context.Context, userID string) (*dto.State, error)
	SetPage(ctx context.Context, userID, page string) (*dto.State, error)
	SetDraft(ctx context.Context, userID string, draft dto.Draft) (*dto.State, error)
	// UpdateDraftContent keeps the draft parameters and replaces the text.
	UpdateDraftContent(ctx context.Context, userID, title, content string) (*dto.State, error)
	Clear(ctx context.Context, userID string) error
}

type sessionService struct {
	store repository.Store
	now   func() time.Time
}

func NewSessionService(store repository.Store) SessionService {
	return &sessionService{store: store, now: time.Now}
}

func (s *sessionService) Get(ctx context.Context, userID string) (*dto.State, error) {
	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &dto.State{Page: dto.PageMain}, nil
	}
	if state.Page == "" {
		state.Page = dto.PageMain
	}
	return state, nil
}

func (s *sessionService) SetPage(ctx context.Context, userID, page string) (*dto.State, error) {
	switch page {
	case dto.PageMain, dto.PageProfessionals, dto.PageAbout:
	default:
		return nil, fmt.Errorf("%w: unknown page %q", apperror.ErrInvalidInput, page)
	}

	return s.update(ctx, userID, func(state *dto.State) {
		state.Page = page
	})
}

func (s *sessionService) SetDraft(ctx context.Context, userID string, draft dto.Draft) (*dto.State, error) {
	return s.update(ctx, userID, func(state *dto.State) {
		state.CurrentStory = &draft
	})
}

func (s *sessionService) UpdateDraftContent(ctx context.Context, userID, title, content string) (*dto.State, error) {
	return s.update(ctx, userID, func(state *dto.State) {
		if state.CurrentStory == nil {
			state.CurrentStory = &dto.Draft{}
		}
		state.CurrentStory.Title = title
		state.CurrentStory.Content = content
	})
}

func (s *sessionService) Clear(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, userID)
}

func (s *sessionService) update(ctx context.Context, userID string, mutate func(*dto.State)) (*dto.State, error) {
	state, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	mutate(state)
	state.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}
