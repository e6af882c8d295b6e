package repository

import (
	"context"
	"testing"
	"time"

	"anoa.com/storyassistant/internal/modules/session/dto"
)

func TestMemoryStoreExpiresEntries(t *testing.T) {
	store := NewMemoryStore(time.Minute).(*memoryStore)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	if err := store.Save(ctx, "user-1", &dto.State{Page: dto.PageAbout}); err != nil {
		t.Fatalf("save: %v", err)
	}

	state, err := store.Load(ctx, "user-1")
	if err != nil || state == nil || state.Page != dto.PageAbout {
		t.Fatalf("expected stored state, got %+v, %v", state, err)
	}

	now = now.Add(2 * time.Minute)
	state, err = store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state != nil {
		t.Fatalf("expected expired state, got %+v", state)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	original := &dto.State{Page: dto.PageMain, CurrentStory: &dto.Draft{Title: "a"}}
	if err := store.Save(ctx, "user-1", original); err != nil {
		t.Fatalf("save: %v", err)
	}
	original.CurrentStory.Title = "mutated"

	state, err := store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.CurrentStory.Title != "a" {
		t.Fatalf("stored state was shared with caller: %q", state.CurrentStory.Title)
	}
}
