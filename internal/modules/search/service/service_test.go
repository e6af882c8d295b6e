package service

import (
	"testing"
	"time"

	"anoa.com/storyassistant/internal/entity"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

func TestBuildDocStripsMarkupAndScopesToOwner(t *testing.T) {
	s := &meiliSearchService{sanitizer: bluemonday.StrictPolicy()}
	owner := uuid.New()
	story := &entity.Story{
		ID:        uuid.New(),
		UserID:    owner,
		Title:     "<b>Test</b>",
		Content:   "Once <script>alert(1)</script>upon\n\n a   time &amp; more",
		CreatedAt: time.Unix(1700000000, 0),
	}

	doc := s.buildDoc(story)
	if doc.UserID != owner.String() {
		t.Fatalf("unexpected owner: %q", doc.UserID)
	}
	if doc.Title != "Test" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
	if doc.Content != "Once upon a time & more" {
		t.Fatalf("unexpected content: %q", doc.Content)
	}
	if doc.CreatedAt != 1700000000 {
		t.Fatalf("unexpected created_at: %d", doc.CreatedAt)
	}
}

func TestTenantSearchRulesFilterByUser(t *testing.T) {
	rules := tenantSearchRules("abc")
	stories, ok := rules["stories"].(map[string]any)
	if !ok {
		t.Fatalf("expected stories rule, got %#v", rules)
	}
	if stories["filter"] != "user_id = 'abc'" {
		t.Fatalf("unexpected filter: %#v", stories["filter"])
	}
}

func TestGenerateSearchTokenWithoutSigningKey(t *testing.T) {
	s := &meiliSearchService{sanitizer: bluemonday.StrictPolicy()}
	if _, err := s.GenerateSearchToken("abc"); err == nil {
		t.Fatalf("expected error without signing key")
	}
}
