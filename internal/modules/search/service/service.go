package service

import (
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"anoa.com/storyassistant/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const (
	storiesIndex   = "stories"
	signingKeyName = "StoryTenantTokenSigner"
)

type StorySearchService interface {
	IndexStory(story *entity.Story) error
	DeleteStory(id string) error
	// GenerateSearchToken issues a tenant token that can only see the
	// given user's stories.
	GenerateSearchToken(userID string) (string, error)
}

type meiliSearchService struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
	sanitizer     *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) StorySearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	s.initSigningKey()
	return s
}

func (s *meiliSearchService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{
		Limit: 20,
	})
	if err != nil {
		log.Printf("Failed to get meilisearch keys: %v", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == signingKeyName {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			log.Println("Found existing Meilisearch signing key")
			return
		}
	}

	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign story tenant tokens",
		Name:        signingKeyName,
		Actions:     []string{"search"},
		Indexes:     []string{storiesIndex},
		ExpiresAt:   time.Now().AddDate(100, 0, 0),
	})
	if err != nil {
		log.Printf("Failed to create signing key: %v", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
	log.Println("Created new Meilisearch signing key")
}

func (s *meiliSearchService) initIndexes() {
	filterable := []any{"user_id"}
	if _, err := s.client.Index(storiesIndex).UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("Failed to update stories filterable attributes: %v", err)
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index(storiesIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update stories sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliStoryDoc struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

func (s *meiliSearchService) buildDoc(story *entity.Story) meiliStoryDoc {
	return meiliStoryDoc{
		ID:        story.ID.String(),
		UserID:    story.UserID.String(),
		Title:     s.cleanContentForIndex(story.Title),
		Content:   s.cleanContentForIndex(story.Content),
		CreatedAt: story.CreatedAt.Unix(),
	}
}

func (s *meiliSearchService) cleanContentForIndex(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexStory(story *entity.Story) error {
	doc := s.buildDoc(story)

	task, err := s.client.Index(storiesIndex).AddDocuments([]meiliStoryDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed story %s, task id: %d", story.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeleteStory(id string) error {
	_, err := s.client.Index(storiesIndex).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) GenerateSearchToken(userID string) (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	return s.client.GenerateTenantToken(s.signingKeyUID, tenantSearchRules(userID), &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
}

func tenantSearchRules(userID string) map[string]any {
	return map[string]any{
		storiesIndex: map[string]any{
			"filter": fmt.Sprintf("user_id = '%s'", userID),
		},
	}
}

func strPtr(s string) *string {
	return &s
}
