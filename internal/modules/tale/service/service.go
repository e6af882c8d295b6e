package service

import (
	"fmt"
	"log"
	"sync"

	"anoa.com/storyassistant/internal/modules/tale/dto"
	"anoa.com/storyassistant/internal/modules/tale/repository"
	"anoa.com/storyassistant/pkg/apperror"
)

type TaleService interface {
	List() []dto.Tale
	FindByTitle(title string) (*dto.Tale, error)
}

type taleService struct {
	repo  repository.TaleRepository
	once  sync.Once
	tales []dto.Tale
}

func NewTaleService(repo repository.TaleRepository) TaleService {
	return &taleService{repo: repo}
}

// List loads the catalogue on first use. A missing or unreadable workbook
// is logged and yields an empty catalogue.
func (s *taleService) List() []dto.Tale {
	s.once.Do(func() {
		tales, err := s.repo.LoadAll()
		if err != nil {
			log.Printf("⚠️ Well-known tales unavailable: %v", err)
			tales = []dto.Tale{}
		}
		s.tales = tales
		log.Printf("📚 Loaded %d well-known tales", len(tales))
	})
	return s.tales
}

func (s *taleService) FindByTitle(title string) (*dto.Tale, error) {
	for _, tale := range s.List() {
		if tale.Title == title {
			t := tale
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown tale %q", apperror.ErrInvalidInput, title)
}
