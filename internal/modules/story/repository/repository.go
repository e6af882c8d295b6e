package repository

import (
	"context"

	"anoa.com/storyassistant/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoryRepository interface {
	Create(ctx context.Context, story *entity.Story) error
	FindByID(ctx context.Context, id string) (*entity.Story, error)
	// FindByOwner returns the owner's stories, newest first.
	FindByOwner(ctx context.Context, ownerID string) ([]entity.Story, error)
	// DeleteByOwner reports how many rows matched both id and owner.
	DeleteByOwner(ctx context.Context, ownerID, id string) (int64, error)
}

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *entity.Story) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(story).Error
	})
}

func (r *storyRepository) FindByID(ctx context.Context, id string) (*entity.Story, error) {
	var story entity.Story
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&story).Error; err != nil {
		return nil, err
	}

	return &story, nil
}

func (r *storyRepository) FindByOwner(ctx context.Context, ownerID string) ([]entity.Story, error) {
	var stories []entity.Story
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&stories).Error; err != nil {
		return nil, err
	}

	return stories, nil
}

func (r *storyRepository) DeleteByOwner(ctx context.Context, ownerID, id string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&entity.Story{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}
