package repository

import (
	"context"

	"anoa.com/storyassistant/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfessionalRepository interface {
	// SeedIfEmpty inserts the given rows only when the table has none.
	// It reports whether anything was inserted.
	SeedIfEmpty(ctx context.Context, rows []entity.Professional) (bool, error)
	FindAll(ctx context.Context) ([]entity.Professional, error)
	FindByID(ctx context.Context, id uint) (*entity.Professional, error)
	CreateBooking(ctx context.Context, booking *entity.Booking) error
	FindBookingsByUser(ctx context.Context, userID string) ([]entity.Booking, error)
}

type professionalRepository struct {
	db *gorm.DB
}

func NewProfessionalRepository(db *gorm.DB) ProfessionalRepository {
	return &professionalRepository{db: db}
}

func (r *professionalRepository) SeedIfEmpty(ctx context.Context, rows []entity.Professional) (bool, error) {
	seeded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Professional{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	return seeded, err
}

func (r *professionalRepository) FindAll(ctx context.Context) ([]entity.Professional, error) {
	var professionals []entity.Professional
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&professionals).Error; err != nil {
		return nil, err
	}
	return professionals, nil
}

func (r *professionalRepository) FindByID(ctx context.Context, id uint) (*entity.Professional, error) {
	var professional entity.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&professional).Error; err != nil {
		return nil, err
	}
	return &professional, nil
}

func (r *professionalRepository) CreateBooking(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(booking).Error
	})
}

func (r *professionalRepository) FindBookingsByUser(ctx context.Context, userID string) ([]entity.Booking, error) {
	var bookings []entity.Booking
	if err := r.db.WithContext(ctx).
		Preload("Professional").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
