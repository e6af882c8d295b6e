package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"anoa.com/storyassistant/internal/entity"
	"anoa.com/storyassistant/internal/modules/professional/dto"
	"anoa.com/storyassistant/internal/modules/professional/repository"
	"anoa.com/storyassistant/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	slotsPerProfessional = 3
	firstSlotHour        = 9
	lastSlotHour         = 17
)

var defaultProfessionals = []entity.Professional{
	{Name: "John Doe", Bio: "Expert storyteller with 10 years of experience in corporate narratives.", Experience: 10, Rating: 4.8, Price: 150},
	{Name: "Jane Smith", Bio: "Specializes in personal branding stories with a touch of humor.", Experience: 8, Rating: 4.7, Price: 120},
	{Name: "Mike Johnson", Bio: "Master of fantasy tales and creative writing workshops.", Experience: 15, Rating: 4.9, Price: 200},
	{Name: "Sarah Brown", Bio: "Focuses on inspirational stories for motivational speaking.", Experience: 12, Rating: 4.6, Price: 180},
	{Name: "David Lee", Bio: "Experienced in crafting compelling product launch stories.", Experience: 7, Rating: 4.5, Price: 100},
}

type ProfessionalService interface {
	// ListProfessionals seeds the default storytellers on first use and
	// offers fresh slots on every call.
	ListProfessionals(ctx context.Context) ([]dto.ProfessionalResponse, error)
	Book(ctx context.Context, userID uuid.UUID, req dto.BookRequest) (*dto.BookingResponse, error)
	ListBookings(ctx context.Context, userID uuid.UUID) ([]dto.BookingResponse, error)
}

type professionalService struct {
	repo  repository.ProfessionalRepository
	slots func() []string
}

func NewProfessionalService(repo repository.ProfessionalRepository) ProfessionalService {
	return &professionalService{repo: repo, slots: randomSlots}
}

func (s *professionalService) ListProfessionals(ctx context.Context) ([]dto.ProfessionalResponse, error) {
	rows := make([]entity.Professional, len(defaultProfessionals))
	copy(rows, defaultProfessionals)

	seeded, err := s.repo.SeedIfEmpty(ctx, rows)
	if err != nil {
		log.Printf("Database error while seeding professionals: %v", err)
		return nil, fmt.Errorf("error loading professionals: %w", apperror.ErrDatabase)
	}
	if seeded {
		log.Printf("✅ Seeded %d professional storytellers", len(rows))
	}

	professionals, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Printf("Database error while listing professionals: %v", err)
		return nil, fmt.Errorf("error loading professionals: %w", apperror.ErrDatabase)
	}

	res := make([]dto.ProfessionalResponse, 0, len(professionals))
	for _, p := range professionals {
		item := toProfessionalResponse(p)
		item.AvailableSlots = s.slots()
		res = append(res, item)
	}
	return res, nil
}

func (s *professionalService) Book(ctx context.Context, userID uuid.UUID, req dto.BookRequest) (*dto.BookingResponse, error) {
	slot := strings.TrimSpace(req.Slot)
	if slot == "" {
		return nil, fmt.Errorf("%w: slot is required", apperror.ErrInvalidInput)
	}

	professional, err := s.repo.FindByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("professional not found: %w", apperror.ErrNotFound)
		}
		log.Printf("Database error while loading professional %d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("error booking session: %w", apperror.ErrDatabase)
	}

	booking := &entity.Booking{
		UserID:         userID,
		ProfessionalID: professional.ID,
		Slot:           slot,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		log.Printf("Database error while booking professional %d: %v", professional.ID, err)
		return nil, fmt.Errorf("error booking session: %w", apperror.ErrDatabase)
	}

	return &dto.BookingResponse{
		ID:           booking.ID,
		Professional: toProfessionalResponse(*professional),
		Slot:         booking.Slot,
		CreatedAt:    booking.CreatedAt,
		Message:      fmt.Sprintf("Booked a session with %s at %s", professional.Name, booking.Slot),
	}, nil
}

func (s *professionalService) ListBookings(ctx context.Context, userID uuid.UUID) ([]dto.BookingResponse, error) {
	bookings, err := s.repo.FindBookingsByUser(ctx, userID.String())
	if err != nil {
		log.Printf("Database error while listing bookings: %v", err)
		return nil, fmt.Errorf("error loading bookings: %w", apperror.ErrDatabase)
	}

	res := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		res = append(res, dto.BookingResponse{
			ID:           b.ID,
			Professional: toProfessionalResponse(b.Professional),
			Slot:         b.Slot,
			CreatedAt:    b.CreatedAt,
		})
	}
	return res, nil
}

func toProfessionalResponse(p entity.Professional) dto.ProfessionalResponse {
	return dto.ProfessionalResponse{
		ID:         p.ID,
		Name:       p.Name,
		Bio:        p.Bio,
		Experience: p.Experience,
		Rating:     p.Rating,
		Price:      p.Price,
	}
}

// randomSlots draws each slot independently, so an offer may repeat an hour.
func randomSlots() []string {
	slots := make([]string, slotsPerProfessional)
	for i := range slots {
		hour := firstSlotHour + rand.IntN(lastSlotHour-firstSlotHour+1)
		slots[i] = fmt.Sprintf("%d:00", hour)
	}
	return slots
}
