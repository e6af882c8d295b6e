package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfessionalResponse struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Bio            string   `json:"bio"`
	Experience     int      `json:"experience"`
	Rating         float64  `json:"rating"`
	Price          float64  `json:"price"`
	AvailableSlots []string `json:"available_slots,omitempty"`
}

type BookRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Slot           string `json:"slot" binding:"required,max=50"`
}

type BookingResponse struct {
	ID           uuid.UUID            `json:"id"`
	Professional ProfessionalResponse `json:"professional"`
	Slot         string               `json:"slot"`
	CreatedAt    time.Time            `json:"created_at"`
	Message      string               `json:"message,omitempty"`
}
