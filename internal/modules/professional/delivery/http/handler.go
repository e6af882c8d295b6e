package handler

import (
	"net/http"

	"anoa.com/storyassistant/internal/modules/professional/dto"
	professional "anoa.com/storyassistant/internal/modules/professional/service"
	"anoa.com/storyassistant/pkg/response"
	"anoa.com/storyassistant/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ProfessionalHandler struct {
	service professional.ProfessionalService
}

func NewProfessionalHandler(service professional.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{service: service}
}

func (h *ProfessionalHandler) GetProfessionals(c *gin.Context) {
	professionals, err := h.service.ListProfessionals(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, professionals)
}

func (h *ProfessionalHandler) CreateBooking(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	booking, err := h.service.Book(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *ProfessionalHandler) GetMyBookings(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}
