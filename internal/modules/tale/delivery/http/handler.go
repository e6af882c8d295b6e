package handler

import (
	"net/http"

	"anoa.com/storyassistant/internal/modules/tale/dto"
	tale "anoa.com/storyassistant/internal/modules/tale/service"
	"github.com/gin-gonic/gin"
)

type TaleHandler struct {
	service tale.TaleService
}

func NewTaleHandler(service tale.TaleService) *TaleHandler {
	return &TaleHandler{service: service}
}

// GetTales lists titles only unless ?full=true is passed.
func (h *TaleHandler) GetTales(c *gin.Context) {
	tales := h.service.List()

	if c.Query("full") == "true" {
		c.JSON(http.StatusOK, tales)
		return
	}

	summaries := make([]dto.TaleSummary, 0, len(tales))
	for _, t := range tales {
		summaries = append(summaries, dto.TaleSummary{Title: t.Title})
	}
	c.JSON(http.StatusOK, summaries)
}
