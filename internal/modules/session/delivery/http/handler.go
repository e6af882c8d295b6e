package handler

import (
	"net/http"

	"anoa.com/storyassistant/internal/modules/session/dto"
	session "anoa.com/storyassistant/internal/modules/session/service"
	"anoa.com/storyassistant/pkg/response"
	"anoa.com/storyassistant/pkg/validator"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service session.SessionService
}

func NewSessionHandler(service session.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	state, err := h.service.Get(c.Request.Context(), userID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) SetPage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.SetPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	state, err := h.service.SetPage(c.Request.Context(), userID.String(), req.Page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) UpdateDraft(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	state, err := h.service.UpdateDraftContent(c.Request.Context(), userID.String(), req.Title, req.Content)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
