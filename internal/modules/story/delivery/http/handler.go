package handler

import (
	"errors"
	"fmt"
	"net/http"

	"anoa.com/storyassistant/internal/modules/story/dto"
	story "anoa.com/storyassistant/internal/modules/story/service"
	"anoa.com/storyassistant/pkg/response"
	"anoa.com/storyassistant/pkg/validator"
	"github.com/gin-gonic/gin"
)

type StoryHandler struct {
	service story.StoryService
}

func NewStoryHandler(service story.StoryService) *StoryHandler {
	return &StoryHandler{service: service}
}

func (h *StoryHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Options())
}

func (h *StoryHandler) GenerateStory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	draft, err := h.service.Generate(c.Request.Context(), userID, req)
	if err != nil {
		var rateLimitErr *story.RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *StoryHandler) SaveStory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.SaveStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Save(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *StoryHandler) GetMyStories(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stories, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stories)
}

func (h *StoryHandler) GetStory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *StoryHandler) DeleteStory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story deleted successfully!"})
}

func (h *StoryHandler) DownloadStory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	file, err := h.service.Download(c.Request.Context(), userID, c.Param("id"), c.Query("format"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	sendFile(c, file)
}

func (h *StoryHandler) ExportStory(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	file, err := h.service.ExportContent(req.Content, req.Format)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	sendFile(c, file)
}

func (h *StoryHandler) ShareStory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.Share(c.Request.Context(), userID, c.Param("id"), c.Query("format"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func sendFile(c *gin.Context, file *story.ExportedFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
