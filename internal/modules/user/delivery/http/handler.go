package handler

import (
	"net/http"

	session "anoa.com/storyassistant/internal/modules/session/service"
	"anoa.com/storyassistant/internal/modules/user/dto"
	user "anoa.com/storyassistant/internal/modules/user/service"
	"anoa.com/storyassistant/pkg/response"
	"anoa.com/storyassistant/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService    user.AuthService
	sessionService session.SessionService
}

func NewAuthHandler(authService user.AuthService, sessionService session.SessionService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		ID:      created.ID.String(),
		Message: "Registration successful! Please log in.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	me, err := h.authService.Me(c.Request.Context(), userID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, me)
}

// Logout drops the server-side session. The access token stays valid until
// it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.sessionService.Clear(c.Request.Context(), userID.String()); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
