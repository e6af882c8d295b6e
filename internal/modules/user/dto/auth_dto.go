package dto

import (
	"anoa.com/storyassistant/internal/entity"
)

type RegisterRequest struct {
	FirstName  string `json:"first_name" binding:"required,max=100"`
	LastName   string `json:"last_name" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email,max=100"`
	Profession string `json:"profession" binding:"required,oneof=Student Professional Other"`
	Username   string `json:"username" binding:"required,min=3,max=50"`
	Phone      string `json:"phone" binding:"required,max=30"`
	Password   string `json:"password" binding:"required,min=3,max=72"`
}

type RegisterResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *entity.User `json:"user"`
	SearchToken string       `json:"search_token,omitempty"`
}
