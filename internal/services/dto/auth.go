package dto

import "laddercall_backend/internal/models"

type LoginRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
