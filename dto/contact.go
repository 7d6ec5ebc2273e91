package dto

import (
	"time"

	"portfolio-api/models"
)

type ContactSubmissionDTO struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status" example:"new"`
}

func NewContactSubmissionDTO(c models.ContactSubmission) ContactSubmissionDTO {
	return ContactSubmissionDTO{
		ID:        c.ID.Hex(),
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
		Status:    string(c.Status),
	}
}

type CreateContactSubmissionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
