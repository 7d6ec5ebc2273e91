package dto

import (
	"time"

	"portfolio-api/models"
)

type NewsletterSubscriberDTO struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email" example:"reader@example.com"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status" example:"active"`
}

func NewNewsletterSubscriberDTO(s models.NewsletterSubscriber) NewsletterSubscriberDTO {
	return NewsletterSubscriberDTO{
		ID:        s.ID.Hex(),
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		Status:    string(s.Status),
	}
}

type SubscribeRequest struct {
	Email string `json:"email" example:"reader@example.com"`
}
