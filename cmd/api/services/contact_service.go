package services

import (
	"context"
	"time"

	"portfolio-api/dto"
	"portfolio-api/eventbus"
	"portfolio-api/models"
)

// ContactStore is the persistence ContactService needs.
type ContactStore interface {
	List(ctx context.Context) ([]models.ContactSubmission, error)
	Insert(ctx context.Context, s *models.ContactSubmission) error
}

type ContactService struct {
	store     ContactStore
	publisher eventbus.Publisher
	now       func() time.Time
}

func NewContactService(store ContactStore, publisher eventbus.Publisher) *ContactService {
	return &ContactService{store: store, publisher: publisher, now: storeNow}
}

func (s *ContactService) List(ctx context.Context) ([]dto.ContactSubmissionDTO, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactSubmissionDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewContactSubmissionDTO(it))
	}
	return out, nil
}

// Submit stores the message as "new" and announces it on the contact topic.
func (s *ContactService) Submit(ctx context.Context, req dto.CreateContactSubmissionRequest) (dto.ContactSubmissionDTO, error) {
	c := models.ContactSubmission{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: s.now(),
		Status:    models.ContactStatusNew,
	}
	if err := s.store.Insert(ctx, &c); err != nil {
		return dto.ContactSubmissionDTO{}, err
	}

	publish(ctx, s.publisher, eventbus.TopicContactEvents, eventbus.TypeContactSubmitted, eventbus.ContactSubmitted{
		ID:      c.ID.Hex(),
		Name:    c.Name,
		Email:   c.Email,
		Subject: c.Subject,
		Message: c.Message,
	})
	return dto.NewContactSubmissionDTO(c), nil
}
