package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio-api/dto"
	"portfolio-api/eventbus"
	"portfolio-api/models"
	"portfolio-api/repositories"
)

// SubscriberStore is the persistence NewsletterService needs.
type SubscriberStore interface {
	List(ctx context.Context) ([]models.NewsletterSubscriber, error)
	FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	Insert(ctx context.Context, s *models.NewsletterSubscriber) error
}

type NewsletterService struct {
	store     SubscriberStore
	publisher eventbus.Publisher
	now       func() time.Time
}

func NewNewsletterService(store SubscriberStore, publisher eventbus.Publisher) *NewsletterService {
	return &NewsletterService{store: store, publisher: publisher, now: storeNow}
}

func (s *NewsletterService) List(ctx context.Context) ([]dto.NewsletterSubscriberDTO, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NewsletterSubscriberDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewNewsletterSubscriberDTO(it))
	}
	return out, nil
}

// Subscribe adds email as an active subscriber. An email already on the list,
// found up front or rejected by the unique index, yields ErrAlreadySubscribed.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (dto.NewsletterSubscriberDTO, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return dto.NewsletterSubscriberDTO{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return dto.NewsletterSubscriberDTO{}, err
	}
	if existing != nil {
		return dto.NewsletterSubscriberDTO{}, ErrAlreadySubscribed
	}

	sub := models.NewsletterSubscriber{
		Email:     email,
		CreatedAt: s.now(),
		Status:    models.SubscriberStatusActive,
	}
	if err := s.store.Insert(ctx, &sub); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return dto.NewsletterSubscriberDTO{}, ErrAlreadySubscribed
		}
		return dto.NewsletterSubscriberDTO{}, err
	}

	publish(ctx, s.publisher, eventbus.TopicNewsletterEvents, eventbus.TypeNewsletterSubscribed, eventbus.NewsletterSubscribed{
		ID:    sub.ID.Hex(),
		Email: sub.Email,
	})
	return dto.NewNewsletterSubscriberDTO(sub), nil
}
