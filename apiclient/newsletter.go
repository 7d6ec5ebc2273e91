package apiclient

import (
	"context"
	"errors"
	"net/http"

	"portfolio-api/dto"
)

// SubscribeToNewsletter returns the new subscriber, or an error whose message is
// the one the server gave (e.g. "Email already subscribed") so it can be shown as is.
func (c *Client) SubscribeToNewsletter(ctx context.Context, email string) (*dto.NewsletterSubscriberDTO, error) {
	var out dto.NewsletterSubscriberDTO
	err := c.do(ctx, http.MethodPost, "/newsletter", nil, dto.SubscribeRequest{Email: email}, &out)
	if err != nil {
		logFailure("SubscribeToNewsletter", err)
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, errors.New("failed to subscribe to newsletter")
	}
	return &out, nil
}

func (c *Client) ListNewsletterSubscribers(ctx context.Context) []dto.NewsletterSubscriberDTO {
	var out []dto.NewsletterSubscriberDTO
	if err := c.do(ctx, http.MethodGet, "/newsletter", nil, nil, &out); err != nil {
		logFailure("ListNewsletterSubscribers", err)
		return []dto.NewsletterSubscriberDTO{}
	}
	if out == nil {
		out = []dto.NewsletterSubscriberDTO{}
	}
	return out
}
