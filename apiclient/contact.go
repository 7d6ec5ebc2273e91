package apiclient

import (
	"context"
	"net/http"

	"portfolio-api/dto"
)

func (c *Client) SaveContactSubmission(ctx context.Context, in dto.CreateContactSubmissionRequest) *dto.ContactSubmissionDTO {
	var out dto.ContactSubmissionDTO
	if err := c.do(ctx, http.MethodPost, "/contact", nil, in, &out); err != nil {
		logFailure("SaveContactSubmission", err)
		return nil
	}
	return &out
}

func (c *Client) ListContactSubmissions(ctx context.Context) []dto.ContactSubmissionDTO {
	var out []dto.ContactSubmissionDTO
	if err := c.do(ctx, http.MethodGet, "/contact", nil, nil, &out); err != nil {
		logFailure("ListContactSubmissions", err)
		return []dto.ContactSubmissionDTO{}
	}
	if out == nil {
		out = []dto.ContactSubmissionDTO{}
	}
	return out
}
