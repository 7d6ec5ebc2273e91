package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"portfolio-api/dto"
)

// BlogPostFilter mirrors the list query; empty fields are not sent.
type BlogPostFilter struct {
	Status   string
	Category string
}

func (c *Client) ListBlogPosts(ctx context.Context, filter BlogPostFilter) []dto.BlogPostDTO {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	var out []dto.BlogPostDTO
	if err := c.do(ctx, http.MethodGet, "/blog", q, nil, &out); err != nil {
		logFailure("ListBlogPosts", err)
		return []dto.BlogPostDTO{}
	}
	if out == nil {
		out = []dto.BlogPostDTO{}
	}
	return out
}

// GetBlogPostBySlug returns nil when the post does not exist or the call fails.
// Each successful call counts one view.
func (c *Client) GetBlogPostBySlug(ctx context.Context, slug string) *dto.BlogPostDTO {
	var out *dto.BlogPostDTO
	if err := c.do(ctx, http.MethodGet, "/blog", url.Values{"slug": {slug}}, nil, &out); err != nil {
		logFailure("GetBlogPostBySlug", err)
		return nil
	}
	return out
}

func (c *Client) CreateBlogPost(ctx context.Context, in dto.CreateBlogPostRequest) *dto.BlogPostDTO {
	var out dto.BlogPostDTO
	if err := c.do(ctx, http.MethodPost, "/blog", nil, in, &out); err != nil {
		logFailure("CreateBlogPost", err)
		return nil
	}
	return &out
}

// UpdateBlogPost reports the server's success flag; any failure is false.
func (c *Client) UpdateBlogPost(ctx context.Context, id string, patch dto.UpdateBlogPostRequest) bool {
	var out dto.SuccessResponseDTO
	if err := c.do(ctx, http.MethodPut, "/blog", url.Values{"id": {id}}, patch, &out); err != nil {
		logFailure("UpdateBlogPost", err)
		return false
	}
	return out.Success
}

func (c *Client) DeleteBlogPost(ctx context.Context, id string) bool {
	var out dto.SuccessResponseDTO
	if err := c.do(ctx, http.MethodDelete, "/blog", url.Values{"id": {id}}, nil, &out); err != nil {
		logFailure("DeleteBlogPost", err)
		return false
	}
	return out.Success
}
