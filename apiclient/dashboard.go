package apiclient

import (
	"context"

	"golang.org/x/sync/errgroup"

	"portfolio-api/dto"
	"portfolio-api/models"
)

// DashboardStats are the counters shown on the admin page.
type DashboardStats struct {
	TotalPosts         int
	PublishedPosts     int
	ContactSubmissions int
	Subscribers        int
}

// DashboardStats fetches the three lists concurrently and counts them.
// Failed lists count as empty.
func (c *Client) DashboardStats(ctx context.Context) DashboardStats {
	var (
		posts       []dto.BlogPostDTO
		contacts    []dto.ContactSubmissionDTO
		subscribers []dto.NewsletterSubscriberDTO
	)
	var g errgroup.Group
	g.Go(func() error {
		posts = c.ListBlogPosts(ctx, BlogPostFilter{})
		return nil
	})
	g.Go(func() error {
		contacts = c.ListContactSubmissions(ctx)
		return nil
	})
	g.Go(func() error {
		subscribers = c.ListNewsletterSubscribers(ctx)
		return nil
	})
	_ = g.Wait()

	stats := DashboardStats{
		TotalPosts:         len(posts),
		ContactSubmissions: len(contacts),
		Subscribers:        len(subscribers),
	}
	for _, p := range posts {
		if p.Status == string(models.PostStatusPublished) {
			stats.PublishedPosts++
		}
	}
	return stats
}
