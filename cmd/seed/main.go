package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"portfolio-api/cmd/api/services"
	"portfolio-api/config"
	"portfolio-api/db"
	"portfolio-api/dto"
	"portfolio-api/feeder"
	"portfolio-api/internal/logger"
	"portfolio-api/models"
	"portfolio-api/repositories"
)

func main() {
	feedURL := flag.String("feed", "", "import the entries of this RSS/Atom feed instead of the sample posts")
	limit := flag.Int("limit", 20, "maximum number of feed entries to import")
	status := flag.String("status", string(models.PostStatusDraft), "status given to imported feed entries")
	flag.Parse()

	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	mongo := db.Default()
	defer func() { _ = mongo.Disconnect(context.Background()) }()

	posts := samplePosts
	if *feedURL != "" {
		items, err := feeder.FetchFeed(ctx, *feedURL, *limit, nil)
		if err != nil {
			logger.Log.Errorf("fetch feed %s: %v", *feedURL, err)
			os.Exit(1)
		}
		posts = fromFeed(items, *status)
	}

	svc := services.NewBlogService(repositories.NewBlogPostRepository(mongo))
	created, skipped, err := seed(ctx, svc, posts)
	if err != nil {
		logger.Log.Errorf("seed failed: %v", err)
		os.Exit(1)
	}
	logger.InfoWithFields("seed finished", logger.Fields{
		"database": cfg.Mongo.Database,
		"created":  created,
		"skipped":  skipped,
	})
}

// seed creates every post whose slug is not taken yet.
func seed(ctx context.Context, svc *services.BlogService, posts []dto.CreateBlogPostRequest) (created, skipped int, err error) {
	for _, p := range posts {
		slug := services.Slugify(p.Title)
		exists, err := svc.SlugExists(ctx, slug)
		if err != nil {
			return created, skipped, fmt.Errorf("check %s: %w", slug, err)
		}
		if exists {
			logger.Log.Debugf("post %s already exists, skipping", slug)
			skipped++
			continue
		}
		if _, err := svc.Create(ctx, p); err != nil {
			return created, skipped, fmt.Errorf("create %s: %w", slug, err)
		}
		created++
	}
	return created, skipped, nil
}

// fromFeed maps feed entries onto create requests. Entries without a title are dropped.
func fromFeed(items []feeder.FeedItem, status string) []dto.CreateBlogPostRequest {
	out := make([]dto.CreateBlogPostRequest, 0, len(items))
	for _, it := range items {
		if it.Title == "" {
			continue
		}
		body := it.Content
		if body == "" {
			body = it.Description
		}
		req := dto.CreateBlogPostRequest{
			Title:   it.Title,
			Excerpt: it.Description,
			Content: body,
			Author:  it.Author,
			Status:  status,
		}
		if len(it.Categories) > 0 {
			req.Category = it.Categories[0]
			req.Tags = it.Categories[1:]
		}
		out = append(out, req)
	}
	return out
}
