package dto

import (
	"time"

	"portfolio-api/content"
	"portfolio-api/models"
)

// BlogPostDTO is the wire form of models.BlogPost.
// ID is the hex ObjectID under "_id", which the front end keys on.
// ReadingTimeMinutes is derived from Content and never stored.
type BlogPostDTO struct {
	ID                 string    `json:"_id"`
	Title              string    `json:"title"`
	Excerpt            string    `json:"excerpt"`
	Content            string    `json:"content"`
	Author             string    `json:"author"`
	Category           string    `json:"category"`
	Tags               []string  `json:"tags"`
	Status             string    `json:"status" example:"published"`
	FeaturedImage      string    `json:"featuredImage,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	Views              int64     `json:"views"`
	Slug               string    `json:"slug" example:"hello-world-2024"`
	ReadingTimeMinutes int       `json:"readingTimeMinutes"`
}

func NewBlogPostDTO(p models.BlogPost) BlogPostDTO {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return BlogPostDTO{
		ID:                 p.ID.Hex(),
		Title:              p.Title,
		Excerpt:            p.Excerpt,
		Content:            p.Content,
		Author:             p.Author,
		Category:           p.Category,
		Tags:               tags,
		Status:             string(p.Status),
		FeaturedImage:      p.FeaturedImage,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		Views:              p.Views,
		Slug:               p.Slug,
		ReadingTimeMinutes: content.ReadingTimeMinutes(p.Content),
	}
}

// CreateBlogPostRequest lists the fields a caller may set on create.
// Anything else in the body (_id, views, slug, timestamps) is ignored.
type CreateBlogPostRequest struct {
	Title         string   `json:"title" example:"Hello, World! 2024"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	Author        string   `json:"author"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status" example:"draft"`
	FeaturedImage string   `json:"featuredImage,omitempty"`
}

// UpdateBlogPostRequest is a partial update; absent fields stay nil and are left untouched.
type UpdateBlogPostRequest struct {
	Title         *string   `json:"title,omitempty"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	Content       *string   `json:"content,omitempty"`
	Author        *string   `json:"author,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Status        *string   `json:"status,omitempty" example:"published"`
	FeaturedImage *string   `json:"featuredImage,omitempty"`
}
