package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/content"
	"portfolio-api/dto"
	"portfolio-api/models"
	"portfolio-api/repositories"
)

// Filter values that mean "do not filter".
const (
	StatusAll   = "all"
	CategoryAll = "All"
)

// ExcerptLength is the size of an excerpt derived from content when none is given.
const ExcerptLength = 160

// BlogStore is the persistence BlogService needs.
// *repositories.BlogPostRepository satisfies it.
type BlogStore interface {
	List(ctx context.Context, f repositories.BlogPostFilter) ([]models.BlogPost, error)
	FindAndIncrementViews(ctx context.Context, key string) (*models.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Insert(ctx context.Context, p *models.BlogPost) error
	Update(ctx context.Context, id primitive.ObjectID, patch repositories.BlogPostPatch) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type BlogService struct {
	store BlogStore
	now   func() time.Time
}

func NewBlogService(store BlogStore) *BlogService {
	return &BlogService{store: store, now: storeNow}
}

// storeNow is truncated to milliseconds, the precision Mongo keeps.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

type ListBlogPostsInput struct {
	Status   string
	Category string
}

// List returns posts newest first. Status "all" and category "All" are ignored.
func (s *BlogService) List(ctx context.Context, in ListBlogPostsInput) ([]dto.BlogPostDTO, error) {
	f := repositories.BlogPostFilter{Status: in.Status, Category: in.Category}
	if f.Status == StatusAll {
		f.Status = ""
	}
	if f.Category == CategoryAll {
		f.Category = ""
	}
	posts, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BlogPostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.NewBlogPostDTO(p))
	}
	return out, nil
}

// GetBySlug finds a post by slug or id and counts the view.
// A miss returns (nil, nil).
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*dto.BlogPostDTO, error) {
	p, err := s.store.FindAndIncrementViews(ctx, slug)
	if err != nil || p == nil {
		return nil, err
	}
	d := dto.NewBlogPostDTO(*p)
	return &d, nil
}

// SlugExists reports whether some post already uses slug. Views are not touched.
func (s *BlogService) SlugExists(ctx context.Context, slug string) (bool, error) {
	p, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

func (s *BlogService) Create(ctx context.Context, req dto.CreateBlogPostRequest) (dto.BlogPostDTO, error) {
	if strings.TrimSpace(req.Title) == "" {
		return dto.BlogPostDTO{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	now := s.now()
	p := models.BlogPost{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		Author:        req.Author,
		Category:      req.Category,
		Tags:          req.Tags,
		Status:        models.PostStatus(req.Status),
		FeaturedImage: req.FeaturedImage,
		CreatedAt:     now,
		UpdatedAt:     now,
		Views:         0,
		Slug:          Slugify(req.Title),
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Excerpt == "" {
		p.Excerpt = content.Excerpt(p.Content, ExcerptLength)
	}

	if err := s.store.Insert(ctx, &p); err != nil {
		return dto.BlogPostDTO{}, err
	}
	return dto.NewBlogPostDTO(p), nil
}

// Update applies the fields present in req and refreshes updatedAt. An id
// that is not a valid ObjectID matches nothing and reports false.
func (s *BlogService) Update(ctx context.Context, id string, req dto.UpdateBlogPostRequest) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: id is required", ErrValidation)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	patch := repositories.BlogPostPatch{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		Author:        req.Author,
		Category:      req.Category,
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
		UpdatedAt:     s.now(),
	}
	if req.Status != nil {
		st := models.PostStatus(*req.Status)
		patch.Status = &st
	}
	return s.store.Update(ctx, oid, patch)
}

func (s *BlogService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: id is required", ErrValidation)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	return s.store.Delete(ctx, oid)
}
