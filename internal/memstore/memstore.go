// Package memstore keeps the three collections in memory with the same method
// sets as the Mongo repositories. Handlers and services use it in tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/models"
	"portfolio-api/repositories"
)

// BlogPosts is an in-memory blog_posts collection.
// Setting Err makes every call fail with it.
type BlogPosts struct {
	mu    sync.Mutex
	posts []models.BlogPost
	Err   error
}

func NewBlogPosts(seed ...models.BlogPost) *BlogPosts {
	s := &BlogPosts{}
	for _, p := range seed {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.posts = append(s.posts, p)
	}
	return s
}

func (s *BlogPosts) List(_ context.Context, f repositories.BlogPostFilter) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.BlogPost
	for _, p := range s.posts {
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, clonePost(p))
	}
	sortNewestFirst(out, func(i int) int64 { return out[i].CreatedAt.UnixNano() })
	return out, nil
}

func (s *BlogPosts) FindAndIncrementViews(_ context.Context, key string) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.indexWhere(func(p models.BlogPost) bool {
		return p.Slug == key || p.ID.Hex() == key
	})
	if i < 0 {
		return nil, nil
	}
	s.posts[i].Views++
	p := clonePost(s.posts[i])
	return &p, nil
}

func (s *BlogPosts) FindBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.indexWhere(func(p models.BlogPost) bool { return p.Slug == slug })
	if i < 0 {
		return nil, nil
	}
	p := clonePost(s.posts[i])
	return &p, nil
}

func (s *BlogPosts) Insert(_ context.Context, p *models.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	p.ID = primitive.NewObjectID()
	s.posts = append(s.posts, clonePost(*p))
	return nil
}

func (s *BlogPosts) Update(_ context.Context, id primitive.ObjectID, patch repositories.BlogPostPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	i := s.indexWhere(func(p models.BlogPost) bool { return p.ID == id })
	if i < 0 {
		return false, nil
	}
	p := &s.posts[i]
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Author != nil {
		p.Author = *patch.Author
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Tags != nil {
		p.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.FeaturedImage != nil {
		p.FeaturedImage = *patch.FeaturedImage
	}
	// same rule as the Mongo pipeline: never at or before the stored value
	if floor := p.UpdatedAt.Add(time.Millisecond); patch.UpdatedAt.Before(floor) {
		p.UpdatedAt = floor
	} else {
		p.UpdatedAt = patch.UpdatedAt
	}
	return true, nil
}

func (s *BlogPosts) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	i := s.indexWhere(func(p models.BlogPost) bool { return p.ID == id })
	if i < 0 {
		return false, nil
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return true, nil
}

// Get returns a copy of the stored post without touching its views.
func (s *BlogPosts) Get(id primitive.ObjectID) (models.BlogPost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexWhere(func(p models.BlogPost) bool { return p.ID == id })
	if i < 0 {
		return models.BlogPost{}, false
	}
	return clonePost(s.posts[i]), true
}

func (s *BlogPosts) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *BlogPosts) indexWhere(match func(models.BlogPost) bool) int {
	for i, p := range s.posts {
		if match(p) {
			return i
		}
	}
	return -1
}

func clonePost(p models.BlogPost) models.BlogPost {
	if p.Tags != nil {
		p.Tags = append([]string{}, p.Tags...)
	}
	return p
}

// ContactSubmissions is an in-memory contact_submissions collection.
type ContactSubmissions struct {
	mu    sync.Mutex
	items []models.ContactSubmission
	Err   error
}

func NewContactSubmissions() *ContactSubmissions {
	return &ContactSubmissions{}
}

func (s *ContactSubmissions) List(context.Context) ([]models.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := append([]models.ContactSubmission(nil), s.items...)
	sortNewestFirst(out, func(i int) int64 { return out[i].CreatedAt.UnixNano() })
	return out, nil
}

func (s *ContactSubmissions) Insert(_ context.Context, c *models.ContactSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	c.ID = primitive.NewObjectID()
	s.items = append(s.items, *c)
	return nil
}

func (s *ContactSubmissions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// NewsletterSubscribers is an in-memory newsletter_subscribers collection with
// a unique email constraint.
type NewsletterSubscribers struct {
	mu    sync.Mutex
	items []models.NewsletterSubscriber
	Err   error
}

func NewNewsletterSubscribers() *NewsletterSubscribers {
	return &NewsletterSubscribers{}
}

func (s *NewsletterSubscribers) List(context.Context) ([]models.NewsletterSubscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := append([]models.NewsletterSubscriber(nil), s.items...)
	sortNewestFirst(out, func(i int) int64 { return out[i].CreatedAt.UnixNano() })
	return out, nil
}

func (s *NewsletterSubscribers) FindByEmail(_ context.Context, email string) (*models.NewsletterSubscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, it := range s.items {
		if it.Email == email {
			found := it
			return &found, nil
		}
	}
	return nil, nil
}

func (s *NewsletterSubscribers) Insert(_ context.Context, sub *models.NewsletterSubscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, it := range s.items {
		if it.Email == sub.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	sub.ID = primitive.NewObjectID()
	s.items = append(s.items, *sub)
	return nil
}

func (s *NewsletterSubscribers) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// sortNewestFirst orders by the createdAt key descending; equal keys keep
// the later insert first, like a createdAt desc index scan over ObjectIDs.
func sortNewestFirst[T any](items []T, key func(i int) int64) {
	for l, r := 0, len(items)-1; l < r; l, r = l+1, r-1 {
		items[l], items[r] = items[r], items[l]
	}
	sort.SliceStable(items, func(i, j int) bool { return key(i) > key(j) })
}
