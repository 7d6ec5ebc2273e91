package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-api/db"
	"portfolio-api/models"
)

// BlogPostFilter narrows List. Empty fields do not filter.
type BlogPostFilter struct {
	Status   string
	Category string
}

// BlogPostPatch is a partial update: nil fields are left untouched.
type BlogPostPatch struct {
	Title         *string
	Excerpt       *string
	Content       *string
	Author        *string
	Category      *string
	Tags          *[]string
	Status        *models.PostStatus
	FeaturedImage *string
	UpdatedAt     time.Time
}

// setDoc is the $set stage of the update pipeline. Values are wrapped in
// $literal so a string starting with "$" is not read as a field path.
// updatedAt is never written at or before its stored value.
func (p BlogPostPatch) setDoc() bson.M {
	set := bson.M{"updatedAt": bson.M{"$max": bson.A{
		p.UpdatedAt,
		bson.M{"$add": bson.A{"$updatedAt", 1}},
	}}}
	literal := func(key string, v any) {
		set[key] = bson.M{"$literal": v}
	}
	if p.Title != nil {
		literal("title", *p.Title)
	}
	if p.Excerpt != nil {
		literal("excerpt", *p.Excerpt)
	}
	if p.Content != nil {
		literal("content", *p.Content)
	}
	if p.Author != nil {
		literal("author", *p.Author)
	}
	if p.Category != nil {
		literal("category", *p.Category)
	}
	if p.Tags != nil {
		literal("tags", *p.Tags)
	}
	if p.Status != nil {
		literal("status", *p.Status)
	}
	if p.FeaturedImage != nil {
		literal("featuredImage", *p.FeaturedImage)
	}
	return set
}

type BlogPostRepository struct {
	conn db.Connector
}

func NewBlogPostRepository(conn db.Connector) *BlogPostRepository {
	return &BlogPostRepository{conn: conn}
}

func (r *BlogPostRepository) col(ctx context.Context) (*mongo.Collection, error) {
	d, err := r.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return d.Collection(db.CollectionBlogPosts), nil
}

// List returns posts matching f, newest first.
func (r *BlogPostRepository) List(ctx context.Context, f BlogPostFilter) ([]models.BlogPost, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	cur, err := col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.BlogPost
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindAndIncrementViews looks a post up by slug or by _id hex and bumps its views
// in the same find-and-modify, returning the post-increment document.
// It returns (nil, nil) when nothing matches.
func (r *BlogPostRepository) FindAndIncrementViews(ctx context.Context, key string) (*models.BlogPost, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.BlogPost
	err = col.FindOneAndUpdate(ctx, slugOrIDFilter(key), bson.M{"$inc": bson.M{"views": 1}}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindBySlug returns (nil, nil) when no post has that slug.
func (r *BlogPostRepository) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	var p models.BlogPost
	err = col.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert stores p and sets p.ID to the assigned identifier.
func (r *BlogPostRepository) Insert(ctx context.Context, p *models.BlogPost) error {
	col, err := r.col(ctx)
	if err != nil {
		return err
	}
	res, err := col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// Update applies patch and reports whether the document exists.
func (r *BlogPostRepository) Update(ctx context.Context, id primitive.ObjectID, patch BlogPostPatch) (bool, error) {
	col, err := r.col(ctx)
	if err != nil {
		return false, err
	}
	res, err := col.UpdateByID(ctx, id, mongo.Pipeline{{{Key: "$set", Value: patch.setDoc()}}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete reports whether a document was removed.
func (r *BlogPostRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	col, err := r.col(ctx)
	if err != nil {
		return false, err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func slugOrIDFilter(key string) bson.M {
	or := bson.A{bson.M{"slug": key}}
	if oid, err := primitive.ObjectIDFromHex(key); err == nil {
		or = append(or, bson.M{"_id": oid})
	}
	return bson.M{"$or": or}
}
