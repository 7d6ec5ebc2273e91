package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-api/db"
	"portfolio-api/models"
)

// ErrDuplicateEmail is returned by Insert when the unique email index rejects the write.
var ErrDuplicateEmail = errors.New("subscriber email already exists")

type NewsletterSubscriberRepository struct {
	conn db.Connector
}

func NewNewsletterSubscriberRepository(conn db.Connector) *NewsletterSubscriberRepository {
	return &NewsletterSubscriberRepository{conn: conn}
}

func (r *NewsletterSubscriberRepository) col(ctx context.Context) (*mongo.Collection, error) {
	d, err := r.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return d.Collection(db.CollectionNewsletterSubscribers), nil
}

// List returns every subscriber, newest first.
func (r *NewsletterSubscriberRepository) List(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.NewsletterSubscriber
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByEmail matches the email exactly. It returns (nil, nil) when absent.
func (r *NewsletterSubscriberRepository) FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	var s models.NewsletterSubscriber
	err = col.FindOne(ctx, bson.M{"email": email}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *NewsletterSubscriberRepository) Insert(ctx context.Context, s *models.NewsletterSubscriber) error {
	col, err := r.col(ctx)
	if err != nil {
		return err
	}
	res, err := col.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}
