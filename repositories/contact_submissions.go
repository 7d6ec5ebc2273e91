package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-api/db"
	"portfolio-api/models"
)

type ContactSubmissionRepository struct {
	conn db.Connector
}

func NewContactSubmissionRepository(conn db.Connector) *ContactSubmissionRepository {
	return &ContactSubmissionRepository{conn: conn}
}

func (r *ContactSubmissionRepository) col(ctx context.Context) (*mongo.Collection, error) {
	d, err := r.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return d.Collection(db.CollectionContactSubmissions), nil
}

// List returns every submission, newest first.
func (r *ContactSubmissionRepository) List(ctx context.Context) ([]models.ContactSubmission, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.ContactSubmission
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ContactSubmissionRepository) Insert(ctx context.Context, s *models.ContactSubmission) error {
	col, err := r.col(ctx)
	if err != nil {
		return err
	}
	res, err := col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}
