package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"portfolio-api/db"
	"portfolio-api/models"
)

func TestNewsletterSubscriberRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by email hit", func(mt *mtest.T) {
		repo := NewNewsletterSubscriberRepository(db.Fixed{DB: mt.DB})
		ns := mt.DB.Name() + "." + db.CollectionNewsletterSubscribers
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "a@b.dev"},
			{Key: "status", Value: "active"},
		}))

		s, err := repo.FindByEmail(context.Background(), "a@b.dev")
		require.NoError(mt, err)
		require.NotNil(mt, s)
		assert.Equal(mt, models.SubscriberStatusActive, s.Status)
	})

	mt.Run("find by email miss", func(mt *mtest.T) {
		repo := NewNewsletterSubscriberRepository(db.Fixed{DB: mt.DB})
		ns := mt.DB.Name() + "." + db.CollectionNewsletterSubscribers
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		s, err := repo.FindByEmail(context.Background(), "nobody@b.dev")
		require.NoError(mt, err)
		assert.Nil(mt, s)
	})

	mt.Run("insert maps duplicate key", func(mt *mtest.T) {
		repo := NewNewsletterSubscriberRepository(db.Fixed{DB: mt.DB})
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: newsletter_subscribers index: uniq_email",
		}))

		err := repo.Insert(context.Background(), &models.NewsletterSubscriber{Email: "a@b.dev", CreatedAt: time.Now()})
		assert.ErrorIs(mt, err, ErrDuplicateEmail)
	})

	mt.Run("insert", func(mt *mtest.T) {
		repo := NewNewsletterSubscriberRepository(db.Fixed{DB: mt.DB})
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		s := &models.NewsletterSubscriber{Email: "a@b.dev", Status: models.SubscriberStatusActive}
		require.NoError(mt, repo.Insert(context.Background(), s))
		assert.False(mt, s.ID.IsZero())
	})
}
