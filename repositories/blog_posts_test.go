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

func postDoc(id primitive.ObjectID, slug string, views int64, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Post " + slug},
		{Key: "slug", Value: slug},
		{Key: "status", Value: "published"},
		{Key: "category", Value: "API Testing"},
		{Key: "tags", Value: bson.A{"x"}},
		{Key: "views", Value: views},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(created)},
		{Key: "updatedAt", Value: primitive.NewDateTimeFromTime(created)},
	}
}

func TestBlogPostRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list applies filter and sorts by createdAt desc", func(mt *mtest.T) {
		repo := NewBlogPostRepository(db.Fixed{DB: mt.DB})
		ns := mt.DB.Name() + "." + db.CollectionBlogPosts
		now := time.Now().UTC().Truncate(time.Millisecond)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				postDoc(primitive.NewObjectID(), "newer", 0, now),
				postDoc(primitive.NewObjectID(), "older", 3, now.Add(-time.Hour)),
			),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		posts, err := repo.List(context.Background(), BlogPostFilter{Status: "published"})
		require.NoError(mt, err)
		require.Len(mt, posts, 2)
		assert.Equal(mt, "newer", posts[0].Slug)
		assert.Equal(mt, int64(3), posts[1].Views)
		assert.Equal(mt, models.PostStatusPublished, posts[0].Status)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		filter := started.Command.Lookup("filter").Document()
		assert.Equal(mt, "published", filter.Lookup("status").StringValue())
		_, err = filter.LookupErr("category")
		assert.Error(mt, err, "empty category must not filter")
		sort := started.Command.Lookup("sort").Document()
		assert.Equal(mt, int32(-1), sort.Lookup("createdAt").Int32())
	})

	mt.Run("find and increment returns post-increment document", func(mt *mtest.T) {
		repo := NewBlogPostRepository(db.Fixed{DB: mt.DB})
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: postDoc(id, "hello-world", 6, time.Now())},
		))

		p, err := repo.FindAndIncrementViews(context.Background(), "hello-world")
		require.NoError(mt, err)
		require.NotNil(mt, p)
		assert.Equal(mt, id, p.ID)
		assert.Equal(mt, int64(6), p.Views)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)
		assert.True(mt, started.Command.Lookup("new").Boolean())
		inc := started.Command.Lookup("update").Document().Lookup("$inc").Document()
		assert.Equal(mt, int32(1), inc.Lookup("views").Int32())
	})

	mt.Run("find and increment with no match returns nil", func(mt *mtest.T) {
		repo := NewBlogPostRepository(db.Fixed{DB: mt.DB})
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		p, err := repo.FindAndIncrementViews(context.Background(), "missing")
		require.NoError(mt, err)
		assert.Nil(mt, p)
	})

	mt.Run("insert assigns id", func(mt *mtest.T) {
		repo := NewBlogPostRepository(db.Fixed{DB: mt.DB})
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.BlogPost{Title: "Test Post", Slug: "test-post"}
		require.NoError(mt, repo.Insert(context.Background(), p))
		assert.False(mt, p.ID.IsZero())
	})

	mt.Run("update of unchanged values still reports a match", func(mt *mtest.T) {
		repo := NewBlogPostRepository(db.Fixed{DB: mt.DB})
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		status := models.PostStatusPublished
		ok, err := repo.Update(context.Background(), primitive.NewObjectID(), BlogPostPatch{
			Status:    &status,
			UpdatedAt: time.Now(),
		})
		require.NoError(mt, err)
		assert.True(mt, ok)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		stage := started.Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("u").Array().Index(0).Value().Document()
		set := stage.Lookup("$set").Document()
		assert.Equal(mt, "published", set.Lookup("status", "$literal").StringValue())
		_, err = set.LookupErr("updatedAt", "$max")
		assert.NoError(mt, err)
		_, err = set.LookupErr("title")
		assert.Error(mt, err, "absent fields must not be set")
	})

	mt.Run("delete of missing id reports false", func(mt *mtest.T) {
		repo := NewBlogPostRepository(db.Fixed{DB: mt.DB})
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		ok, err := repo.Delete(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("find by slug", func(mt *mtest.T) {
		repo := NewBlogPostRepository(db.Fixed{DB: mt.DB})
		ns := mt.DB.Name() + "." + db.CollectionBlogPosts
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			postDoc(primitive.NewObjectID(), "seeded", 0, time.Now())))

		p, err := repo.FindBySlug(context.Background(), "seeded")
		require.NoError(mt, err)
		require.NotNil(mt, p)
		assert.Equal(mt, "seeded", p.Slug)
	})
}

func TestSlugOrIDFilter(t *testing.T) {
	f := slugOrIDFilter("hello-world")
	assert.Len(t, f["$or"], 1)

	id := primitive.NewObjectID()
	f = slugOrIDFilter(id.Hex())
	or := f["$or"].(bson.A)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"_id": id}, or[1])
}

func TestBlogPostPatchSetDoc(t *testing.T) {
	now := time.Now()
	title := "New"
	tags := []string{"a", "b"}
	set := BlogPostPatch{Title: &title, Tags: &tags, UpdatedAt: now}.setDoc()

	assert.Equal(t, bson.M{
		"title": bson.M{"$literal": "New"},
		"tags":  bson.M{"$literal": tags},
		"updatedAt": bson.M{"$max": bson.A{
			now,
			bson.M{"$add": bson.A{"$updatedAt", 1}},
		}},
	}, set)
}

func TestBlogPostPatchSetDocMissesNothing(t *testing.T) {
	s := func(v string) *string { return &v }
	status := models.PostStatusPublished
	tags := []string{}
	set := BlogPostPatch{
		Title: s("$title"), Excerpt: s("e"), Content: s("c"), Author: s("a"),
		Category: s("cat"), Tags: &tags, Status: &status, FeaturedImage: s("img"),
	}.setDoc()

	assert.Len(t, set, 9)
	assert.Equal(t, bson.M{"$literal": "$title"}, set["title"])
}
