package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"portfolio-api/config"
	"portfolio-api/internal/logger"
)

const (
	CollectionBlogPosts             = "blog_posts"
	CollectionContactSubmissions    = "contact_submissions"
	CollectionNewsletterSubscribers = "newsletter_subscribers"
)

// Connector hands out the database handle, connecting on first use.
type Connector interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// Manager lazily opens one client per process and caches it together with the
// selected database. A failed attempt is not cached; a successful one is never redone.
type Manager struct {
	uri    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database

	dial    func(ctx context.Context, uri string) (*mongo.Client, error)
	prepare func(ctx context.Context, client *mongo.Client, db *mongo.Database) error
}

func NewManager(uri, dbName string) *Manager {
	return &Manager{
		uri:     uri,
		dbName:  dbName,
		dial:    dial,
		prepare: prepare,
	}
}

// Connect returns the cached client and database, establishing them on the first call.
func (m *Manager) Connect(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.client, m.db, nil
	}

	cl, err := m.dial(ctx, m.uri)
	if err != nil {
		return nil, nil, err
	}
	d := cl.Database(m.dbName)
	if err := m.prepare(ctx, cl, d); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, err
	}

	m.client = cl
	m.db = d
	logger.InfoWithFields("MongoDB connected", logger.Fields{"database": m.dbName})
	return m.client, m.db, nil
}

func (m *Manager) Database(ctx context.Context) (*mongo.Database, error) {
	_, d, err := m.Connect(ctx)
	return d, err
}

// Ping checks a live connection, connecting first if needed.
func (m *Manager) Ping(ctx context.Context) error {
	d, err := m.Database(ctx)
	if err != nil {
		return err
	}
	return d.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Disconnect closes the cached client. It is meant for process shutdown only.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// Default returns the process-wide manager built from config.
func Default() *Manager {
	defaultOnce.Do(func() {
		cfg := config.GetConfig()
		defaultManager = NewManager(cfg.Mongo.URI, cfg.Mongo.Database)
	})
	return defaultManager
}

// Fixed is a Connector over an already opened database.
type Fixed struct {
	DB *mongo.Database
}

func (f Fixed) Database(context.Context) (*mongo.Database, error) { return f.DB, nil }

func dial(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return mongo.Connect(ctx, options.Client().ApplyURI(uri))
}

func prepare(ctx context.Context, cl *mongo.Client, d *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := cl.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}
	ensureIndexes(ctx, d)
	return nil
}

// ensureIndexes creates the collection indexes. Failures are logged and do not
// block the connection: a legacy duplicate email must not take the whole API down.
func ensureIndexes(ctx context.Context, d *mongo.Database) {
	indexes := map[string][]mongo.IndexModel{
		CollectionBlogPosts: {
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_created_at_desc"),
			},
			{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetName("idx_slug"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}},
				Options: options.Index().SetName("idx_status_category"),
			},
		},
		CollectionContactSubmissions: {
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_created_at_desc"),
			},
		},
		CollectionNewsletterSubscribers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("uniq_email").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_created_at_desc"),
			},
		},
	}

	for col, models := range indexes {
		for _, model := range models {
			if _, err := d.Collection(col).Indexes().CreateOne(ctx, model); err != nil {
				logger.WarnWithFields("failed to ensure index", logger.Fields{
					"collection": col,
					"error":      err.Error(),
				})
			}
		}
	}
}
