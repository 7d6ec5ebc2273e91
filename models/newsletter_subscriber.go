package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriberStatus string

const (
	SubscriberStatusActive       SubscriberStatus = "active"
	SubscriberStatusUnsubscribed SubscriberStatus = "unsubscribed"
)

// NewsletterSubscriber is one newsletter sign-up, keyed by email.
// Collection: newsletter_subscribers (unique index on email)
type NewsletterSubscriber struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Status    SubscriberStatus   `bson:"status" json:"status"`
}
