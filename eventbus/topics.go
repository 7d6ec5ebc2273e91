package eventbus

var (
	TopicContactEvents    = NewTopic("portfolio.contact.events")
	TopicNewsletterEvents = NewTopic("portfolio.newsletter.events")
)

var AllTopics = []Topic{
	TopicContactEvents,
	TopicNewsletterEvents,
}

// Event types carried on the topics above.
const (
	TypeContactSubmitted     = "contact.submitted"
	TypeNewsletterSubscribed = "newsletter.subscribed"
)

// ContactSubmitted is the payload of TypeContactSubmitted.
type ContactSubmitted struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewsletterSubscribed is the payload of TypeNewsletterSubscribed.
type NewsletterSubscribed struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
