package main

import (
	"context"
	"fmt"
	"strings"

	"portfolio-api/eventbus"
	"portfolio-api/internal/logger"
	"portfolio-api/mailer"
)

// Notifier mails the site owner about new contact messages and subscribers.
type Notifier struct {
	sender mailer.Sender
	owner  string
}

func NewNotifier(sender mailer.Sender, owner string) *Notifier {
	return &Notifier{sender: sender, owner: owner}
}

func (n *Notifier) HandleContactSubmitted(ctx context.Context, p eventbus.ContactSubmitted, meta eventbus.Event) error {
	if meta.Type != eventbus.TypeContactSubmitted {
		logger.Log.Warnf("ignoring event %s of type %s on contact topic", meta.ID, meta.Type)
		return nil
	}

	subject := strings.TrimSpace(p.Subject)
	if subject == "" {
		subject = "(no subject)"
	}
	var body strings.Builder
	fmt.Fprintf(&body, "From: %s <%s>\n", p.Name, p.Email)
	fmt.Fprintf(&body, "Subject: %s\n\n", subject)
	body.WriteString(p.Message)
	body.WriteString("\n")

	err := n.sender.Send(ctx, mailer.Message{
		To:       []string{n.owner},
		ReplyTo:  p.Email,
		Subject:  "New contact message: " + subject,
		TextBody: body.String(),
	})
	if err != nil {
		return fmt.Errorf("notify contact %s: %w", p.ID, err)
	}
	logger.InfoWithFields("contact notification sent", logger.Fields{"event_id": meta.ID, "submission_id": p.ID, "retry": meta.Retry})
	return nil
}

func (n *Notifier) HandleNewsletterSubscribed(ctx context.Context, p eventbus.NewsletterSubscribed, meta eventbus.Event) error {
	if meta.Type != eventbus.TypeNewsletterSubscribed {
		logger.Log.Warnf("ignoring event %s of type %s on newsletter topic", meta.ID, meta.Type)
		return nil
	}

	err := n.sender.Send(ctx, mailer.Message{
		To:       []string{n.owner},
		Subject:  "New newsletter subscriber",
		TextBody: p.Email + " subscribed on " + meta.OccurredAt.Format("2006-01-02 15:04 MST") + "\n",
	})
	if err != nil {
		return fmt.Errorf("notify subscriber %s: %w", p.ID, err)
	}
	logger.InfoWithFields("subscriber notification sent", logger.Fields{"event_id": meta.ID, "subscriber_id": p.ID, "retry": meta.Retry})
	return nil
}
