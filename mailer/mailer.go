// Package mailer sends plain-text notification mail over SMTP with gomail.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"portfolio-api/config"
	"portfolio-api/internal/logger"
)

const sendTimeout = 30 * time.Second

var ErrInvalidMessage = errors.New("invalid message")

type Message struct {
	To       []string
	ReplyTo  string
	Subject  string
	TextBody string
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// New returns an SMTP sender, or a LogSender when no SMTP host is configured.
func New(cfg config.SMTPConfig) Sender {
	if strings.TrimSpace(cfg.Host) == "" {
		return LogSender{}
	}
	return NewSMTP(cfg)
}

type SMTPSender struct {
	from string
	send func(*gomail.Message) error
}

func NewSMTP(cfg config.SMTPConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.UseTLS
	if cfg.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	}
	return &SMTPSender{from: cfg.From, send: func(m *gomail.Message) error { return d.DialAndSend(m) }}
}

// Send gives up when ctx ends or after 30s, whichever comes first.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	msg, err := buildMessage(s.from, m)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.send(msg)
	}()

	timer := time.NewTimer(sendTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return context.DeadlineExceeded
	}
}

func buildMessage(from string, m Message) (*gomail.Message, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return nil, fmt.Errorf("%w: from is required", ErrInvalidMessage)
	}
	to := cleanAddrs(m.To)
	if len(to) == 0 {
		return nil, fmt.Errorf("%w: at least one recipient is required", ErrInvalidMessage)
	}
	subject := strings.TrimSpace(m.Subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	if r := strings.TrimSpace(m.ReplyTo); r != "" {
		msg.SetHeader("Reply-To", r)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", m.TextBody)
	return msg, nil
}

func cleanAddrs(addrs []string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// LogSender only logs what would have been sent.
type LogSender struct{}

func (LogSender) Send(_ context.Context, m Message) error {
	logger.InfoWithFields("mail not sent, smtp is not configured", logger.Fields{
		"to":      strings.Join(m.To, ","),
		"subject": m.Subject,
	})
	return nil
}
