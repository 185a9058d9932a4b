package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher sends an event to subscribers of subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, event interface{}) error
}

type NATSConfig struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
}

// NATSPublisher publishes JSON encoded events over a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(cfg NATSConfig) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("twitter-clone-api"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, event interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", subject, err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", subject, err)
	}

	slog.Debug("event published", "subject", subject)
	return nil
}

func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
	}
}

// NopPublisher drops every event. Used when NATS_URL is unset.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// Message is an event captured by a Recorder.
type Message struct {
	Subject string
	Event   interface{}
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
	Err      error
}

func (r *Recorder) Publish(_ context.Context, subject string, event interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.messages = append(r.messages, Message{Subject: subject, Event: event})
	return nil
}

// Subjects returns the subjects published so far, in order.
func (r *Recorder) Subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	subjects := make([]string, 0, len(r.messages))
	for _, m := range r.messages {
		subjects = append(subjects, m.Subject)
	}
	return subjects
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Message(nil), r.messages...)
}
