// Package events publishes domain events for background processing.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// JobTypeBadgeEvaluation asks the worker to re-evaluate threshold badges.
const JobTypeBadgeEvaluation = "badge_evaluation"

// TripCompleted is published after a trip is recorded, so the worker can
// re-evaluate the user's badges off the request path.
type TripCompleted struct {
	JobType    string    `json:"job_type"`
	Username   string    `json:"username"`
	RouteType  string    `json:"route_type"`
	EcoPoints  int       `json:"eco_points"`
	CO2SavedKg float64   `json:"co2_saved_kg"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher publishes trip completion events.
type Publisher interface {
	PublishTripCompleted(ctx context.Context, event TripCompleted) error
}

// PubSubPublisherConfig holds configuration for the Pub/Sub publisher.
type PubSubPublisherConfig struct {
	// ProjectID is the GCP project hosting the topic.
	ProjectID string

	// Topic is the topic name trip events are published to.
	Topic string

	// MaxRetries bounds publish retries (default: 3). Publishing happens
	// after the trip is already persisted, so retrying is safe.
	MaxRetries uint64

	// Logger for publish operations.
	Logger zerolog.Logger
}

// PubSubPublisher publishes events to Google Cloud Pub/Sub.
type PubSubPublisher struct {
	client     *pubsub.Client
	publisher  *pubsub.Publisher
	maxRetries uint64
	logger     zerolog.Logger
}

// NewPubSubPublisher creates a Pub/Sub backed publisher.
func NewPubSubPublisher(ctx context.Context, cfg PubSubPublisherConfig) (*PubSubPublisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}

	return &PubSubPublisher{
		client:     client,
		publisher:  client.Publisher(cfg.Topic),
		maxRetries: maxRetries,
		logger:     cfg.Logger,
	}, nil
}

// PublishTripCompleted publishes a trip completion event, retrying transient
// failures with exponential backoff.
func (p *PubSubPublisher) PublishTripCompleted(ctx context.Context, event TripCompleted) error {
	event.JobType = JobTypeBadgeEvaluation

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal trip event: %w", err)
	}

	operation := func() error {
		result := p.publisher.Publish(ctx, &pubsub.Message{Data: data})
		_, err := result.Get(ctx)
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.maxRetries), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		return fmt.Errorf("publish trip event: %w", err)
	}

	p.logger.Debug().
		Str("username", event.Username).
		Str("route_type", event.RouteType).
		Msg("published trip completed event")
	return nil
}

// Close stops the publisher and releases the client.
func (p *PubSubPublisher) Close() error {
	p.publisher.Stop()
	return p.client.Close()
}
