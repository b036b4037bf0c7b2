package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventdesk/internal/models"

	"github.com/redis/go-redis/v9"
)

const publishedEventsKey = "events:published"

type Config struct {
	Enabled  bool
	Addr     string
	Password string
	TTL      time.Duration
}

// ValkeyClient caches the published-events listing. A nil client is valid
// everywhere it is used; cache failures never fail a request.
type ValkeyClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client: rdb,
		ttl:    cfg.TTL,
	}, nil
}

func (v *ValkeyClient) GetPublishedEvents(ctx context.Context) ([]models.Event, error) {
	raw, err := v.client.Get(ctx, publishedEventsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("events list not in cache")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}

	var events []models.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("invalid events list in cache: %w", err)
	}

	return events, nil
}

func (v *ValkeyClient) SetPublishedEvents(ctx context.Context, events []models.Event) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal events list: %w", err)
	}

	return v.client.Set(ctx, publishedEventsKey, raw, v.ttl).Err()
}

// InvalidatePublishedEvents drops the cached listing after any event mutation
func (v *ValkeyClient) InvalidatePublishedEvents(ctx context.Context) error {
	return v.client.Del(ctx, publishedEventsKey).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
