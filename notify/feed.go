package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/israelmw/QuickAudit/config"
	"github.com/israelmw/QuickAudit/events"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// FeedMessage is what live feed subscribers receive
type FeedMessage struct {
	Event   events.EventName `json:"event"`
	Payload events.Event     `json:"payload"`
	At      time.Time        `json:"at"`
}

type redisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Subscription is an open subscription to the feed channel
type Subscription interface {
	Channel(opts ...redis.ChannelOption) <-chan *redis.Message
	Close() error
}

// LiveFeed publishes state changes to a redis channel
type LiveFeed struct {
	log     *zap.Logger
	client  redisClient
	channel string
}

// NewLiveFeed connects to the configured redis instance
func NewLiveFeed(log *zap.Logger, cfg *config.RedisConfiguration) *LiveFeed {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &LiveFeed{
		log:     log,
		client:  client,
		channel: cfg.Channel,
	}
}

// Ping checks the connection
func (f *LiveFeed) Ping(ctx context.Context) error {
	return f.client.Ping(ctx).Err()
}

// Publish sends an event to all subscribers
func (f *LiveFeed) Publish(ctx context.Context, ev events.Event) error {
	data, err := json.Marshal(FeedMessage{Event: ev.Name(), Payload: ev, At: time.Now().UTC()})
	if err != nil {
		return errors.Wrap(err, "encoding feed message")
	}
	if err := f.client.Publish(ctx, f.channel, data).Err(); err != nil {
		return errors.Wrapf(err, "publishing to %s", f.channel)
	}
	return nil
}

// Subscribe returns a subscription to the feed channel, the caller closes it
func (f *LiveFeed) Subscribe(ctx context.Context) Subscription {
	return f.client.Subscribe(ctx, f.channel)
}

// Close closes the redis client
func (f *LiveFeed) Close() error {
	return f.client.Close()
}
