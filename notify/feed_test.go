package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/israelmw/QuickAudit/events/event"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type fakeRedis struct {
	channel string
	message interface{}
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message = message
	return redis.NewIntCmd(ctx)
}

func (f *fakeRedis) Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return nil
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusCmd(ctx)
}

func (f *fakeRedis) Close() error { return nil }

func TestLiveFeedPublish(t *testing.T) {
	assert := assert.New(t)
	r := &fakeRedis{}
	f := &LiveFeed{log: zaptest.NewLogger(t), client: r, channel: "quickaudit"}

	err := f.Publish(context.Background(), &event.TableAuditToggled{Table: "orders", Enabled: true, By: "System"})
	assert.NoError(err)
	assert.Equal("quickaudit", r.channel)

	data, ok := r.message.([]byte)
	if assert.True(ok) {
		var msg map[string]interface{}
		assert.NoError(json.Unmarshal(data, &msg))
		assert.Equal("table_audit_toggled", msg["event"])
		assert.Equal(map[string]interface{}{"table": "orders", "enabled": true, "by": "System"}, msg["payload"])
	}
}
