package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRedis struct {
	channel string
	payload []byte
	err     error
	closed  bool
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	return redis.NewIntResult(1, f.err)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisPublisher_Publish(t *testing.T) {
	fake := &fakeRedis{}
	p := newRedisPublisher(fake, "")

	err := p.Publish(context.Background(), map[string]any{"created": 3})
	require.NoError(t, err)

	assert.Equal(t, "brainrot:sync", fake.channel)
	var got map[string]int
	require.NoError(t, json.Unmarshal(fake.payload, &got))
	assert.Equal(t, 3, got["created"])

	require.NoError(t, p.Close())
	assert.True(t, fake.closed)
}

func TestRedisPublisher_PublishError(t *testing.T) {
	p := newRedisPublisher(&fakeRedis{err: errors.New("connection refused")}, "events")
	err := p.Publish(context.Background(), struct{}{})
	assert.ErrorContains(t, err, "publish to events")
}

func TestRedisPublisher_EncodeError(t *testing.T) {
	p := newRedisPublisher(&fakeRedis{}, "events")
	err := p.Publish(context.Background(), make(chan int))
	assert.ErrorContains(t, err, "encode event")
}

func TestNew_NopWithoutAddress(t *testing.T) {
	p := New(Config{}, zap.NewNop())
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), "anything"))
}
