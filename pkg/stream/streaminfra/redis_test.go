package streaminfra

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionCancelIsIdempotent(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	// No channels, so no connection is established; lifecycle only.
	pubsub := client.Subscribe(context.Background())
	done := make(chan struct{})

	cancel := stopFunc(done, pubsub)

	assert.NotPanics(t, func() {
		cancel()
		cancel()
	})

	select {
	case <-done:
	default:
		require.Fail(t, "cancel did not close the done channel")
	}
}
