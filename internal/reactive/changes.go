package reactive

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ChangesChannel carries one message per successful mutation. Every API
// instance listens on it so subscribers on any instance see the change.
const ChangesChannel = "portal:changes"

type Changes struct {
	rdb *redis.Client
}

func NewChanges(rdb *redis.Client) *Changes {
	return &Changes{rdb: rdb}
}

func (c *Changes) Publish(ctx context.Context, source string) error {
	return c.rdb.Publish(ctx, ChangesChannel, source).Err()
}

// Subscribe returns once the subscription is confirmed by the server, so no
// change published afterwards is missed.
func (c *Changes) Subscribe(ctx context.Context) (*redis.PubSub, error) {
	ps := c.rdb.Subscribe(ctx, ChangesChannel)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", ChangesChannel, err)
	}
	return ps, nil
}
