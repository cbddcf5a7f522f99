// Package attachment implements the two-step upload handshake: a caller asks
// for a single-use upload URL, then posts the file body to it.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const ticketPrefix = "upload:"

var ErrTicketInvalid = errors.New("upload ticket invalid or expired")

// Tickets stores upload tokens in Redis. A token maps to the id of the user
// who requested it and disappears on first use or after the TTL.
type Tickets struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewTickets(rdb redis.Cmdable, ttl time.Duration) *Tickets {
	return &Tickets{rdb: rdb, ttl: ttl}
}

func (t *Tickets) Issue(ctx context.Context, ownerID string) (string, error) {
	token := uuid.NewString()
	if err := t.rdb.Set(ctx, ticketPrefix+token, ownerID, t.ttl).Err(); err != nil {
		return "", fmt.Errorf("store upload ticket: %w", err)
	}
	return token, nil
}

// Redeem consumes the token and returns its owner.
func (t *Tickets) Redeem(ctx context.Context, token string) (string, error) {
	ownerID, err := t.rdb.GetDel(ctx, ticketPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTicketInvalid
	}
	if err != nil {
		return "", fmt.Errorf("redeem upload ticket: %w", err)
	}
	return ownerID, nil
}
