package notify

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher fans activity events out on Redis pub/sub. Subscribers listen on
// Channel(userID) and re-fetch the dashboard when a message arrives.
type Publisher struct {
	RDB *redis.Client
	now func() time.Time
}

func New(addr, pass string, db int) *Publisher {
	return &Publisher{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		now: time.Now,
	}
}

// Channel is the per-user topic the web client subscribes to.
func Channel(userID int64) string {
	return "donation-update-" + strconv.FormatInt(userID, 10)
}

func (p *Publisher) Ping(ctx context.Context) error { return p.RDB.Ping(ctx).Err() }

// Publish sends one event. Delivery is fire-and-forget: nobody listening is
// not an error.
func (p *Publisher) Publish(ctx context.Context, userID int64, kind string, record any) error {
	b, err := encodeEvent(kind, userID, record, p.now())
	if err != nil {
		return err
	}
	return p.RDB.Publish(ctx, Channel(userID), b).Err()
}

func (p *Publisher) Close() error { return p.RDB.Close() }
