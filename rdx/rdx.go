package rdx

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const bookingChannel = "booking-events"

// Client wraps the Redis connection used for issued-token sessions and the
// booking-event channel.
type Client struct {
	conn *redis.Client
}

func New(addr string) *Client {
	return &Client{conn: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// SetSession records an issued token so logout can revoke it.
func (c *Client) SetSession(ctx context.Context, token, email string, ttl time.Duration) error {
	return c.conn.Set(ctx, "auth:token:"+token, email, ttl).Err()
}

// DelSession removes the session key for a token. Returns the number of
// keys removed (0 means the session was already gone or never recorded).
func (c *Client) DelSession(ctx context.Context, token string) (int64, error) {
	return c.conn.Del(ctx, "auth:token:"+token).Result()
}

// BookingEvent is published whenever a booking is created, so the websocket
// broadcaster can notify subscribed clients.
type BookingEvent struct {
	Date          string `json:"date"`
	TreatmentName string `json:"treatmentName"`
	Slot          string `json:"slot"`
}

// PublishBookingEvent pushes the event onto the booking channel. Failures
// are the caller's to log; a missed live update never fails a booking.
func (c *Client) PublishBookingEvent(ctx context.Context, ev BookingEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.conn.Publish(ctx, bookingChannel, data).Err()
}

// SubscribeBookingEvents listens on the booking channel and invokes fn for
// each decoded event. Blocks until ctx is done.
func (c *Client) SubscribeBookingEvents(ctx context.Context, fn func(BookingEvent)) {
	sub := c.conn.Subscribe(ctx, bookingChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev BookingEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("booking event decode failed: %v", err)
				continue
			}
			fn(ev)
		}
	}
}
