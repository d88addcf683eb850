// Package telemetry is an optional fan-out sink for inventory tag reads and
// reader status, adapted from the teacher's Redis pub/sub bridge (spec.md
// is silent on persistence/analytics; this is ambient infrastructure, not
// part of the core protocol engine, and a reader works with no Sink at
// all).
package telemetry

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tagfleet/rfid-reader/pkg/response"
)

// Sink publishes reader events to Redis: one hash per reader holding the
// latest-seen tag, plus a pub/sub channel per reader for live consumers.
type Sink struct {
	client   *redis.Client
	ctx      context.Context
	readerID string
}

// New connects to addr and scopes all keys/channels to readerID.
func New(addr, password string, db int, readerID string) (*Sink, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("telemetry: connect to redis: %w", err)
	}

	return &Sink{client: client, ctx: ctx, readerID: readerID}, nil
}

func (s *Sink) key() string     { return "rfid:" + s.readerID }
func (s *Sink) channel() string { return "rfid:" + s.readerID + ":tags" }

// PublishTag records the most recently seen EPC/RSSI for this reader and
// fans it out to the reader's channel in one pipelined round trip.
func (s *Sink) PublishTag(tag *response.InventoryTag) error {
	if tag == nil {
		return nil
	}
	epc := hex.EncodeToString(tag.EPC)

	pipe := s.client.Pipeline()
	pipe.HSet(s.ctx, s.key(), "epc", epc, "antenna", tag.Antenna, "rssi_raw", tag.RSSIRaw)
	pipe.Publish(s.ctx, s.channel(), fmt.Sprintf("%s:%d:%d", epc, tag.Antenna, tag.RSSIRaw))
	_, err := pipe.Exec(s.ctx)
	return err
}

// PublishStatus records the reader's current lifecycle status (e.g.
// "idle", "streaming", "disconnected") and publishes it to the reader's
// channel.
func (s *Sink) PublishStatus(status string) error {
	pipe := s.client.Pipeline()
	pipe.HSet(s.ctx, s.key(), "status", status)
	pipe.Publish(s.ctx, s.channel(), "status:"+status)
	_, err := pipe.Exec(s.ctx)
	return err
}

// Subscribe returns a channel of raw pub/sub messages for this reader's
// tag/status channel, and a function to unsubscribe.
func (s *Sink) Subscribe() (<-chan *redis.Message, func()) {
	pubsub := s.client.Subscribe(s.ctx, s.channel())
	ch := pubsub.Channel()
	return ch, func() { pubsub.Close() }
}

// Close releases the underlying Redis connection.
func (s *Sink) Close() error {
	return s.client.Close()
}
