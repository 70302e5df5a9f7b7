package realtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Bus interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe delivers events for one game space channel until ctx is
	// done or the returned stop function is called.
	Subscribe(ctx context.Context, gameSpaceID uuid.UUID, channel string, onEvent func(Event)) (stop func() error, err error)
}

type redisBus struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisBus(rdb *redis.Client, log *zap.Logger) Bus {
	return &redisBus{rdb: rdb, log: log.Named("realtime")}
}

func (b *redisBus) Publish(ctx context.Context, ev Event) error {
	raw, err := sonic.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return b.rdb.Publish(ctx, Topic(ev.GameSpaceID, ev.Channel), raw).Err()
}

func (b *redisBus) Subscribe(ctx context.Context, gameSpaceID uuid.UUID, channel string, onEvent func(Event)) (func() error, error) {
	if onEvent == nil {
		return nil, errors.New("onEvent callback required")
	}

	topic := Topic(gameSpaceID, channel)
	sub := b.rdb.Subscribe(ctx, topic)

	// ensures the subscription is live before returning
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var ev Event
				if err := sonic.UnmarshalString(m.Payload, &ev); err != nil {
					b.log.Sugar().Warnw("bad realtime payload", "topic", topic, "err", err)
					continue
				}
				onEvent(ev)
			}
		}
	}()

	return func() error {
		cancel()
		<-done
		return nil
	}, nil
}
