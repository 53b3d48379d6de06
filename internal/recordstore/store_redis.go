package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"release-gateway/pkg/platform/sentinel"
)

const (
	redisKeyPrefix   = "recordstore:"
	redisChannelName = "recordstore:changed"
)

// RedisStore persists documents in Redis and relays cross-process change
// notifications over pub/sub. Each instance tags its publications with a
// random id so it can discard echoes of its own writes: local changes are
// already delivered synchronously from Save.
type RedisStore struct {
	client     *redis.Client
	log        *slog.Logger
	instanceID string
	hub        *hub
}

func NewRedisStore(client *redis.Client, log *slog.Logger) *RedisStore {
	return &RedisStore{
		client:     client,
		log:        log,
		instanceID: uuid.NewString(),
		hub:        newHub(),
	}
}

func (s *RedisStore) Load(ctx context.Context, key Key) (json.RawMessage, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+string(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Save(ctx context.Context, key Key, value json.RawMessage) error {
	if err := s.client.Set(ctx, redisKeyPrefix+string(key), []byte(value), 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	payload := s.instanceID + " " + string(key)
	if err := s.client.Publish(ctx, redisChannelName, payload).Err(); err != nil {
		// The write itself succeeded; peers will catch up on their next read.
		s.log.WarnContext(ctx, "publish change notification failed",
			"key", string(key), "error", err)
	}
	s.hub.notify(key, OriginLocal)
	return nil
}

func (s *RedisStore) Subscribe(key Key, fn ChangeFunc) (cancel func()) {
	return s.hub.add(key, fn)
}

// Listen consumes the shared pub/sub channel and dispatches external-origin
// notifications for writes made by other instances. It blocks until ctx is
// canceled.
func (s *RedisStore) Listen(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, redisChannelName)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			instance, key, found := strings.Cut(msg.Payload, " ")
			if !found {
				s.log.WarnContext(ctx, "malformed change notification", "payload", msg.Payload)
				continue
			}
			if instance == s.instanceID {
				continue
			}
			s.hub.notify(Key(key), OriginExternal)
		}
	}
}
