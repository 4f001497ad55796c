// Package flash stores one-shot user messages between a redirect and the
// next request. Messages are kept in a Redis list per client id and are
// removed when read.
package flash

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// CookieName holds the client id messages are filed under.
const CookieName = "flash_id"

const (
	keyPrefix  = "flash:"
	defaultTTL = 5 * time.Minute
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Message struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Store interface {
	Push(ctx context.Context, id string, msg Message) error
	Pop(ctx context.Context, id string) ([]Message, error)
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ttl: defaultTTL}
}

func (s *RedisStore) Push(ctx context.Context, id string, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to encode flash message")
	}

	key := keyPrefix + id
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to store flash message")
	}
	return nil
}

// Pop returns and deletes every pending message for id, oldest first.
func (s *RedisStore) Pop(ctx context.Context, id string) ([]Message, error) {
	key := keyPrefix + id

	var lrange *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read flash messages")
	}

	raw := lrange.Val()
	messages := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
