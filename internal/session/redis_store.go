package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, keyPrefix+sess.ID, payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return Session{}, err
	}
	if sess.Expired() {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
