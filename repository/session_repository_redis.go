package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionRepositoryRedis keeps sessions in redis so they survive restarts
// and can be shared across instances.
type SessionRepositoryRedis struct {
	client *redis.Client
	ctx    context.Context
}

func NewSessionRepositoryRedis(addr string) *SessionRepositoryRedis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &SessionRepositoryRedis{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *SessionRepositoryRedis) Put(token, username string) error {
	return r.client.Set(r.ctx, sessionKeyPrefix+token, username, 0).Err()
}

func (r *SessionRepositoryRedis) Get(token string) (string, bool) {
	username, err := r.client.Get(r.ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return "", false
	}
	return username, true
}

func (r *SessionRepositoryRedis) Delete(token string) error {
	return r.client.Del(r.ctx, sessionKeyPrefix+token).Err()
}
