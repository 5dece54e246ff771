package service

import (
	"context"
	"encoding/json"
	"time"

	"tsurigu_back_end/internal/checkout"
	"tsurigu_back_end/internal/database"

	"github.com/redis/go-redis/v9"
)

// attemptTTL bounds the Authorized → Abandoned window: an attempt nobody
// settles simply expires together with the processor-side authorization.
const attemptTTL = time.Hour

// RedisAttempts stores the per-buyer checkout attempt under checkout:{userID}.
type RedisAttempts struct{}

var _ checkout.AttemptStore = (*RedisAttempts)(nil)

func attemptKey(buyerID string) string { return "checkout:" + buyerID }

func (RedisAttempts) Get(ctx context.Context, buyerID string) (*checkout.Attempt, error) {
	data, err := database.Redis.Get(ctx, attemptKey(buyerID)).Result()
	if err == redis.Nil || data == "" {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var attempt checkout.Attempt
	if err := json.Unmarshal([]byte(data), &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (RedisAttempts) Put(ctx context.Context, buyerID string, attempt *checkout.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, attemptKey(buyerID), data, attemptTTL).Err()
}

func (RedisAttempts) Delete(ctx context.Context, buyerID string) error {
	return database.Redis.Del(ctx, attemptKey(buyerID)).Err()
}
