package service

import (
	"context"
	"encoding/json"
	"time"

	"tsurigu_back_end/internal/checkout"
	"tsurigu_back_end/internal/database"
	"tsurigu_back_end/internal/models"

	"github.com/redis/go-redis/v9"
)

const cartTTL = 30 * 24 * time.Hour

// RedisCarts mirrors the client-held cart under cart:{userID}. Every write
// publishes on the same key so websocket subscribers see changes live.
type RedisCarts struct{}

var _ checkout.CartStore = (*RedisCarts)(nil)

func cartKey(userID string) string { return "cart:" + userID }

func (RedisCarts) Lines(ctx context.Context, buyerID string) ([]models.CartLine, error) {
	data, err := database.Redis.Get(ctx, cartKey(buyerID)).Result()
	if err == redis.Nil || data == "" {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c RedisCarts) Save(ctx context.Context, buyerID string, lines []models.CartLine) error {
	key := cartKey(buyerID)
	if len(lines) == 0 {
		if err := database.Redis.Del(ctx, key).Err(); err != nil {
			return err
		}
		database.Redis.Publish(ctx, key, "cleared")
		return nil
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := database.Redis.Set(ctx, key, data, cartTTL).Err(); err != nil {
		return err
	}
	database.Redis.Publish(ctx, key, "updated")
	return nil
}

// RemoveLines deletes only the given products from the cart, leaving the rest
// for a later checkout.
func (c RedisCarts) RemoveLines(ctx context.Context, buyerID string, productIDs []string) error {
	lines, err := c.Lines(ctx, buyerID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	purchased := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		purchased[id] = true
	}

	remaining := lines[:0]
	for _, line := range lines {
		if !purchased[line.ProductID] {
			remaining = append(remaining, line)
		}
	}
	return c.Save(ctx, buyerID, remaining)
}

func (c RedisCarts) Clear(ctx context.Context, buyerID string) error {
	return c.Save(ctx, buyerID, nil)
}
