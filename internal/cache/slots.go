package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SlotCache кэширует свободные слоты врача на дату. Кэш короткоживущий:
// источником истины остается база, кэш лишь снимает нагрузку с горячего
// эндпоинта выбора времени.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewSlotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SlotCache {
	return &SlotCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func slotKey(doctorID int64, date string) string {
	return fmt.Sprintf("slots:%d:%s", doctorID, date)
}

func (c *SlotCache) Get(ctx context.Context, doctorID int64, date string) ([]string, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, slotKey(doctorID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("ошибка чтения кэша слотов", zap.Error(err))
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(data, &slots); err != nil {
		c.logger.Warn("ошибка декодирования кэша слотов", zap.Error(err))
		return nil, false
	}

	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, doctorID int64, date string, slots []string) {
	if c == nil {
		return
	}

	data, err := json.Marshal(slots)
	if err != nil {
		c.logger.Warn("ошибка кодирования кэша слотов", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, slotKey(doctorID, date), data, c.ttl).Err(); err != nil {
		c.logger.Warn("ошибка записи кэша слотов", zap.Error(err))
	}
}

// Invalidate сбрасывает кэш после создания, переноса или отмены
// записи на эту дату.
func (c *SlotCache) Invalidate(ctx context.Context, doctorID int64, date string) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, slotKey(doctorID, date)).Err(); err != nil {
		c.logger.Warn("ошибка сброса кэша слотов", zap.Error(err))
	}
}
