package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/internal/model"
	"github.com/campagnoli/controle-ferroviario/pkg/redis"
)

const sessionKeyPrefix = "session:registry:"

type redisSessionRepo struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionRepo 创建基于 Redis 的会话存储，台账以 JSON 存储并随 TTL 过期
func NewRedisSessionRepo(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) SessionRepository {
	return &redisSessionRepo{rdb: rdb, ttl: ttl, logger: logger}
}

func (r *redisSessionRepo) Load(ctx context.Context, sessionID string) (*model.Registry, error) {
	b, err := r.rdb.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return &model.Registry{}, nil
		}
		return nil, fmt.Errorf("读取会话失败: %w", err)
	}

	var reg model.Registry
	if err := json.Unmarshal(b, &reg); err != nil {
		// 损坏的数据按会话失效处理
		r.logger.Warn("会话数据无法解析，已丢弃", zap.String("session_id", sessionID), zap.Error(err))
		return &model.Registry{}, nil
	}
	return &reg, nil
}

func (r *redisSessionRepo) Save(ctx context.Context, sessionID string, reg *model.Registry) error {
	b, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("序列化会话失败: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKeyPrefix+sessionID, b, r.ttl); err != nil {
		return fmt.Errorf("写入会话失败: %w", err)
	}
	return nil
}

func (r *redisSessionRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Delete(ctx, sessionKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("删除会话失败: %w", err)
	}
	return nil
}
