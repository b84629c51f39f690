package repository

import (
	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/config"
	"github.com/campagnoli/controle-ferroviario/pkg/redis"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Session SessionRepository
}

// NewRepository 按配置选择会话存储
// 配置为 redis 但客户端不可用（rdb 为 nil）时降级为进程内存储
func NewRepository(cfg *config.SessionConfig, rdb *redis.Client, logger *zap.Logger) *Repository {
	if cfg.Store == "redis" && rdb != nil {
		logger.Info("会话存储: redis")
		return &Repository{Session: NewRedisSessionRepo(rdb, cfg.TTL, logger)}
	}
	if cfg.Store == "redis" {
		logger.Warn("Redis 不可用，会话存储降级为进程内存储")
	} else {
		logger.Info("会话存储: memory")
	}
	return &Repository{Session: NewMemorySessionRepo(cfg.TTL, logger)}
}
