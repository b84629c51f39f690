package repository

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/internal/model"
)

type memoryEntry struct {
	reg       *model.Registry
	expiresAt time.Time
}

// MemorySessionRepo 进程内会话存储，Redis 不可用时的降级实现
type MemorySessionRepo struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewMemorySessionRepo 创建进程内会话存储
func NewMemorySessionRepo(ttl time.Duration, logger *zap.Logger) *MemorySessionRepo {
	return &MemorySessionRepo{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

func (r *MemorySessionRepo) Load(_ context.Context, sessionID string) (*model.Registry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return &model.Registry{}, nil
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.entries, sessionID)
		return &model.Registry{}, nil
	}
	return e.reg.Clone(), nil
}

func (r *MemorySessionRepo) Save(_ context.Context, sessionID string, reg *model.Registry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[sessionID] = memoryEntry{
		reg:       reg.Clone(),
		expiresAt: r.now().Add(r.ttl),
	}
	return nil
}

func (r *MemorySessionRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, sessionID)
	return nil
}

// Sweep 清理已过期会话，返回清理数量
func (r *MemorySessionRepo) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

// Len 当前存活会话数
func (r *MemorySessionRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// RunJanitor 周期性清理过期会话，ctx 取消后返回
func (r *MemorySessionRepo) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("清理过期会话", zap.Int("count", n))
			}
		}
	}
}
