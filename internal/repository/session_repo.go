package repository

import (
	"context"

	"github.com/campagnoli/controle-ferroviario/internal/model"
)

// SessionRepository 会话台账数据访问接口
// 每个会话只有一份台账快照，读写均为整体替换
type SessionRepository interface {
	// Load 读取会话台账；会话不存在或已过期时返回空 Registry（非 nil）
	Load(ctx context.Context, sessionID string) (*model.Registry, error)
	// Save 整体写入会话台账并刷新过期时间
	Save(ctx context.Context, sessionID string, reg *model.Registry) error
	// Delete 清除会话台账，会话不存在时不报错
	Delete(ctx context.Context, sessionID string) error
}
