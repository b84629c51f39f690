package service

import (
	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/config"
	"github.com/campagnoli/controle-ferroviario/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Registry RegistryService
	Report   ReportService
}

// NewService 创建 Service 聚合
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	registry := NewRegistryService(repo, cfg.Report.Location(), logger)
	return &Service{
		Registry: registry,
		Report:   NewReportService(registry, &cfg.Report, logger),
	}
}
