package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/config"
	"github.com/campagnoli/controle-ferroviario/internal/model"
	apperrors "github.com/campagnoli/controle-ferroviario/pkg/errors"
)

// 报表文件的 MIME 类型
const (
	MimePDF  = "application/pdf"
	MimePNG  = "image/png"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportService 报表业务接口
//
// 设计说明：
//   - 报表只消费台账快照与统计结果，布局、配色、编码均在此层完成
//   - 以 bytes.Buffer 返回，由 Handler 层设置下载响应头
//   - 配置了 output_dir 时额外落盘一份（按会话命名，下次生成时覆盖）
type ReportService interface {
	// RenderPDF 横向 A4：当班信息 + 非空列车明细，状态单元格按颜色区分
	RenderPDF(ctx context.Context, sessionID string) (*bytes.Buffer, string, error)
	// RenderImage 柱状图 + 饼图 + 文字摘要
	RenderImage(ctx context.Context, sessionID string) (*bytes.Buffer, string, error)
	// RenderXLSX 明细表 + 统计表
	RenderXLSX(ctx context.Context, sessionID string) (*bytes.Buffer, string, error)
}

type reportService struct {
	registry RegistryService
	cfg      *config.ReportConfig
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(registry RegistryService, cfg *config.ReportConfig, logger *zap.Logger) ReportService {
	return &reportService{
		registry: registry,
		cfg:      cfg,
		loc:      cfg.Location(),
		now:      time.Now,
		logger:   logger,
	}
}

// reportData 渲染所需的全部输入
type reportData struct {
	shift  model.ShiftInfo
	trains []model.IndexedTrain
	stats  model.Statistics
	at     time.Time
}

func (s *reportService) RenderPDF(ctx context.Context, sessionID string) (*bytes.Buffer, string, error) {
	return s.render(ctx, sessionID, "train_report", "pdf", s.buildPDF)
}

func (s *reportService) RenderImage(ctx context.Context, sessionID string) (*bytes.Buffer, string, error) {
	return s.render(ctx, sessionID, "train_summary", "png", s.buildImage)
}

func (s *reportService) RenderXLSX(ctx context.Context, sessionID string) (*bytes.Buffer, string, error) {
	return s.render(ctx, sessionID, "train_report", "xlsx", s.buildXLSX)
}

// render 报表公共流程：取快照 → 渲染 → 可选落盘
func (s *reportService) render(
	ctx context.Context,
	sessionID, base, ext string,
	build func(*reportData) (*bytes.Buffer, error),
) (*bytes.Buffer, string, error) {
	reg, err := s.registry.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	data := &reportData{
		shift:  *reg.ShiftInfo,
		trains: reg.NonEmptyTrains(),
		stats:  ComputeStatistics(reg.Trains),
		at:     s.now().In(s.loc),
	}

	buf, err := build(data)
	if err != nil {
		s.logger.Error("报表生成失败",
			zap.String("session_id", sessionID),
			zap.String("format", ext),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrRendering, err)
	}

	s.keepCopy(sessionID, base, ext, buf.Bytes())

	filename := fmt.Sprintf("%s_%s.%s", base, data.at.Format("20060102_1504"), ext)
	return buf, filename, nil
}

// keepCopy 落盘失败不影响本次下载
func (s *reportService) keepCopy(sessionID, base, ext string, content []byte) {
	if s.cfg.OutputDir == "" {
		return
	}
	path := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%s_%s.%s", base, sessionID, ext))
	if err := os.WriteFile(path, content, 0o600); err != nil {
		s.logger.Warn("报表落盘失败", zap.String("path", path), zap.Error(err))
	}
}
