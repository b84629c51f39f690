package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/internal/dto"
	"github.com/campagnoli/controle-ferroviario/internal/model"
	"github.com/campagnoli/controle-ferroviario/internal/repository"
	apperrors "github.com/campagnoli/controle-ferroviario/pkg/errors"
)

// ── 台账模块业务错误 ──

var (
	ErrTrainNotFound = fmt.Errorf("列车记录不存在: %w", apperrors.ErrNotFound)
	ErrInvalidIndex  = fmt.Errorf("下标不能为负数: %w", apperrors.ErrValidation)
)

// RegistryService 会话台账业务接口
//
// 设计说明：
//   - 所有操作以会话 ID 为键，读取 → 修改副本 → 整体写回，写回失败则本次操作不生效
//   - 列车记录以下标为身份，删除后其后记录下标依次前移
type RegistryService interface {
	GetShiftInfo(ctx context.Context, sessionID string) (*dto.ShiftInfoResponse, error)
	ReplaceShiftInfo(ctx context.Context, sessionID string, req *dto.ShiftInfoRequest) (*dto.ShiftInfoResponse, error)

	ListTrains(ctx context.Context, sessionID string) ([]dto.TrainResponse, error)
	ReplaceTrains(ctx context.Context, sessionID string, reqs []dto.TrainRequest) ([]dto.TrainResponse, error)
	UpsertTrain(ctx context.Context, sessionID string, index int, req *dto.TrainRequest) (*dto.TrainResponse, error)
	AddTrain(ctx context.Context, sessionID string) (*dto.AddTrainResponse, error)
	DeleteTrain(ctx context.Context, sessionID string, index int) error

	Statistics(ctx context.Context, sessionID string) (*dto.StatisticsResponse, error)
	CalculateStatus(req *dto.TrainRequest) *dto.TrainResponse

	// Snapshot 报表使用的只读快照，缺失的当班信息以默认值补齐但不写回
	Snapshot(ctx context.Context, sessionID string) (*model.Registry, error)
	Clear(ctx context.Context, sessionID string) error
}

type registryService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewRegistryService 创建 RegistryService 实例
// loc 决定默认当班日期所在时区
func NewRegistryService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) RegistryService {
	return &registryService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

// ────────────────────── 当班信息 ──────────────────────

func (s *registryService) GetShiftInfo(ctx context.Context, sessionID string) (*dto.ShiftInfoResponse, error) {
	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if reg.ShiftInfo == nil {
		info := s.defaultShiftInfo()
		reg.ShiftInfo = &info
		if err := s.save(ctx, sessionID, reg); err != nil {
			return nil, err
		}
	}

	return toShiftInfoResponse(reg.ShiftInfo), nil
}

func (s *registryService) ReplaceShiftInfo(ctx context.Context, sessionID string, req *dto.ShiftInfoRequest) (*dto.ShiftInfoResponse, error) {
	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	reg.ShiftInfo = &model.ShiftInfo{
		Agent:     req.Agent,
		Date:      req.Date,
		IsHoliday: model.HolidayFlag(req.IsHoliday),
		Shift:     model.ShiftPeriod(req.Shift),
	}
	if err := s.save(ctx, sessionID, reg); err != nil {
		return nil, err
	}

	return toShiftInfoResponse(reg.ShiftInfo), nil
}

// ────────────────────── 列车列表 ──────────────────────

func (s *registryService) ListTrains(ctx context.Context, sessionID string) ([]dto.TrainResponse, error) {
	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if reg.Trains == nil {
		reg.Trains = make([]model.TrainRecord, model.DefaultTrainSlots)
		for i := range reg.Trains {
			reg.Trains[i] = model.NewEmptyTrain()
		}
		if err := s.save(ctx, sessionID, reg); err != nil {
			return nil, err
		}
	}

	return toTrainResponses(reg.Trains), nil
}

func (s *registryService) ReplaceTrains(ctx context.Context, sessionID string, reqs []dto.TrainRequest) ([]dto.TrainResponse, error) {
	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// 显式空列表保持为空，不会被重新预置
	trains := make([]model.TrainRecord, 0, len(reqs))
	for i := range reqs {
		trains = append(trains, toTrainRecord(&reqs[i]))
	}
	reg.Trains = trains

	if err := s.save(ctx, sessionID, reg); err != nil {
		return nil, err
	}
	return toTrainResponses(reg.Trains), nil
}

func (s *registryService) UpsertTrain(ctx context.Context, sessionID string, index int, req *dto.TrainRequest) (*dto.TrainResponse, error) {
	if index < 0 {
		return nil, ErrInvalidIndex
	}

	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if reg.Trains == nil {
		reg.Trains = []model.TrainRecord{}
	}
	for len(reg.Trains) <= index {
		reg.Trains = append(reg.Trains, model.NewEmptyTrain())
	}
	reg.Trains[index] = toTrainRecord(req)

	if err := s.save(ctx, sessionID, reg); err != nil {
		return nil, err
	}
	return toTrainResponse(&reg.Trains[index]), nil
}

func (s *registryService) AddTrain(ctx context.Context, sessionID string) (*dto.AddTrainResponse, error) {
	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	reg.Trains = append(reg.Trains, model.NewEmptyTrain())
	if err := s.save(ctx, sessionID, reg); err != nil {
		return nil, err
	}

	return &dto.AddTrainResponse{Index: len(reg.Trains) - 1}, nil
}

func (s *registryService) DeleteTrain(ctx context.Context, sessionID string, index int) error {
	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(reg.Trains) {
		return ErrTrainNotFound
	}

	reg.Trains = append(reg.Trains[:index], reg.Trains[index+1:]...)
	return s.save(ctx, sessionID, reg)
}

// ────────────────────── 统计与状态 ──────────────────────

func (s *registryService) Statistics(ctx context.Context, sessionID string) (*dto.StatisticsResponse, error) {
	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toStatisticsResponse(ComputeStatistics(reg.Trains)), nil
}

func (s *registryService) CalculateStatus(req *dto.TrainRequest) *dto.TrainResponse {
	rec := toTrainRecord(req)
	ApplyStatuses(&rec)
	return toTrainResponse(&rec)
}

// ────────────────────── 快照与清理 ──────────────────────

func (s *registryService) Snapshot(ctx context.Context, sessionID string) (*model.Registry, error) {
	reg, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if reg.ShiftInfo == nil {
		info := s.defaultShiftInfo()
		reg.ShiftInfo = &info
	}
	return reg, nil
}

func (s *registryService) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Session.Delete(ctx, sessionID); err != nil {
		s.logger.Error("清除会话失败", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *registryService) load(ctx context.Context, sessionID string) (*model.Registry, error) {
	reg, err := s.repo.Session.Load(ctx, sessionID)
	if err != nil {
		s.logger.Error("读取会话台账失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return reg, nil
}

func (s *registryService) save(ctx context.Context, sessionID string, reg *model.Registry) error {
	if err := s.repo.Session.Save(ctx, sessionID, reg); err != nil {
		s.logger.Error("写入会话台账失败", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}
	return nil
}

func (s *registryService) defaultShiftInfo() model.ShiftInfo {
	now := s.now()
	if s.loc != nil {
		now = now.In(s.loc)
	}
	return model.NewDefaultShiftInfo(now)
}

func toShiftInfoResponse(info *model.ShiftInfo) *dto.ShiftInfoResponse {
	return &dto.ShiftInfoResponse{
		Agent:     info.Agent,
		Date:      info.Date,
		IsHoliday: string(info.IsHoliday),
		Shift:     string(info.Shift),
	}
}

func toTrainRecord(req *dto.TrainRequest) model.TrainRecord {
	return model.TrainRecord{
		Number:             req.Number,
		TrainID:            req.TrainID,
		Origin:             req.Origin,
		Destination:        req.Destination,
		ScheduledDeparture: req.ScheduledDeparture,
		ScheduledArrival:   req.ScheduledArrival,
		ActualDeparture:    req.ActualDeparture,
		DepartureStatus:    req.DepartureStatus.OrDefault(),
		ActualArrival:      req.ActualArrival,
		ArrivalStatus:      req.ArrivalStatus.OrDefault(),
		Notes:              req.Notes,
	}
}

func toTrainResponse(rec *model.TrainRecord) *dto.TrainResponse {
	return &dto.TrainResponse{
		Number:             rec.Number,
		TrainID:            rec.TrainID,
		Origin:             rec.Origin,
		Destination:        rec.Destination,
		ScheduledDeparture: rec.ScheduledDeparture,
		ScheduledArrival:   rec.ScheduledArrival,
		ActualDeparture:    rec.ActualDeparture,
		DepartureStatus:    rec.DepartureStatus.OrDefault(),
		ActualArrival:      rec.ActualArrival,
		ArrivalStatus:      rec.ArrivalStatus.OrDefault(),
		Notes:              rec.Notes,
	}
}

func toTrainResponses(trains []model.TrainRecord) []dto.TrainResponse {
	result := make([]dto.TrainResponse, 0, len(trains))
	for i := range trains {
		result = append(result, *toTrainResponse(&trains[i]))
	}
	return result
}

func toStatisticsResponse(stats model.Statistics) *dto.StatisticsResponse {
	return &dto.StatisticsResponse{
		Late:     stats[model.StatusLate],
		OnTime:   stats[model.StatusOnTime],
		Awaiting: stats[model.StatusAwaiting],
		Running:  stats[model.StatusRunning],
		Extra:    stats[model.StatusExtra],
		Total:    stats.Total(),
	}
}
