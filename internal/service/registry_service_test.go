package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/internal/dto"
	"github.com/campagnoli/controle-ferroviario/internal/model"
	apperrors "github.com/campagnoli/controle-ferroviario/pkg/errors"
)

// ── 测试辅助 ──

const testSession = "session-1"

var fixedNow = time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC)

func setupTestRegistryService() (RegistryService, *mockSessionRepo) {
	repo, sessions := newMockRepository()
	svc := NewRegistryService(repo, time.UTC, zap.NewNop())
	svc.(*registryService).now = func() time.Time { return fixedNow }
	return svc, sessions
}

func trainReq(id string) dto.TrainRequest {
	return dto.TrainRequest{TrainID: id, Origin: "Luz", Destination: "Jundiaí"}
}

// ── 当班信息 ──

func TestRegistryService_GetShiftInfo_Default(t *testing.T) {
	svc, sessions := setupTestRegistryService()

	info, err := svc.GetShiftInfo(context.Background(), testSession)
	if err != nil {
		t.Fatalf("GetShiftInfo 应成功: %v", err)
	}
	if info.Date != "19/10/2026" {
		t.Errorf("期望默认日期 19/10/2026，实际 %s", info.Date)
	}
	if info.IsHoliday != "no" || info.Shift != "day" || info.Agent != "" {
		t.Errorf("默认当班信息不符: %+v", info)
	}
	if sessions.sessions[testSession].ShiftInfo == nil {
		t.Error("默认当班信息应写回会话")
	}
}

func TestRegistryService_GetShiftInfo_UsesLocation(t *testing.T) {
	repo, _ := newMockRepository()
	loc := time.FixedZone("UTC+3", 3*60*60)
	svc := NewRegistryService(repo, loc, zap.NewNop())
	svc.(*registryService).now = func() time.Time { return fixedNow }

	info, _ := svc.GetShiftInfo(context.Background(), testSession)
	if info.Date != "20/10/2026" {
		t.Errorf("期望按 UTC+3 得到 20/10/2026，实际 %s", info.Date)
	}
}

func TestRegistryService_ReplaceShiftInfo(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	_, _ = svc.GetShiftInfo(ctx, testSession)
	req := &dto.ShiftInfoRequest{Agent: "Paulo", Date: "18/10/2026", IsHoliday: "yes", Shift: "night"}
	if _, err := svc.ReplaceShiftInfo(ctx, testSession, req); err != nil {
		t.Fatalf("ReplaceShiftInfo 应成功: %v", err)
	}

	info, _ := svc.GetShiftInfo(ctx, testSession)
	if info.Agent != "Paulo" || info.Date != "18/10/2026" || info.IsHoliday != "yes" || info.Shift != "night" {
		t.Errorf("当班信息未被整体替换: %+v", info)
	}

	// 整体覆盖：未提供的字段清空
	_, _ = svc.ReplaceShiftInfo(ctx, testSession, &dto.ShiftInfoRequest{Agent: "Ana"})
	info, _ = svc.GetShiftInfo(ctx, testSession)
	if info.Date != "" || info.Shift != "" {
		t.Errorf("整体覆盖后旧字段应被清空: %+v", info)
	}
}

// ── 列车列表 ──

func TestRegistryService_ListTrains_SeedsFive(t *testing.T) {
	svc, sessions := setupTestRegistryService()

	trains, err := svc.ListTrains(context.Background(), testSession)
	if err != nil {
		t.Fatalf("ListTrains 应成功: %v", err)
	}
	if len(trains) != model.DefaultTrainSlots {
		t.Fatalf("期望预置 %d 条空记录，实际 %d", model.DefaultTrainSlots, len(trains))
	}
	for i, tr := range trains {
		if tr.TrainID != "" || tr.DepartureStatus != model.StatusAwaiting || tr.ArrivalStatus != model.StatusAwaiting {
			t.Errorf("第 %d 条应为默认空记录: %+v", i, tr)
		}
	}
	if len(sessions.sessions[testSession].Trains) != model.DefaultTrainSlots {
		t.Error("预置记录应写回会话")
	}
}

func TestRegistryService_ReplaceTrains_EmptyListNotReseeded(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	if _, err := svc.ReplaceTrains(ctx, testSession, []dto.TrainRequest{}); err != nil {
		t.Fatalf("ReplaceTrains 应成功: %v", err)
	}
	trains, _ := svc.ListTrains(ctx, testSession)
	if len(trains) != 0 {
		t.Errorf("显式替换为空列表后不应重新预置，实际 %d 条", len(trains))
	}
}

func TestRegistryService_ReplaceTrains(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	reqs := []dto.TrainRequest{trainReq("A"), trainReq("B")}
	reqs[1].DepartureStatus = model.StatusLate
	got, err := svc.ReplaceTrains(ctx, testSession, reqs)
	if err != nil {
		t.Fatalf("ReplaceTrains 应成功: %v", err)
	}
	if len(got) != 2 || got[1].TrainID != "B" || got[1].DepartureStatus != model.StatusLate {
		t.Errorf("返回结果不符: %+v", got)
	}
	if got[0].DepartureStatus != model.StatusAwaiting {
		t.Errorf("未给出的状态应默认为 awaiting，实际 %s", got[0].DepartureStatus)
	}
}

func TestRegistryService_UpsertTrain_GrowsSequence(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	_, _ = svc.ListTrains(ctx, testSession) // 5 条
	req := trainReq("R 9")
	if _, err := svc.UpsertTrain(ctx, testSession, 8, &req); err != nil {
		t.Fatalf("UpsertTrain 应成功: %v", err)
	}

	trains, _ := svc.ListTrains(ctx, testSession)
	if len(trains) != 9 {
		t.Fatalf("期望长度增长到 9，实际 %d", len(trains))
	}
	for i := 5; i < 8; i++ {
		if trains[i].TrainID != "" {
			t.Errorf("第 %d 条应为补齐的空记录", i)
		}
	}
	if trains[8].TrainID != "R 9" {
		t.Errorf("期望第 8 条为 R 9，实际 %s", trains[8].TrainID)
	}
}

func TestRegistryService_UpsertTrain_NeverShrinks(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	_, _ = svc.ListTrains(ctx, testSession)
	req := trainReq("X")
	_, _ = svc.UpsertTrain(ctx, testSession, 1, &req)

	trains, _ := svc.ListTrains(ctx, testSession)
	if len(trains) != model.DefaultTrainSlots {
		t.Errorf("下标在范围内时长度不应变化，实际 %d", len(trains))
	}
	if trains[1].TrainID != "X" {
		t.Errorf("期望第 1 条被替换为 X，实际 %s", trains[1].TrainID)
	}
}

func TestRegistryService_UpsertTrain_AbsentSequence(t *testing.T) {
	svc, sessions := setupTestRegistryService()

	req := trainReq("Y")
	if _, err := svc.UpsertTrain(context.Background(), testSession, 2, &req); err != nil {
		t.Fatalf("UpsertTrain 应成功: %v", err)
	}
	if n := len(sessions.sessions[testSession].Trains); n != 3 {
		t.Errorf("未初始化列表上 upsert 下标 2 期望长度 3，实际 %d", n)
	}
}

func TestRegistryService_UpsertTrain_NegativeIndex(t *testing.T) {
	svc, _ := setupTestRegistryService()

	req := trainReq("Z")
	_, err := svc.UpsertTrain(context.Background(), testSession, -1, &req)
	if !errors.Is(err, ErrInvalidIndex) || !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("期望 ErrInvalidIndex，实际: %v", err)
	}
}

func TestRegistryService_AddTrain(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	// 未初始化时从空列表开始
	res, err := svc.AddTrain(ctx, testSession)
	if err != nil {
		t.Fatalf("AddTrain 应成功: %v", err)
	}
	if res.Index != 0 {
		t.Errorf("期望下标 0，实际 %d", res.Index)
	}

	res, _ = svc.AddTrain(ctx, testSession)
	if res.Index != 1 {
		t.Errorf("期望下标 1，实际 %d", res.Index)
	}

	trains, _ := svc.ListTrains(ctx, testSession)
	if len(trains) != 2 {
		t.Errorf("期望 2 条记录，实际 %d", len(trains))
	}
}

func TestRegistryService_AddThenList(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	_, _ = svc.ListTrains(ctx, testSession)
	res, _ := svc.AddTrain(ctx, testSession)
	if res.Index != model.DefaultTrainSlots {
		t.Errorf("期望下标 %d，实际 %d", model.DefaultTrainSlots, res.Index)
	}
	trains, _ := svc.ListTrains(ctx, testSession)
	if len(trains) != model.DefaultTrainSlots+1 {
		t.Errorf("期望 %d 条，实际 %d", model.DefaultTrainSlots+1, len(trains))
	}
}

func TestRegistryService_DeleteTrain_ShiftsIndices(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	_, _ = svc.ReplaceTrains(ctx, testSession, []dto.TrainRequest{trainReq("A"), trainReq("B"), trainReq("C")})
	if err := svc.DeleteTrain(ctx, testSession, 1); err != nil {
		t.Fatalf("DeleteTrain 应成功: %v", err)
	}

	trains, _ := svc.ListTrains(ctx, testSession)
	if len(trains) != 2 {
		t.Fatalf("期望 2 条，实际 %d", len(trains))
	}
	if trains[0].TrainID != "A" || trains[1].TrainID != "C" {
		t.Errorf("删除后后续记录应前移，实际 %s, %s", trains[0].TrainID, trains[1].TrainID)
	}
}

func TestRegistryService_DeleteTrain_NotFound(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	// 未初始化
	if err := svc.DeleteTrain(ctx, testSession, 0); !errors.Is(err, ErrTrainNotFound) {
		t.Errorf("期望 ErrTrainNotFound，实际: %v", err)
	}

	_, _ = svc.ListTrains(ctx, testSession)
	for _, idx := range []int{model.DefaultTrainSlots, 99, -1} {
		err := svc.DeleteTrain(ctx, testSession, idx)
		if !errors.Is(err, ErrTrainNotFound) || !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("下标 %d 期望 ErrTrainNotFound，实际: %v", idx, err)
		}
	}
}

// ── 统计与状态 ──

func TestRegistryService_Statistics_EmptySession(t *testing.T) {
	svc, _ := setupTestRegistryService()

	stats, err := svc.Statistics(context.Background(), testSession)
	if err != nil {
		t.Fatalf("Statistics 应成功: %v", err)
	}
	if *stats != (dto.StatisticsResponse{}) {
		t.Errorf("空会话期望全零，实际 %+v", stats)
	}
}

func TestRegistryService_Statistics(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	a := trainReq("A")
	a.DepartureStatus = model.StatusLate
	b := trainReq("B")
	b.ActualArrival = "10:00"
	b.ArrivalStatus = model.StatusOnTime
	_, _ = svc.ReplaceTrains(ctx, testSession, []dto.TrainRequest{a, b, {}})

	stats, _ := svc.Statistics(ctx, testSession)
	if stats.Late != 1 || stats.OnTime != 1 || stats.Total != 2 {
		t.Errorf("统计结果不符: %+v", stats)
	}
}

func TestRegistryService_CalculateStatus(t *testing.T) {
	svc, sessions := setupTestRegistryService()

	req := &dto.TrainRequest{
		TrainID:            "IC 12",
		ScheduledDeparture: "10:00",
		ActualDeparture:    "10:06",
		ActualArrival:      "11:00",
		Notes:              "keep me",
	}
	got := svc.CalculateStatus(req)
	if got.DepartureStatus != model.StatusLate {
		t.Errorf("期望出发 late，实际 %s", got.DepartureStatus)
	}
	if got.ArrivalStatus != model.StatusRunning {
		t.Errorf("期望到达 running，实际 %s", got.ArrivalStatus)
	}
	if got.TrainID != "IC 12" || got.Notes != "keep me" {
		t.Errorf("其余字段应原样返回: %+v", got)
	}
	if sessions.saves != 0 {
		t.Error("状态计算不应写会话")
	}
}

// ── 快照与清理 ──

func TestRegistryService_Snapshot_DoesNotPersistDefaults(t *testing.T) {
	svc, sessions := setupTestRegistryService()

	reg, err := svc.Snapshot(context.Background(), testSession)
	if err != nil {
		t.Fatalf("Snapshot 应成功: %v", err)
	}
	if reg.ShiftInfo == nil || reg.ShiftInfo.Date != "19/10/2026" {
		t.Errorf("快照应补齐默认当班信息: %+v", reg.ShiftInfo)
	}
	if sessions.saves != 0 {
		t.Error("快照不应写回会话")
	}
}

func TestRegistryService_Clear_ThenReseed(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	_, _ = svc.ReplaceShiftInfo(ctx, testSession, &dto.ShiftInfoRequest{Agent: "Paulo"})
	_, _ = svc.ReplaceTrains(ctx, testSession, []dto.TrainRequest{trainReq("A")})

	if err := svc.Clear(ctx, testSession); err != nil {
		t.Fatalf("Clear 应成功: %v", err)
	}

	info, err := svc.GetShiftInfo(ctx, testSession)
	if err != nil {
		t.Fatalf("清空后 GetShiftInfo 不应报错: %v", err)
	}
	if info.Agent != "" || info.Date != "19/10/2026" {
		t.Errorf("清空后期望默认当班信息，实际 %+v", info)
	}
	trains, _ := svc.ListTrains(ctx, testSession)
	if len(trains) != model.DefaultTrainSlots || trains[0].TrainID != "" {
		t.Errorf("清空后期望 %d 条空记录，实际 %+v", model.DefaultTrainSlots, trains)
	}
}

func TestRegistryService_SessionsIsolated(t *testing.T) {
	svc, _ := setupTestRegistryService()
	ctx := context.Background()

	_, _ = svc.ReplaceTrains(ctx, "s-a", []dto.TrainRequest{trainReq("A")})
	trains, _ := svc.ListTrains(ctx, "s-b")
	if len(trains) != model.DefaultTrainSlots || trains[0].TrainID != "" {
		t.Error("不同会话之间不应共享列车列表")
	}
}

// ── 存储故障 ──

func TestRegistryService_StoreErrors(t *testing.T) {
	svc, sessions := setupTestRegistryService()
	ctx := context.Background()

	sessions.loadErr = errStoreDown
	if _, err := svc.ListTrains(ctx, testSession); !errors.Is(err, errStoreDown) {
		t.Errorf("期望透传存储错误，实际: %v", err)
	}

	sessions.loadErr = nil
	sessions.saveErr = errStoreDown
	if _, err := svc.AddTrain(ctx, testSession); !errors.Is(err, errStoreDown) {
		t.Errorf("期望透传存储错误，实际: %v", err)
	}
	if _, ok := sessions.sessions[testSession]; ok {
		t.Error("写入失败时会话不应被修改")
	}
}
