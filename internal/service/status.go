package service

import (
	"strings"
	"time"

	"github.com/campagnoli/controle-ferroviario/internal/model"
)

// OnTimeToleranceMinutes 准点容差（单侧：早到或晚到不超过 5 分钟均为准点）
const OnTimeToleranceMinutes = 5

const clockLayout = "15:04"

// CalculateStatus 根据计划时刻与实际时刻推导状态
//   - 实际与计划均有值：差值 ≤ 5 分钟为 on_time，否则 late；任一解析失败为 awaiting
//   - 仅有实际时刻：running
//   - 无实际时刻：awaiting
func CalculateStatus(scheduled, actual string) model.TrainStatus {
	scheduled = strings.TrimSpace(scheduled)
	actual = strings.TrimSpace(actual)

	switch {
	case actual != "" && scheduled != "":
		diff, ok := minutesBetween(scheduled, actual)
		if !ok {
			return model.StatusAwaiting
		}
		if diff <= OnTimeToleranceMinutes {
			return model.StatusOnTime
		}
		return model.StatusLate
	case actual != "":
		return model.StatusRunning
	default:
		return model.StatusAwaiting
	}
}

// ApplyStatuses 分别计算出发与到达状态并写回记录
func ApplyStatuses(rec *model.TrainRecord) {
	rec.DepartureStatus = CalculateStatus(rec.ScheduledDeparture, rec.ActualDeparture)
	rec.ArrivalStatus = CalculateStatus(rec.ScheduledArrival, rec.ActualArrival)
}

// minutesBetween 返回 actual - scheduled 的分钟数，不处理跨零点
func minutesBetween(scheduled, actual string) (int, bool) {
	s, err := time.Parse(clockLayout, scheduled)
	if err != nil {
		return 0, false
	}
	a, err := time.Parse(clockLayout, actual)
	if err != nil {
		return 0, false
	}
	return int(a.Sub(s) / time.Minute), true
}

// ComputeStatistics 统计非空记录的状态分布
func ComputeStatistics(trains []model.TrainRecord) model.Statistics {
	stats := model.NewStatistics()
	for i := range trains {
		if trains[i].IsEmpty() {
			continue
		}
		stats.Add(trains[i].CountedStatus())
	}
	return stats
}
