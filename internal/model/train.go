package model

import "strings"

// DefaultTrainSlots 首次读取列车列表时预置的空行数
const DefaultTrainSlots = 5

// TrainRecord 列车运行记录
// 记录没有稳定 ID，身份即其在列表中的下标
type TrainRecord struct {
	Number             string      `json:"number"`
	TrainID            string      `json:"train_id"`
	Origin             string      `json:"origin"`
	Destination        string      `json:"destination"`
	ScheduledDeparture string      `json:"scheduled_departure"`
	ScheduledArrival   string      `json:"scheduled_arrival"`
	ActualDeparture    string      `json:"actual_departure"`
	DepartureStatus    TrainStatus `json:"departure_status"`
	ActualArrival      string      `json:"actual_arrival"`
	ArrivalStatus      TrainStatus `json:"arrival_status"`
	Notes              string      `json:"notes"`
}

// NewEmptyTrain 创建空白记录（状态默认 awaiting）
func NewEmptyTrain() TrainRecord {
	return TrainRecord{
		DepartureStatus: StatusAwaiting,
		ArrivalStatus:   StatusAwaiting,
	}
}

// IsEmpty 所有文本字段均为空白时视为空行
// 状态字段总有默认值，不参与判断
func (t *TrainRecord) IsEmpty() bool {
	for _, f := range []string{
		t.Number, t.TrainID, t.Origin, t.Destination,
		t.ScheduledDeparture, t.ScheduledArrival,
		t.ActualDeparture, t.ActualArrival, t.Notes,
	} {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// CountedStatus 统计口径：已到达取到达状态，否则取出发状态
func (t *TrainRecord) CountedStatus() TrainStatus {
	if strings.TrimSpace(t.ActualArrival) != "" {
		return t.ArrivalStatus.OrDefault()
	}
	return t.DepartureStatus.OrDefault()
}
