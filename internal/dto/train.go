package dto

import "github.com/campagnoli/controle-ferroviario/internal/model"

// ── 列车台账 DTO ──

// TrainRequest 单条列车记录请求
// 时刻字段不做格式校验，无法解析时状态计算降级为 awaiting；
// 状态字段解码时归一化，未知值归入 extra
type TrainRequest struct {
	Number             string            `json:"number"              binding:"max=20"`
	TrainID            string            `json:"train_id"            binding:"max=50"`
	Origin             string            `json:"origin"              binding:"max=100"`
	Destination        string            `json:"destination"         binding:"max=100"`
	ScheduledDeparture string            `json:"scheduled_departure" binding:"max=10"`
	ScheduledArrival   string            `json:"scheduled_arrival"   binding:"max=10"`
	ActualDeparture    string            `json:"actual_departure"    binding:"max=10"`
	DepartureStatus    model.TrainStatus `json:"departure_status"`
	ActualArrival      string            `json:"actual_arrival"      binding:"max=10"`
	ArrivalStatus      model.TrainStatus `json:"arrival_status"`
	Notes              string            `json:"notes"               binding:"max=500"`
}

// TrainResponse 列车记录响应，列表中的位置即记录下标
type TrainResponse struct {
	Number             string            `json:"number"`
	TrainID            string            `json:"train_id"`
	Origin             string            `json:"origin"`
	Destination        string            `json:"destination"`
	ScheduledDeparture string            `json:"scheduled_departure"`
	ScheduledArrival   string            `json:"scheduled_arrival"`
	ActualDeparture    string            `json:"actual_departure"`
	DepartureStatus    model.TrainStatus `json:"departure_status"`
	ActualArrival      string            `json:"actual_arrival"`
	ArrivalStatus      model.TrainStatus `json:"arrival_status"`
	Notes              string            `json:"notes"`
}

// AddTrainResponse 追加空行响应
type AddTrainResponse struct {
	Index int `json:"index"`
}

// ── 统计 ──

// StatisticsResponse 状态统计响应
type StatisticsResponse struct {
	Late     int `json:"late"`
	OnTime   int `json:"on_time"`
	Awaiting int `json:"awaiting"`
	Running  int `json:"running"`
	Extra    int `json:"extra"`
	Total    int `json:"total"`
}
