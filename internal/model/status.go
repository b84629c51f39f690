package model

import (
	"encoding/json"
	"strings"
)

// TrainStatus 列车准点状态（封闭枚举）
type TrainStatus string

const (
	StatusAwaiting TrainStatus = "awaiting" // 待发/待到
	StatusOnTime   TrainStatus = "on_time"
	StatusLate     TrainStatus = "late"
	StatusRunning  TrainStatus = "running" // 已发车但无计划时刻可比
	StatusExtra    TrainStatus = "extra"   // 加开或无法识别
)

// AllStatuses 统计与图表使用的固定顺序
var AllStatuses = []TrainStatus{StatusLate, StatusOnTime, StatusAwaiting, StatusRunning, StatusExtra}

// ParseTrainStatus 宽松解析状态字符串
// 忽略大小写与分隔符（on_time / onTime / on-time 等价）；空串视为 awaiting；
// 第二个返回值表示输入是否为已知状态，未知状态归入 extra
func ParseTrainStatus(s string) (TrainStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)

	switch key {
	case "":
		return StatusAwaiting, true
	case "awaiting":
		return StatusAwaiting, true
	case "ontime":
		return StatusOnTime, true
	case "late":
		return StatusLate, true
	case "running":
		return StatusRunning, true
	case "extra":
		return StatusExtra, true
	default:
		return StatusExtra, false
	}
}

// Valid 是否为枚举内的值
func (s TrainStatus) Valid() bool {
	switch s {
	case StatusAwaiting, StatusOnTime, StatusLate, StatusRunning, StatusExtra:
		return true
	}
	return false
}

// OrDefault 零值按 awaiting 处理
func (s TrainStatus) OrDefault() TrainStatus {
	if s == "" {
		return StatusAwaiting
	}
	return s
}

// UnmarshalJSON 解码时即归一化，保证内存中只出现枚举值
func (s *TrainStatus) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = StatusAwaiting
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s, _ = ParseTrainStatus(raw)
	return nil
}
