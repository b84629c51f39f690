package model

// Statistics 各状态计数，始终包含全部五个状态键
type Statistics map[TrainStatus]int

// NewStatistics 创建全零统计
func NewStatistics() Statistics {
	s := make(Statistics, len(AllStatuses))
	for _, st := range AllStatuses {
		s[st] = 0
	}
	return s
}

// Add 计入一个状态，枚举外的值计入 extra
func (s Statistics) Add(st TrainStatus) {
	if !st.Valid() {
		st = StatusExtra
	}
	s[st]++
}

// Total 总数
func (s Statistics) Total() int {
	n := 0
	for _, st := range AllStatuses {
		n += s[st]
	}
	return n
}
