package model

// Registry 单个会话内的台账快照
// ShiftInfo 为 nil 表示尚未初始化；Trains 为 nil 表示尚未初始化，
// 空切片表示已被显式替换为空列表
type Registry struct {
	ShiftInfo *ShiftInfo    `json:"shift_info,omitempty"`
	Trains    []TrainRecord `json:"trains"`
}

// Clone 深拷贝，保留 Trains 的 nil/空切片区别
func (r *Registry) Clone() *Registry {
	if r == nil {
		return nil
	}
	out := &Registry{}
	if r.ShiftInfo != nil {
		info := *r.ShiftInfo
		out.ShiftInfo = &info
	}
	if r.Trains != nil {
		out.Trains = make([]TrainRecord, len(r.Trains))
		copy(out.Trains, r.Trains)
	}
	return out
}

// NonEmptyTrains 返回非空记录及其原始下标
func (r *Registry) NonEmptyTrains() []IndexedTrain {
	var out []IndexedTrain
	for i := range r.Trains {
		if !r.Trains[i].IsEmpty() {
			out = append(out, IndexedTrain{Index: i, Train: r.Trains[i]})
		}
	}
	return out
}

// IndexedTrain 带下标的记录，渲染时用于序号列
type IndexedTrain struct {
	Index int
	Train TrainRecord
}
