package dto

// ── 当班信息 DTO ──

// ShiftInfoRequest 替换当班信息请求（整体覆盖）
type ShiftInfoRequest struct {
	Agent     string `json:"agent"      binding:"max=100"`
	Date      string `json:"date"       binding:"omitempty,datetime=02/01/2006"` // DD/MM/YYYY
	IsHoliday string `json:"is_holiday" binding:"omitempty,oneof=yes no"`
	Shift     string `json:"shift"      binding:"max=30"` // day | night | 自定义
}

// ShiftInfoResponse 当班信息响应
type ShiftInfoResponse struct {
	Agent     string `json:"agent"`
	Date      string `json:"date"`
	IsHoliday string `json:"is_holiday"`
	Shift     string `json:"shift"`
}
