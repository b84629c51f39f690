package model

import "time"

// ShiftDateLayout 班次日期格式 DD/MM/YYYY
const ShiftDateLayout = "02/01/2006"

// HolidayFlag 是否节假日
type HolidayFlag string

const (
	HolidayYes HolidayFlag = "yes"
	HolidayNo  HolidayFlag = "no"
)

// ShiftPeriod 班次类型，除白班/夜班外允许自定义
type ShiftPeriod string

const (
	ShiftDay   ShiftPeriod = "day"
	ShiftNight ShiftPeriod = "night"
)

// ShiftInfo 当班信息
type ShiftInfo struct {
	Agent     string      `json:"agent"`
	Date      string      `json:"date"`
	IsHoliday HolidayFlag `json:"is_holiday"`
	Shift     ShiftPeriod `json:"shift"`
}

// NewDefaultShiftInfo 以当天日期创建默认当班信息
func NewDefaultShiftInfo(now time.Time) ShiftInfo {
	return ShiftInfo{
		Date:      now.Format(ShiftDateLayout),
		IsHoliday: HolidayNo,
		Shift:     ShiftDay,
	}
}
