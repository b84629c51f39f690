package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/campagnoli/controle-ferroviario/internal/model"
)

// rgb 报表通用颜色
type rgb struct{ R, G, B int }

func (c rgb) hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c rgb) float() (float64, float64, float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

var (
	colorHeader = rgb{211, 211, 211} // lightgrey
	colorBody   = rgb{245, 245, 220} // beige
	colorBlack  = rgb{0, 0, 0}
	colorWhite  = rgb{255, 255, 255}
)

// statusColor 状态单元格/图表颜色，PDF、图片、表格共用
func statusColor(st model.TrainStatus) rgb {
	switch st {
	case model.StatusOnTime:
		return rgb{0, 128, 0}
	case model.StatusLate:
		return rgb{255, 0, 0}
	case model.StatusAwaiting:
		return rgb{255, 255, 0}
	case model.StatusRunning:
		return rgb{0, 0, 255}
	default:
		return rgb{128, 128, 128}
	}
}

// statusTextColor 深色底使用白字
func statusTextColor(st model.TrainStatus) rgb {
	switch st {
	case model.StatusAwaiting:
		return colorBlack
	default:
		return colorWhite
	}
}

// statusLabel 状态显示文本
func statusLabel(st model.TrainStatus) string {
	switch st {
	case model.StatusOnTime:
		return "On time"
	case model.StatusLate:
		return "Late"
	case model.StatusAwaiting:
		return "Awaiting"
	case model.StatusRunning:
		return "Running"
	case model.StatusExtra:
		return "Extra"
	default:
		return "N/A"
	}
}

// trainTableHeaders 列车明细表头（PDF 与 Excel 一致）
var trainTableHeaders = []string{
	"No.", "TRAIN", "ORIG", "DEP", "DEST", "ARR",
	"ACT DEP", "DEP STATUS", "ACT ARR", "ARR STATUS", "NOTES",
}

const (
	colDepartureStatus = 7
	colArrivalStatus   = 9
)

// trainTableRow 按表头顺序展开一行
// 序号列优先使用记录自带编号，缺省时取 1 起始的原始位置
func trainTableRow(it model.IndexedTrain) []string {
	t := it.Train
	no := strings.TrimSpace(t.Number)
	if no == "" {
		no = strconv.Itoa(it.Index + 1)
	}
	return []string{
		no,
		t.TrainID,
		t.Origin,
		t.ScheduledDeparture,
		t.Destination,
		t.ScheduledArrival,
		t.ActualDeparture,
		statusLabel(t.DepartureStatus.OrDefault()),
		t.ActualArrival,
		statusLabel(t.ArrivalStatus.OrDefault()),
		t.Notes,
	}
}
