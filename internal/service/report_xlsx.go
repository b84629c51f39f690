package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/campagnoli/controle-ferroviario/internal/model"
)

const (
	sheetTrains = "Circulation"
	sheetStats  = "Statistics"
)

// xlsxColumnWidths 与 PDF 列顺序一致
var xlsxColumnWidths = []float64{6, 12, 12, 10, 12, 10, 10, 14, 10, 14, 40}

// buildXLSX 输出格式：
//   - Sheet "Circulation"：标题行、当班信息行、表头、非空列车明细（状态单元格着色）
//   - Sheet "Statistics"：五种状态计数与合计
func (s *reportService) buildXLSX(data *reportData) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetTrains)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for i, wdt := range xlsxColumnWidths {
		col := colName(i)
		f.SetColWidth(sheetTrains, col, col, wdt)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorHeader.hex()}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, err
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorBody.hex()}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, err
	}
	statusStyles := make(map[model.TrainStatus]int, len(model.AllStatuses))
	for _, st := range model.AllStatuses {
		tc := statusTextColor(st)
		id, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: tc.hex()},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{statusColor(st).hex()}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorder(),
		})
		if err != nil {
			return nil, err
		}
		statusStyles[st] = id
	}

	lastCol := colName(len(trainTableHeaders) - 1)

	// 标题行
	f.SetCellValue(sheetTrains, "A1", "Circulation status - 12 hours")
	f.MergeCell(sheetTrains, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetTrains, "A1", cell(lastCol, 1), headerStyle)

	// 当班信息行
	banner := []string{
		"AGENT:", data.shift.Agent,
		"DATE:", data.shift.Date,
		"HOLIDAY:", string(data.shift.IsHoliday),
		"SHIFT:", string(data.shift.Shift),
	}
	for i, text := range banner {
		ref := cell(colName(i), 2)
		f.SetCellValue(sheetTrains, ref, text)
		if i%2 == 0 {
			f.SetCellStyle(sheetTrains, ref, ref, headerStyle)
		} else {
			f.SetCellStyle(sheetTrains, ref, ref, bodyStyle)
		}
	}

	// 表头
	row := 4
	for i, h := range trainTableHeaders {
		f.SetCellValue(sheetTrains, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheetTrains, cell("A", row), cell(lastCol, row), headerStyle)

	// 数据行
	for _, it := range data.trains {
		row++
		for i, text := range trainTableRow(it) {
			f.SetCellValue(sheetTrains, cell(colName(i), row), text)
		}
		f.SetCellStyle(sheetTrains, cell("A", row), cell(lastCol, row), bodyStyle)

		dep := cell(colName(colDepartureStatus), row)
		f.SetCellStyle(sheetTrains, dep, dep, statusStyles[it.Train.DepartureStatus.OrDefault()])
		arr := cell(colName(colArrivalStatus), row)
		f.SetCellStyle(sheetTrains, arr, arr, statusStyles[it.Train.ArrivalStatus.OrDefault()])
	}

	// 统计表
	if _, err := f.NewSheet(sheetStats); err != nil {
		return nil, err
	}
	f.SetColWidth(sheetStats, "A", "A", 16)
	f.SetColWidth(sheetStats, "B", "B", 10)
	f.SetCellValue(sheetStats, "A1", "Status")
	f.SetCellValue(sheetStats, "B1", "Count")
	f.SetCellStyle(sheetStats, "A1", "B1", headerStyle)
	for i, st := range model.AllStatuses {
		r := i + 2
		f.SetCellValue(sheetStats, cell("A", r), statusLabel(st))
		f.SetCellStyle(sheetStats, cell("A", r), cell("A", r), statusStyles[st])
		f.SetCellValue(sheetStats, cell("B", r), data.stats[st])
	}
	totalRow := len(model.AllStatuses) + 2
	f.SetCellValue(sheetStats, cell("A", totalRow), "Total")
	f.SetCellValue(sheetStats, cell("B", totalRow), data.stats.Total())
	f.SetCellStyle(sheetStats, cell("A", totalRow), cell("B", totalRow), headerStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
