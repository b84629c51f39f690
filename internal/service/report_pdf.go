package service

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 30.0 // pt
	pdfRowHeight = 16.0
	pdfInch      = 72.0
)

// 列宽（英寸），渲染时按可用宽度等比放大
var (
	pdfBannerWidths = []float64{0.8, 1.5, 0.6, 1, 0.8, 0.8, 0.8, 1}
	pdfTableWidths  = []float64{0.4, 0.8, 0.6, 0.7, 0.6, 0.7, 0.8, 1, 0.8, 1, 1.5}
)

func (s *reportService) buildPDF(data *reportData) (*bytes.Buffer, error) {
	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle("Circulation status", true)
	pdf.SetCreator("controle-ferroviario", true)
	pdf.SetCreationDate(data.at)
	pdf.SetDrawColor(colorBlack.R, colorBlack.G, colorBlack.B)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()
	usable := pageW - 2*pdfMargin

	pdf.AddPage()

	// 标题
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 24, "Circulation status - 12 hours", "", 1, "C", false, 0, "")
	pdf.Ln(18)

	// 当班信息
	banner := []string{
		"AGENT:", data.shift.Agent,
		"DATE:", data.shift.Date,
		"HOLIDAY:", string(data.shift.IsHoliday),
		"SHIFT:", string(data.shift.Shift),
	}
	bannerWidths := inchesToPoints(pdfBannerWidths, 0)
	left := pdfMargin + (usable-sum(bannerWidths))/2
	pdf.SetX(left)
	for i, text := range banner {
		if i%2 == 0 {
			pdf.SetFont("Helvetica", "B", 10)
			fill(pdf, colorHeader)
		} else {
			pdf.SetFont("Helvetica", "", 10)
			fill(pdf, colorBody)
		}
		pdf.CellFormat(bannerWidths[i], 22, fitText(pdf, tr(text), bannerWidths[i]), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(22 + 20)

	if len(data.trains) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 16, "No trains recorded for this shift.", "", 1, "C", false, 0, "")
		return writePDF(pdf)
	}

	widths := inchesToPoints(pdfTableWidths, usable)
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		fill(pdf, colorHeader)
		pdf.SetTextColor(colorBlack.R, colorBlack.G, colorBlack.B)
		for i, h := range trainTableHeaders {
			pdf.CellFormat(widths[i], pdfRowHeight+6, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	drawHeader()
	pdf.SetFont("Helvetica", "", 8)
	for _, it := range data.trains {
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			drawHeader()
			pdf.SetFont("Helvetica", "", 8)
		}

		row := trainTableRow(it)
		for i, text := range row {
			cellColor, textColor := colorBody, colorBlack
			switch i {
			case colDepartureStatus:
				st := it.Train.DepartureStatus.OrDefault()
				cellColor, textColor = statusColor(st), statusTextColor(st)
			case colArrivalStatus:
				st := it.Train.ArrivalStatus.OrDefault()
				cellColor, textColor = statusColor(st), statusTextColor(st)
			}
			fill(pdf, cellColor)
			pdf.SetTextColor(textColor.R, textColor.G, textColor.B)
			pdf.CellFormat(widths[i], pdfRowHeight, fitText(pdf, tr(text), widths[i]), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	return writePDF(pdf)
}

func writePDF(pdf *fpdf.Fpdf) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func fill(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetFillColor(c.R, c.G, c.B)
}

// inchesToPoints 转换列宽；target > 0 时等比缩放到目标总宽
func inchesToPoints(inches []float64, target float64) []float64 {
	out := make([]float64, len(inches))
	for i, w := range inches {
		out[i] = w * pdfInch
	}
	if target > 0 {
		scale := target / sum(out)
		for i := range out {
			out[i] *= scale
		}
	}
	return out
}

func sum(xs []float64) float64 {
	var t float64
	for _, x := range xs {
		t += x
	}
	return t
}

// fitText 超出单元格宽度时截断并追加省略号
// text 已转为单字节编码，按字节截断
func fitText(pdf *fpdf.Fpdf, text string, width float64) string {
	const padding = 4
	if pdf.GetStringWidth(text) <= width-padding {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width-padding {
		text = text[:len(text)-1]
	}
	return text + "..."
}
