package service

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/campagnoli/controle-ferroviario/internal/model"
)

// 内嵌 Go 字体，避免依赖宿主机字体
var (
	fontOnce    sync.Once
	fontRegular *truetype.Font
	fontBold    *truetype.Font
	fontErr     error
)

func loadFonts() error {
	fontOnce.Do(func() {
		if fontRegular, fontErr = truetype.Parse(goregular.TTF); fontErr != nil {
			return
		}
		fontBold, fontErr = truetype.Parse(gobold.TTF)
	})
	return fontErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

func (s *reportService) buildImage(data *reportData) (*bytes.Buffer, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}

	w, h := float64(s.cfg.ImageWidth), float64(s.cfg.ImageHeight)
	scale := w / 1200

	dc := gg.NewContext(s.cfg.ImageWidth, s.cfg.ImageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// 标题
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(face(fontBold, 22*scale))
	title := fmt.Sprintf("Circulation report - %s - %s", data.shift.Date, data.shift.Shift)
	dc.DrawStringAnchored(title, w/2, 36*scale, 0.5, 0.5)

	labels := make([]string, len(model.AllStatuses))
	values := make([]int, len(model.AllStatuses))
	for i, st := range model.AllStatuses {
		labels[i] = statusLabel(st)
		values[i] = data.stats[st]
	}

	top, bottom := 90*scale, h-130*scale
	drawBarChart(dc, scale, 70*scale, top, w/2-40*scale, bottom, labels, values)
	drawPieChart(dc, scale, w/2+20*scale, top, w-30*scale, bottom, labels, values)

	// 摘要
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(face(fontRegular, 14*scale))
	summary := []string{
		"Agent: " + orNA(data.shift.Agent),
		"Date: " + orNA(data.shift.Date),
		"Shift: " + orNA(string(data.shift.Shift)),
		fmt.Sprintf("Total trains: %d", data.stats.Total()),
	}
	lineH := 20 * scale
	for i, line := range summary {
		y := h - 20*scale - float64(len(summary)-1-i)*lineH
		dc.DrawStringAnchored(line, 20*scale, y, 0, 0)
	}

	buf := new(bytes.Buffer)
	if err := dc.EncodePNG(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// drawBarChart 在 (x0,y0)-(x1,y1) 区域绘制状态柱状图
func drawBarChart(dc *gg.Context, scale, x0, y0, x1, y1 float64, labels []string, values []int) {
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(face(fontBold, 16*scale))
	dc.DrawStringAnchored("Train status", (x0+x1)/2, y0, 0.5, 0.5)

	plotTop := y0 + 24*scale
	plotBottom := y1 - 24*scale

	maxV := 0
	for _, v := range values {
		if v > maxV {
			maxV = v
		}
	}
	if maxV == 0 {
		maxV = 1
	}

	// 坐标轴
	dc.SetLineWidth(1.5 * scale)
	dc.DrawLine(x0, plotTop, x0, plotBottom)
	dc.DrawLine(x0, plotBottom, x1, plotBottom)
	dc.Stroke()

	dc.SetFontFace(face(fontRegular, 12*scale))
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), x0-40*scale, (plotTop+plotBottom)/2)
	dc.DrawStringAnchored("Count", x0-40*scale, (plotTop+plotBottom)/2, 0.5, 0.5)
	dc.Pop()

	// 纵轴刻度
	ticks := 4
	if maxV < ticks {
		ticks = maxV
	}
	for i := 0; i <= ticks; i++ {
		v := float64(maxV) * float64(i) / float64(ticks)
		y := plotBottom - (plotBottom-plotTop)*float64(i)/float64(ticks)
		dc.DrawLine(x0-4*scale, y, x0, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), x0-8*scale, y, 1, 0.5)
	}

	slot := (x1 - x0) / float64(len(values))
	barW := slot * 0.6
	for i, v := range values {
		bx := x0 + slot*float64(i) + (slot-barW)/2
		bh := (plotBottom - plotTop - 16*scale) * float64(v) / float64(maxV)

		c := statusColor(model.AllStatuses[i])
		dc.SetRGB(c.float())
		dc.DrawRectangle(bx, plotBottom-bh, barW, bh)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		if v > 0 {
			dc.SetFontFace(face(fontBold, 12*scale))
			dc.DrawStringAnchored(fmt.Sprintf("%d", v), bx+barW/2, plotBottom-bh-4*scale, 0.5, 0)
		}
		dc.SetFontFace(face(fontRegular, 12*scale))
		dc.DrawStringAnchored(labels[i], bx+barW/2, plotBottom+6*scale, 0.5, 1)
	}
}

// drawPieChart 在 (x0,y0)-(x1,y1) 区域绘制非零状态占比饼图
func drawPieChart(dc *gg.Context, scale, x0, y0, x1, y1 float64, labels []string, values []int) {
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(face(fontBold, 16*scale))
	dc.DrawStringAnchored("Status distribution", (x0+x1)/2, y0, 0.5, 0.5)

	total := 0
	for _, v := range values {
		total += v
	}

	cx, cy := (x0+x1)/2, (y0+24*scale+y1)/2
	r := math.Min(x1-x0, y1-y0-24*scale)/2 - 30*scale

	if total == 0 {
		dc.SetFontFace(face(fontRegular, 14*scale))
		dc.DrawStringAnchored("No data", cx, cy, 0.5, 0.5)
		return
	}

	// 自顶部顺时针
	angle := -math.Pi / 2
	for i, v := range values {
		if v == 0 {
			continue
		}
		sweep := 2 * math.Pi * float64(v) / float64(total)
		c := statusColor(model.AllStatuses[i])

		dc.SetRGB(c.float())
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, r, angle, angle+sweep)
		dc.ClosePath()
		dc.Fill()

		mid := angle + sweep/2
		pct := fmt.Sprintf("%.1f%%", 100*float64(v)/float64(total))
		tc := statusTextColor(model.AllStatuses[i])
		dc.SetRGB(tc.float())
		dc.SetFontFace(face(fontBold, 12*scale))
		dc.DrawStringAnchored(pct, cx+math.Cos(mid)*r*0.6, cy+math.Sin(mid)*r*0.6, 0.5, 0.5)

		dc.SetRGB(0, 0, 0)
		dc.SetFontFace(face(fontRegular, 12*scale))
		lx, ly := cx+math.Cos(mid)*(r+16*scale), cy+math.Sin(mid)*(r+16*scale)
		ax := 0.0
		if math.Cos(mid) < 0 {
			ax = 1
		}
		dc.DrawStringAnchored(labels[i], lx, ly, ax, 0.5)

		angle += sweep
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
