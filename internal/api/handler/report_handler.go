package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/campagnoli/controle-ferroviario/internal/service"
	apperrors "github.com/campagnoli/controle-ferroviario/pkg/errors"
	"github.com/campagnoli/controle-ferroviario/pkg/response"
)

// ReportHandler 报表下载 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

type renderFunc func(ctx context.Context, sessionID string) (*bytes.Buffer, string, error)

// GeneratePDF 生成当班 PDF 报表
// POST /api/v1/generate-pdf
func (h *ReportHandler) GeneratePDF(c *gin.Context) {
	h.download(c, h.reportSvc.RenderPDF, service.MimePDF)
}

// GenerateImage 生成统计图 PNG
// POST /api/v1/generate-image
func (h *ReportHandler) GenerateImage(c *gin.Context) {
	h.download(c, h.reportSvc.RenderImage, service.MimePNG)
}

// GenerateXLSX 生成 Excel 明细
// POST /api/v1/generate-xlsx
func (h *ReportHandler) GenerateXLSX(c *gin.Context) {
	h.download(c, h.reportSvc.RenderXLSX, service.MimeXLSX)
}

func (h *ReportHandler) download(c *gin.Context, render renderFunc, mime string) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	buf, filename, err := render(c.Request.Context(), sessionID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, mime, buf.Bytes())
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrRendering):
		response.ErrorWithDetails(c, http.StatusInternalServerError, 30001, "报表生成失败", err.Error())
	default:
		response.InternalError(c)
	}
}
