package handler

import "github.com/campagnoli/controle-ferroviario/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Shift  *ShiftHandler
	Train  *TrainHandler
	Report *ReportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Shift:  NewShiftHandler(svc.Registry),
		Train:  NewTrainHandler(svc.Registry),
		Report: NewReportHandler(svc.Report),
	}
}
