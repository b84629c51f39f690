package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campagnoli/controle-ferroviario/internal/dto"
	"github.com/campagnoli/controle-ferroviario/internal/service"
	"github.com/campagnoli/controle-ferroviario/pkg/response"
)

// TrainHandler 列车台账 HTTP 处理器
type TrainHandler struct {
	registrySvc service.RegistryService
}

// NewTrainHandler 创建 TrainHandler
func NewTrainHandler(registrySvc service.RegistryService) *TrainHandler {
	return &TrainHandler{registrySvc: registrySvc}
}

// ListTrains 获取列车列表，首次读取时预置空行
// GET /api/v1/trains
func (h *TrainHandler) ListTrains(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	trains, err := h.registrySvc.ListTrains(c.Request.Context(), sessionID)
	if err != nil {
		h.handleTrainError(c, err)
		return
	}

	response.OK(c, trains)
}

// ReplaceTrains 整体替换列车列表
// POST /api/v1/trains
func (h *TrainHandler) ReplaceTrains(c *gin.Context) {
	var reqs []dto.TrainRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	trains, err := h.registrySvc.ReplaceTrains(c.Request.Context(), sessionID, reqs)
	if err != nil {
		h.handleTrainError(c, err)
		return
	}

	response.OK(c, trains)
}

// UpsertTrain 写入指定下标的列车记录，下标越界时以空行补齐
// PUT /api/v1/trains/:index
func (h *TrainHandler) UpsertTrain(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var req dto.TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	train, err := h.registrySvc.UpsertTrain(c.Request.Context(), sessionID, index, &req)
	if err != nil {
		h.handleTrainError(c, err)
		return
	}

	response.OK(c, train)
}

// AddTrain 追加一条空记录
// POST /api/v1/trains/add
func (h *TrainHandler) AddTrain(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	res, err := h.registrySvc.AddTrain(c.Request.Context(), sessionID)
	if err != nil {
		h.handleTrainError(c, err)
		return
	}

	response.OK(c, res)
}

// DeleteTrain 删除指定下标的记录
// DELETE /api/v1/trains/:index
func (h *TrainHandler) DeleteTrain(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	if err := h.registrySvc.DeleteTrain(c.Request.Context(), sessionID, index); err != nil {
		h.handleTrainError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetStatistics 获取状态统计
// GET /api/v1/statistics
func (h *TrainHandler) GetStatistics(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	stats, err := h.registrySvc.Statistics(c.Request.Context(), sessionID)
	if err != nil {
		h.handleTrainError(c, err)
		return
	}

	response.OK(c, stats)
}

// CalculateStatus 按计划/实际时刻计算出发与到达状态，不写入会话
// POST /api/v1/calculate-status
func (h *TrainHandler) CalculateStatus(c *gin.Context) {
	var req dto.TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	response.OK(c, h.registrySvc.CalculateStatus(&req))
}

// ClearData 清空当前会话的全部台账
// POST /api/v1/clear-data
func (h *TrainHandler) ClearData(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	if err := h.registrySvc.Clear(c.Request.Context(), sessionID); err != nil {
		h.handleTrainError(c, err)
		return
	}

	response.OK(c, nil)
}

// parseIndex 解析路径中的记录下标
func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.BadRequest(c, 10001, "下标必须为非负整数")
		return 0, false
	}
	return index, true
}

// handleTrainError 统一处理台账模块业务错误
func (h *TrainHandler) handleTrainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTrainNotFound):
		response.NotFound(c, 20001, "列车记录不存在")
	case errors.Is(err, service.ErrInvalidIndex):
		response.BadRequest(c, 10001, "下标必须为非负整数")
	default:
		response.InternalError(c)
	}
}
