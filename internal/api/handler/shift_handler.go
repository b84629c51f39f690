package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campagnoli/controle-ferroviario/internal/dto"
	"github.com/campagnoli/controle-ferroviario/internal/service"
	"github.com/campagnoli/controle-ferroviario/pkg/response"
)

// ShiftHandler 当班信息 HTTP 处理器
type ShiftHandler struct {
	registrySvc service.RegistryService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(registrySvc service.RegistryService) *ShiftHandler {
	return &ShiftHandler{registrySvc: registrySvc}
}

// GetShiftInfo 获取当班信息，首次读取时生成默认值
// GET /api/v1/shift-info
func (h *ShiftHandler) GetShiftInfo(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	info, err := h.registrySvc.GetShiftInfo(c.Request.Context(), sessionID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, info)
}

// UpdateShiftInfo 整体替换当班信息
// POST /api/v1/shift-info
func (h *ShiftHandler) UpdateShiftInfo(c *gin.Context) {
	var req dto.ShiftInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	info, err := h.registrySvc.ReplaceShiftInfo(c.Request.Context(), sessionID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, info)
}
