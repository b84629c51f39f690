package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campagnoli/controle-ferroviario/pkg/response"
)

// MustGetSessionID 从 Gin 上下文中提取 session_id。
// 会话中间件未注入时视为服务端装配错误，写入 500 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetSessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get("session_id")
	if !exists {
		response.InternalError(c)
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.InternalError(c)
		return "", false
	}
	return s, true
}
