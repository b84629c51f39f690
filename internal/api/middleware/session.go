package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/config"
	"github.com/campagnoli/controle-ferroviario/pkg/jwt"
	"github.com/campagnoli/controle-ferroviario/pkg/response"
)

const sessionIDKey = "session_id"

// Session 会话中间件
// 从 Cookie 中读取签名 Token 解析出会话 ID；缺失、过期或签名无效时签发新会话并写回 Cookie
// 会话 ID 注入到 gin.Context 中，供 Handler 作为台账的存储键
func Session(jwtMgr *jwt.Manager, cookie config.CookieConfig, logger *zap.Logger) gin.HandlerFunc {
	sameSite := parseSameSite(cookie.SameSite)
	maxAge := int(jwtMgr.TTL().Seconds())

	return func(c *gin.Context) {
		if token, err := c.Cookie(cookie.Name); err == nil && token != "" {
			if claims, err := jwtMgr.ParseToken(token); err == nil {
				c.Set(sessionIDKey, claims.SessionID)
				c.Next()
				return
			}
		}

		sessionID, token, err := jwtMgr.NewSession()
		if err != nil {
			logger.Error("签发会话失败", zap.Error(err))
			response.InternalError(c)
			c.Abort()
			return
		}

		c.SetSameSite(sameSite)
		c.SetCookie(cookie.Name, token, maxAge, "/", cookie.Domain, cookie.Secure, true)
		c.Set(sessionIDKey, sessionID)

		c.Next()
	}
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}
