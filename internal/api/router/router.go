package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/config"
	"github.com/campagnoli/controle-ferroviario/internal/api/handler"
	"github.com/campagnoli/controle-ferroviario/internal/api/middleware"
	"github.com/campagnoli/controle-ferroviario/pkg/jwt"
	"github.com/campagnoli/controle-ferroviario/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：此时报表接口不限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Session(jwtMgr, cfg.Session.Cookie, logger))
	v1.Use(middleware.Logger(logger))
	{
		// 当班信息
		v1.GET("/shift-info", h.Shift.GetShiftInfo)
		v1.POST("/shift-info", h.Shift.UpdateShiftInfo)

		// 列车台账
		trains := v1.Group("/trains")
		{
			trains.GET("", h.Train.ListTrains)
			trains.POST("", h.Train.ReplaceTrains)
			trains.POST("/add", h.Train.AddTrain)
			trains.PUT("/:index", h.Train.UpsertTrain)
			trains.DELETE("/:index", h.Train.DeleteTrain)
		}

		v1.GET("/statistics", h.Train.GetStatistics)
		v1.POST("/calculate-status", h.Train.CalculateStatus)
		v1.POST("/clear-data", h.Train.ClearData)

		// 报表生成（按 IP 限流）
		reports := v1.Group("")
		reports.Use(middleware.RateLimit(rdb, cfg.RateLimit.ReportRequests, cfg.RateLimit.ReportWindow, logger))
		{
			reports.POST("/generate-pdf", h.Report.GeneratePDF)
			reports.POST("/generate-image", h.Report.GenerateImage)
			reports.POST("/generate-xlsx", h.Report.GenerateXLSX)
		}
	}

	return r
}
