package router

import (
	"github.com/gin-gonic/gin"

	"hookgenie-api/internal/interfaces/http/handler"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, genieHandler *handler.GenieHandler, historyHandler *handler.HistoryHandler) {
	g := v1.Group("/genie")
	{
		g.POST("/generate", genieHandler.Generate)
		g.POST("/trim", genieHandler.Trim)
		g.POST("/export", genieHandler.Export)
		g.GET("/usage", genieHandler.Usage)
		g.GET("/styles", genieHandler.Styles)
	}

	hist := g.Group("/history")
	{
		hist.GET("", historyHandler.List)
		hist.DELETE("", historyHandler.Clear)
		hist.DELETE("/:id", historyHandler.Remove)
		hist.GET("/:id/reload", historyHandler.Reload)
	}
}
