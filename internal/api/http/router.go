package http

import (
	"time"

	"checkers/internal/api/ws"
	"checkers/internal/table"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func SetupRouter(t *table.Table, hub *ws.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	// WebSocket for live board updates
	r.GET("/ws", hub.HandleWS)

	r.GET("/state", StateHandler(t))
	r.GET("/legal-moves", LegalMovesHandler(t))
	r.GET("/games", GamesHandler(t))

	r.POST("/select", SelectHandler(t))
	r.POST("/click", ClickHandler(t))
	r.POST("/move", MoveHandler(t))
	r.POST("/clear-selection", ClearSelectionHandler(t))
	r.POST("/reset", ResetHandler(t))

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
