package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chatdice/contract"
	"chatdice/observability"
)

// NewRouter mounts the websocket endpoint, the stats API and the
// metrics scrape target.
func NewRouter(handler *SessionHandler, core contract.ISessionCore) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), observability.HTTPMetricsMiddleware())

	router.GET("/ws", handler.Handle)
	router.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, core.Stats())
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}
