// Package rest wires the optional status HTTP surface: a single JSON
// status endpoint, the Prometheus metrics handler, and swagger docs.
package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edu-ciaa/enigma-sim/internal/rest/docs" // nolint: revive
	"github.com/edu-ciaa/enigma-sim/internal/rest/api"
)

// NewRouter mounts the status API, the Prometheus handler bound to
// registry, and the swagger UI.
func NewRouter(a *api.API, registry *prometheus.Registry) *gin.Engine {
	router := gin.Default()
	router.GET("/status", a.Status)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}
