package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без API-ключа
	api.GET("/system/health", h.healthCheck)

	secured := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	// Маршруты инцидентов: прием, лента, журнал аудита
	incidents := secured.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id/audit", h.getAuditTrail)
		incidents.POST("/:id/audit", h.appendAudit)
	}

	// Маршрут анализа кадров видеонаблюдения
	secured.POST("/frames", h.analyzeFrame)

	// Маршруты передачи смены
	handovers := secured.Group("/handovers")
	{
		handovers.POST("", h.createHandover)
		handovers.GET("", h.listHandovers)
	}

	// Живая лента инцидентов по WebSocket (ключ передается query-параметром)
	secured.GET("/ws/incidents", h.wsIncidents)
}
