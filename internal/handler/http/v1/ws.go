package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shenikar/robosoc/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Доступ контролируется API-ключом, а не Origin
		return true
	},
}

// @Summary Subscribe to the live incident feed
// @Description Upgrade the connection to WebSocket and stream new incidents as JSON. Requires API key as query parameter.
// @Tags Incidents
// @Security ApiKeyAuth
// @Param api_key query string false "API key"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /ws/incidents [get]
func (h *Handler) wsIncidents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade WebSocket connection")
		return
	}

	client := hub.NewClient(h.hub, conn, h.logger)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
