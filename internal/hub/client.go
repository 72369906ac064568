package hub

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// Время на запись одного сообщения наблюдателю
	writeWait = 10 * time.Second

	// Время ожидания pong от наблюдателя
	pongWait = 60 * time.Second

	// Период отправки ping. Должен быть меньше pongWait
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения (наблюдатели шлют только пинги)
	maxMessageSize = 512

	// Размер буфера исходящих сообщений на одного наблюдателя
	sendBufferSize = 256
)

// Client - одно живое соединение наблюдателя. Принадлежит hub'у на все
// время жизни соединения и убирается из активного множества сразу при
// любой ошибке канала.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	logger *logrus.Logger
}

// NewClient создает клиента для принятого WebSocket-соединения
func NewClient(h *Hub, conn *websocket.Conn, logger *logrus.Logger) *Client {
	return &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger,
	}
}

// ReadPump читает входящие сообщения. Содержимое игнорируется - входящий
// трафик нужен только как подтверждение живости соединения.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WithError(err).Debug("Observer read error")
			}
			return
		}
	}
}

// WritePump пишет сообщения из канала send в соединение и шлет пинги
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
