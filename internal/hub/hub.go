package hub

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

const broadcastBufferSize = 64

// Hub владеет множеством подключенных наблюдателей и рассылает им события
// инцидентов. Вся работа с множеством клиентов идет через единственный
// run-цикл, поэтому add/remove/iterate не требуют внешних блокировок,
// а все наблюдатели получают события в одном и том же порядке (FIFO).
type Hub struct {
	logger *logrus.Logger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	// Закрывается при выходе из Run, чтобы Register/Unregister/Broadcast
	// не висели на каналах остановленного цикла
	done chan struct{}
}

// NewHub создает hub рассылки инцидентов
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBufferSize),
		done:       make(chan struct{}),
	}
}

// Run запускает цикл обработки. Блокирует до отмены контекста.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("Broadcast hub started")
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			close(h.done)
			h.logger.Info("Broadcast hub stopped")
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.WithField("clients", len(h.clients)).Debug("Observer connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				close(client.send)
				delete(h.clients, client)
				h.logger.WithField("clients", len(h.clients)).Debug("Observer disconnected")
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Медленный наблюдатель не должен задерживать остальных:
					// переполненный буфер означает потерю соединения
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("Dropping slow observer")
				}
			}
		}
	}
}

// Register добавляет наблюдателя в активное множество. После остановки
// hub'а канал наблюдателя сразу закрывается и соединение сворачивается.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister убирает наблюдателя из активного множества
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast рассылает событие всем подключенным наблюдателям.
// Доставка best-effort: наблюдатель, отключившийся до доставки, событие
// не получит. Ошибка сериализации логируется и событие отбрасывается.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal broadcast event")
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}
