package natsconn

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Connect устанавливает соединение с NATS и возвращает JetStream-контекст.
// Переподключения бесконечные, чтобы кратковременный сбой брокера не
// останавливал диспетчеризацию.
func Connect(url string) (*nats.Conn, nats.JetStreamContext, error) {
	nc, err := nats.Connect(
		url,
		nats.Name("robosoc-dispatch"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return nc, js, nil
}

// EnsureStream создает stream для диспетчеризации, если его еще нет
func EnsureStream(js nats.JetStreamContext, name, subjectBase string) error {
	_, err := js.StreamInfo(name)
	if err == nil {
		return nil
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     name,
		Subjects: []string{subjectBase + ".>"},
	})
	if err != nil {
		return fmt.Errorf("failed to create dispatch stream: %w", err)
	}
	return nil
}
