package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// ErrDispatch сигнализирует о неудачной публикации запроса диспетчеризации.
// Ошибка не отменяет уже сохраненный инцидент - политика повторов остается
// на стороне вызывающего.
var ErrDispatch = errors.New("unit dispatch failed")

// Publisher - контракт публикации запросов диспетчеризации
type Publisher interface {
	Publish(ctx context.Context, payload Payload) error
}

// NATSPublisher публикует запросы диспетчеризации в NATS JetStream.
// Публикация с подтверждением дает семантику at-least-once.
type NATSPublisher struct {
	js          nats.JetStreamContext
	subjectBase string
}

// NewNATSPublisher создает издателя запросов диспетчеризации
func NewNATSPublisher(js nats.JetStreamContext, subjectBase string) *NATSPublisher {
	return &NATSPublisher{
		js:          js,
		subjectBase: subjectBase,
	}
}

// Publish отправляет сообщение в subject <base>.<unit_type> и ждет ack
func (p *NATSPublisher) Publish(ctx context.Context, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch payload: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", p.subjectBase, payload.UnitType)
	if _, err := p.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("%w: publish to %s: %v", ErrDispatch, subject, err)
	}
	return nil
}
