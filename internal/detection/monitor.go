package detection

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/robosoc/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrDetection сигнализирует о сбое детектора на одном кадре.
// Ошибка восстановимая: кадр считается пустым, конвейер продолжает работу.
var ErrDetection = errors.New("frame detection failed")

// Detector - контракт внешней модели детекции объектов (черный ящик)
type Detector interface {
	Detect(ctx context.Context, frame []byte) ([]RawDetection, error)
}

// Monitor прогоняет кадры через детектор и анализатор зон
type Monitor struct {
	detector Detector
	analyzer *Analyzer
	logger   *logrus.Logger
}

// NewMonitor создает монитор кадров
func NewMonitor(detector Detector, analyzer *Analyzer, logger *logrus.Logger) *Monitor {
	return &Monitor{
		detector: detector,
		analyzer: analyzer,
		logger:   logger,
	}
}

// ProcessFrame анализирует один кадр. Сбой детектора возвращается как
// ErrDetection с пустым списком детекций - вызывающая сторона трактует
// такой кадр как "инцидентов нет", а не как фатальную ошибку.
func (m *Monitor) ProcessFrame(ctx context.Context, frame []byte) ([]models.Detection, error) {
	raw, err := m.detector.Detect(ctx, frame)
	if err != nil {
		m.logger.WithError(err).Warn("Detector backend failed, skipping frame")
		return nil, fmt.Errorf("%w: %v", ErrDetection, err)
	}

	return m.analyzer.Analyze(raw), nil
}
