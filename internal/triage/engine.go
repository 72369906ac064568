package triage

import (
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/robosoc/internal/models"
)

// Classifier определяет контракт классификации текста инцидента
type Classifier interface {
	Classify(details string) models.TriageResult
}

// RuleEngine - детерминированный правиловый классификатор инцидентов.
// Правила применяются по порядку, срабатывает первое совпадение.
// Если ни одно правило не совпало и настроен delegate (например, внешняя
// ML-модель), классификация делегируется ему.
// Движок не хранит состояния и безопасен для конкурентных вызовов.
type RuleEngine struct {
	delegate Classifier
	now      func() time.Time
}

// Option настраивает RuleEngine при создании
type Option func(*RuleEngine)

// WithDelegate задает вторичный классификатор для текстов без ключевых слов
func WithDelegate(c Classifier) Option {
	return func(e *RuleEngine) { e.delegate = c }
}

// withClock подменяет источник времени (для тестов)
func withClock(now func() time.Time) Option {
	return func(e *RuleEngine) { e.now = now }
}

// NewRuleEngine создает правиловый классификатор
func NewRuleEngine(opts ...Option) *RuleEngine {
	e := &RuleEngine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify возвращает рекомендацию по тексту описания инцидента.
// Никогда не возвращает ошибку и не паникует ни на каком входе.
func (e *RuleEngine) Classify(details string) models.TriageResult {
	text := strings.ToLower(details)
	now := e.now().UTC()

	switch {
	case containsAny(text, "fire", "smoke"):
		return models.TriageResult{
			SuggestedSeverity: models.SeverityCritical,
			Action:            "Dispatch Fire Team",
			Rationale:         "Fire/smoke keyword detected",
			Confidence:        0.95,
			AnalyzedAt:        now,
		}
	case containsAny(text, "unauthorized", "intrusion", "trespass"):
		return models.TriageResult{
			SuggestedSeverity: models.SeverityHigh,
			Action:            "Dispatch Guard",
			Rationale:         "Intrusion-related keyword detected",
			Confidence:        0.90,
			AnalyzedAt:        now,
		}
	case containsAny(text, "medical", "injury"):
		return models.TriageResult{
			SuggestedSeverity: models.SeverityHigh,
			Action:            "Dispatch Medical Team",
			Rationale:         "Medical emergency keyword detected",
			Confidence:        0.90,
			AnalyzedAt:        now,
		}
	}

	if e.delegate != nil {
		res := e.delegate.Classify(details)
		res.Rationale = fmt.Sprintf("External model classification: %s", res.Rationale)
		res.AnalyzedAt = now
		return res
	}

	return models.TriageResult{
		SuggestedSeverity: models.SeverityLow,
		Action:            "Monitor",
		Rationale:         "No high-risk keywords detected",
		Confidence:        0.60,
		AnalyzedAt:        now,
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
