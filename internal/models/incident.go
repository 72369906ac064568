package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity - уровень серьезности инцидента
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Valid проверяет, что значение входит в допустимый набор
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Статусы инцидента
const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// Incident представляет зарегистрированное событие безопасности
type Incident struct {
	ID        uuid.UUID     `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Type      string        `json:"type"`
	Source    string        `json:"source"`
	Details   string        `json:"details"`
	Severity  Severity      `json:"severity"`
	HandledBy *string       `json:"handled_by,omitempty"`
	Latitude  *float64      `json:"latitude,omitempty"`
	Longitude *float64      `json:"longitude,omitempty"`
	Status    string        `json:"status"`
	Triage    *TriageResult `json:"triage,omitempty"`
}

// TriageResult - рекомендация triage-движка по инциденту.
// Неизменяем после создания, привязан ровно к одному инциденту.
type TriageResult struct {
	SuggestedSeverity Severity  `json:"suggested_severity"`
	Action            string    `json:"action"`
	Rationale         string    `json:"rationale"`
	Confidence        float64   `json:"confidence"`
	AnalyzedAt        time.Time `json:"analyzed_at"`
}
