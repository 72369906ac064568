package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest DTO для регистрации инцидента
// @Description DTO для регистрации инцидента
type CreateIncidentRequest struct {
	Type      string   `json:"type" validate:"required,min=2,max=64"`
	Source    string   `json:"source" validate:"required,min=1,max=128"`
	Details   string   `json:"details" validate:"required"`
	Severity  string   `json:"severity,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	HandledBy *string  `json:"handled_by,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// TriageResponse DTO с рекомендацией triage-движка
// @Description DTO с рекомендацией triage-движка
type TriageResponse struct {
	SuggestedSeverity string    `json:"suggested_severity"`
	Action            string    `json:"action"`
	Rationale         string    `json:"rationale"`
	Confidence        float64   `json:"confidence"`
	AnalyzedAt        time.Time `json:"analyzed_at"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID        uuid.UUID       `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Details   string          `json:"details"`
	Severity  string          `json:"severity"`
	HandledBy *string         `json:"handled_by,omitempty"`
	Latitude  *float64        `json:"latitude,omitempty"`
	Longitude *float64        `json:"longitude,omitempty"`
	Status    string          `json:"status"`
	Triage    *TriageResponse `json:"triage,omitempty"`
}

// AppendAuditRequest DTO для добавления записи аудита
// @Description DTO для добавления записи аудита
type AppendAuditRequest struct {
	Action   string `json:"action" validate:"required,min=2,max=128"`
	Details  string `json:"details,omitempty"`
	Operator string `json:"operator" validate:"required,min=1,max=128"`
}

// AuditRecordResponse DTO записи аудита
// @Description DTO записи аудита
type AuditRecordResponse struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"incident_id"`
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	Details    string    `json:"details"`
	Operator   string    `json:"operator"`
	Hash       string    `json:"hash"`
}

// DetectionInput - одна сырая детекция из внешнего детектора
// @Description Одна сырая детекция из внешнего детектора
type DetectionInput struct {
	Box        []int   `json:"box" validate:"required,len=4"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
	ClassID    int     `json:"class_id" validate:"gte=0"`
}

// AnalyzeFrameRequest DTO с результатами детекции одного кадра
// @Description DTO с результатами детекции одного кадра
type AnalyzeFrameRequest struct {
	CameraID   string           `json:"camera_id" validate:"required,min=1,max=128"`
	Detections []DetectionInput `json:"detections" validate:"required,dive"`
}

// DetectionResponse - отфильтрованная детекция с флагом нарушения зоны
// @Description Отфильтрованная детекция с флагом нарушения зоны
type DetectionResponse struct {
	BBox                [4]int  `json:"bbox"`
	Confidence          float64 `json:"confidence"`
	RestrictedViolation bool    `json:"restricted_violation"`
}

// AnalyzeFrameResponse DTO результата анализа кадра
// @Description DTO результата анализа кадра
type AnalyzeFrameResponse struct {
	Detections []DetectionResponse `json:"detections"`
	Violations int                 `json:"violations"`
	Incident   *IncidentResponse   `json:"incident,omitempty"`
}

// CreateHandoverRequest DTO для передачи смены
// @Description DTO для передачи смены
type CreateHandoverRequest struct {
	Operator string `json:"operator" validate:"required,min=1,max=128"`
	Notes    string `json:"notes" validate:"required"`
}

// HandoverResponse DTO записи передачи смены
// @Description DTO записи передачи смены
type HandoverResponse struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Operator  string    `json:"operator"`
	Notes     string    `json:"notes"`
}
