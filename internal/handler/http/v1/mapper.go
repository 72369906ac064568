package v1

import (
	"github.com/shenikar/robosoc/internal/detection"
	"github.com/shenikar/robosoc/internal/models"
	"github.com/shenikar/robosoc/internal/service"
)

// DTOToIncidentEvent преобразует DTO создания в событие конвейера
func DTOToIncidentEvent(dto CreateIncidentRequest) service.NewIncidentEvent {
	return service.NewIncidentEvent{
		Type:      dto.Type,
		Source:    dto.Source,
		Details:   dto.Details,
		Severity:  models.Severity(dto.Severity),
		HandledBy: dto.HandledBy,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	}
}

// DTOToRawDetections преобразует детекции запроса в формат анализатора
func DTOToRawDetections(inputs []DetectionInput) []detection.RawDetection {
	raw := make([]detection.RawDetection, len(inputs))
	for i, in := range inputs {
		raw[i] = detection.RawDetection{
			Box:        [4]int{in.Box[0], in.Box[1], in.Box[2], in.Box[3]},
			Confidence: in.Confidence,
			ClassID:    in.ClassID,
		}
	}
	return raw
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:        model.ID,
		Timestamp: model.Timestamp,
		Type:      model.Type,
		Source:    model.Source,
		Details:   model.Details,
		Severity:  string(model.Severity),
		HandledBy: model.HandledBy,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		Status:    model.Status,
	}
	if model.Triage != nil {
		resp.Triage = &TriageResponse{
			SuggestedSeverity: string(model.Triage.SuggestedSeverity),
			Action:            model.Triage.Action,
			Rationale:         model.Triage.Rationale,
			Confidence:        model.Triage.Confidence,
			AnalyzedAt:        model.Triage.AnalyzedAt,
		}
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelsToDetectionResponses преобразует детекции в DTO для ответа
func ModelsToDetectionResponses(detections []models.Detection) []DetectionResponse {
	responses := make([]DetectionResponse, len(detections))
	for i, d := range detections {
		responses[i] = DetectionResponse{
			BBox:                d.BBox,
			Confidence:          d.Confidence,
			RestrictedViolation: d.RestrictedViolation,
		}
	}
	return responses
}

// ModelToAuditResponse преобразует запись аудита в DTO
func ModelToAuditResponse(model *models.AuditRecord) *AuditRecordResponse {
	return &AuditRecordResponse{
		ID:         model.ID,
		IncidentID: model.IncidentID,
		Timestamp:  model.Timestamp,
		Action:     model.Action,
		Details:    model.Details,
		Operator:   model.Operator,
		Hash:       model.Hash,
	}
}

// ModelsToAuditResponses преобразует слайс записей аудита в слайс DTO
func ModelsToAuditResponses(records []*models.AuditRecord) []*AuditRecordResponse {
	responses := make([]*AuditRecordResponse, len(records))
	for i, record := range records {
		responses[i] = ModelToAuditResponse(record)
	}
	return responses
}

// ModelToHandoverResponse преобразует передачу смены в DTO
func ModelToHandoverResponse(model *models.ShiftHandover) *HandoverResponse {
	return &HandoverResponse{
		ID:        model.ID,
		Timestamp: model.Timestamp,
		Operator:  model.Operator,
		Notes:     model.Notes,
	}
}

// ModelsToHandoverResponses преобразует слайс передач смен в слайс DTO
func ModelsToHandoverResponses(handovers []*models.ShiftHandover) []*HandoverResponse {
	responses := make([]*HandoverResponse, len(handovers))
	for i, handover := range handovers {
		responses[i] = ModelToHandoverResponse(handover)
	}
	return responses
}
