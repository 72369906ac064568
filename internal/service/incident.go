package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/robosoc/internal/config"
	"github.com/shenikar/robosoc/internal/dispatch"
	"github.com/shenikar/robosoc/internal/models"
	"github.com/shenikar/robosoc/internal/triage"
	"github.com/sirupsen/logrus"
)

// DefaultRecentLimit - размер ленты последних инцидентов
const DefaultRecentLimit = 20

// Ошибки конвейера. Проверяются через errors.Is.
var (
	// ErrValidation - входное событие отвергнуто до каких-либо побочных эффектов
	ErrValidation = errors.New("incident validation failed")
	// ErrPersistence - запись в хранилище не удалась, инцидент не сохранен
	// и не разослан; вызывающая сторона может повторить
	ErrPersistence = errors.New("incident persistence failed")
)

// IncidentRepository определяет контракт для работы с хранилищем инцидентов
type IncidentRepository interface {
	InsertIncident(ctx context.Context, incident *models.Incident, audit *models.AuditRecord) error
	ListRecent(ctx context.Context, limit int) ([]*models.Incident, error)
	AppendAudit(ctx context.Context, audit *models.AuditRecord) error
	AuditTrail(ctx context.Context, incidentID uuid.UUID) ([]*models.AuditRecord, error)
	SaveHandover(ctx context.Context, handover *models.ShiftHandover) error
	ListHandovers(ctx context.Context, limit int) ([]*models.ShiftHandover, error)
	GetRecentFromCache(ctx context.Context) ([]*models.Incident, error)
	SetRecentCache(ctx context.Context, incidents []*models.Incident) error
	InvalidateRecentCache(ctx context.Context) error
}

// Broadcaster рассылает сохраненный инцидент подключенным наблюдателям
type Broadcaster interface {
	Broadcast(v any)
}

// UnitDispatcher публикует запрос на выезд юнита
type UnitDispatcher interface {
	Publish(ctx context.Context, payload dispatch.Payload) error
}

// NewIncidentEvent - входное событие конвейера
type NewIncidentEvent struct {
	Type      string
	Source    string
	Details   string
	Severity  models.Severity // пусто - оператор серьезность не задавал
	HandledBy *string
	Latitude  *float64
	Longitude *float64
}

// IncidentService определяет контракт конвейера обработки инцидентов
type IncidentService interface {
	Ingest(ctx context.Context, event NewIncidentEvent) (*models.Incident, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Incident, error)
	RecordAudit(ctx context.Context, incidentID uuid.UUID, action, details, operator string) (*models.AuditRecord, error)
	AuditTrail(ctx context.Context, incidentID uuid.UUID) ([]*models.AuditRecord, error)
	ReportDetections(ctx context.Context, source string, detections []models.Detection) (*models.Incident, error)
	SaveHandover(ctx context.Context, operator, notes string) (*models.ShiftHandover, error)
	ListHandovers(ctx context.Context, limit int) ([]*models.ShiftHandover, error)
}

type incidentService struct {
	repo        IncidentRepository
	classifier  triage.Classifier
	broadcaster Broadcaster
	dispatcher  UnitDispatcher
	logger      *logrus.Logger
	cfg         *config.Config
	now         func() time.Time
}

func NewIncidentService(
	repo IncidentRepository,
	classifier triage.Classifier,
	broadcaster Broadcaster,
	dispatcher UnitDispatcher,
	logger *logrus.Logger,
	cfg *config.Config,
) IncidentService {
	return &incidentService{
		repo:        repo,
		classifier:  classifier,
		broadcaster: broadcaster,
		dispatcher:  dispatcher,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Ingest проводит событие через весь конвейер: валидация, triage,
// сохранение, рассылка наблюдателям и (по политике) диспетчеризация юнита.
// После успешного сохранения ingest уже считается успешным: ни рассылка,
// ни диспетчеризация на результат не влияют.
func (s *incidentService) Ingest(ctx context.Context, event NewIncidentEvent) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "Ingest",
		"type":    event.Type,
		"source":  event.Source,
	})

	if strings.TrimSpace(event.Details) == "" {
		log.Warn("Rejected incident with empty details")
		return nil, fmt.Errorf("%w: details must not be empty", ErrValidation)
	}

	incident := &models.Incident{
		ID:        uuid.New(),
		Timestamp: s.now().UTC(),
		Type:      event.Type,
		Source:    event.Source,
		Details:   event.Details,
		Severity:  models.SeverityLow,
		HandledBy: event.HandledBy,
		Latitude:  event.Latitude,
		Longitude: event.Longitude,
		Status:    models.StatusOpen,
	}

	operatorSet := event.Severity != "" && event.Severity.Valid()
	if operatorSet {
		incident.Severity = event.Severity
	}

	result := s.classifier.Classify(incident.Details)
	incident.Triage = &result
	// Рекомендация не перекрывает серьезность, выставленную оператором
	if !operatorSet {
		incident.Severity = result.SuggestedSeverity
	}

	audit := s.newAuditRecord(incident.ID, "incident_created",
		fmt.Sprintf("triage: %s (%s, confidence %.2f)", result.Action, result.Rationale, result.Confidence),
		operatorOrSystem(incident.HandledBy))

	if err := s.repo.InsertIncident(ctx, incident, audit); err != nil {
		log.WithError(err).Error("Failed to persist incident")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.repo.InvalidateRecentCache(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate recent incidents cache")
	}

	log.WithFields(logrus.Fields{
		"incident_id": incident.ID,
		"severity":    incident.Severity,
		"action":      result.Action,
	}).Info("Incident persisted")

	// Передача в hub синхронна: инциденты попадают в очередь рассылки в
	// порядке сохранения. Медленные наблюдатели вызов не задерживают -
	// hub отцепляет их, не блокируясь на записи
	s.broadcaster.Broadcast(incident)

	s.dispatchUnits(ctx, incident)

	return incident, nil
}

// dispatchUnits применяет политику диспетчеризации к triage-рекомендации.
// Ошибка публикации логируется и не влияет на результат ingest.
func (s *incidentService) dispatchUnits(ctx context.Context, incident *models.Incident) {
	if incident.Triage == nil || incident.Latitude == nil || incident.Longitude == nil {
		return
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "dispatchUnits",
		"incident_id": incident.ID,
	})

	units := unitsForAction(incident.Triage.Action, incident.Severity)
	loc := dispatch.Location{Lat: *incident.Latitude, Lon: *incident.Longitude}

	if s.cfg.DispatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.DispatchTimeout)
		defer cancel()
	}

	for _, unit := range units {
		payload, err := dispatch.BuildPayload(unit, loc, incident.Severity, s.cfg.DispatchContact)
		if err != nil {
			log.WithError(err).Error("Failed to build dispatch payload")
			continue
		}
		if err := s.dispatcher.Publish(ctx, payload); err != nil {
			log.WithError(err).WithField("unit_type", unit).Error("Failed to dispatch unit")
			continue
		}
		log.WithField("unit_type", unit).Info("Unit dispatched")
	}
}

// unitsForAction выводит типы юнитов из рекомендованного действия.
// Пожарные команды диспетчеризуются человеческим процессом, юнит для них
// не отправляется; для критических инцидентов дополнительно поднимается
// дрон для обзора с воздуха.
func unitsForAction(action string, severity models.Severity) []string {
	units := make([]string, 0, 2)
	switch action {
	case "Dispatch Guard", "Dispatch Medical Team":
		units = append(units, dispatch.UnitGuard)
	}
	if severity == models.SeverityCritical {
		units = append(units, dispatch.UnitDrone)
	}
	return units
}

// ListRecent возвращает последние инциденты, от новых к старым.
// Лента стандартного размера кэшируется в Redis.
func (s *incidentService) ListRecent(ctx context.Context, limit int) ([]*models.Incident, error) {
	if limit < 1 || limit > 100 {
		limit = DefaultRecentLimit
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListRecent",
		"limit":   limit,
	})

	if limit == DefaultRecentLimit {
		cached, err := s.repo.GetRecentFromCache(ctx)
		if err != nil {
			log.WithError(err).Warn("Failed to read recent incidents cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	incidents, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list recent incidents")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	if limit == DefaultRecentLimit {
		if err := s.repo.SetRecentCache(ctx, incidents); err != nil {
			log.WithError(err).Warn("Failed to cache recent incidents")
		}
	}

	return incidents, nil
}

// RecordAudit добавляет запись аудита к существующему инциденту
func (s *incidentService) RecordAudit(ctx context.Context, incidentID uuid.UUID, action, details, operator string) (*models.AuditRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "RecordAudit",
		"incident_id": incidentID,
	})

	if strings.TrimSpace(action) == "" {
		return nil, fmt.Errorf("%w: audit action must not be empty", ErrValidation)
	}

	audit := s.newAuditRecord(incidentID, action, details, operator)
	if err := s.repo.AppendAudit(ctx, audit); err != nil {
		log.WithError(err).Error("Failed to append audit record")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return audit, nil
}

// AuditTrail возвращает журнал аудита инцидента
func (s *incidentService) AuditTrail(ctx context.Context, incidentID uuid.UUID) ([]*models.AuditRecord, error) {
	records, err := s.repo.AuditTrail(ctx, incidentID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get audit trail")
		return nil, fmt.Errorf("service: could not get audit trail: %w", err)
	}
	return records, nil
}

// ReportDetections превращает нарушения запретных зон одного кадра в
// инцидент. Кадр без нарушений инцидента не порождает.
func (s *incidentService) ReportDetections(ctx context.Context, source string, detections []models.Detection) (*models.Incident, error) {
	violations := 0
	for _, d := range detections {
		if d.RestrictedViolation {
			violations++
		}
	}
	if violations == 0 {
		return nil, nil
	}

	return s.Ingest(ctx, NewIncidentEvent{
		Type:    "cctv_alert",
		Source:  source,
		Details: fmt.Sprintf("Unauthorized person detected in restricted zone (%d violation(s) on frame)", violations),
	})
}

// SaveHandover сохраняет запись передачи смены
func (s *incidentService) SaveHandover(ctx context.Context, operator, notes string) (*models.ShiftHandover, error) {
	if strings.TrimSpace(operator) == "" || strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("%w: operator and notes must not be empty", ErrValidation)
	}

	handover := &models.ShiftHandover{
		ID:        uuid.New(),
		Timestamp: s.now().UTC(),
		Operator:  operator,
		Notes:     notes,
	}
	if err := s.repo.SaveHandover(ctx, handover); err != nil {
		s.logger.WithError(err).Error("Failed to save handover")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return handover, nil
}

// ListHandovers возвращает последние передачи смен
func (s *incidentService) ListHandovers(ctx context.Context, limit int) ([]*models.ShiftHandover, error) {
	if limit < 1 || limit > 100 {
		limit = DefaultRecentLimit
	}
	handovers, err := s.repo.ListHandovers(ctx, limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list handovers")
		return nil, fmt.Errorf("service: could not list handovers: %w", err)
	}
	return handovers, nil
}

func (s *incidentService) newAuditRecord(incidentID uuid.UUID, action, details, operator string) *models.AuditRecord {
	// timestamptz хранит микросекунды: метка обрезается до точности
	// хранилища до запечатывания, иначе Verify на прочитанной записи
	// не сойдется с хэшем
	audit := &models.AuditRecord{
		ID:         uuid.New(),
		IncidentID: incidentID,
		Timestamp:  s.now().UTC().Truncate(time.Microsecond),
		Action:     action,
		Details:    details,
		Operator:   operator,
	}
	audit.Seal()
	return audit
}

func operatorOrSystem(handledBy *string) string {
	if handledBy != nil && *handledBy != "" {
		return *handledBy
	}
	return "system"
}
