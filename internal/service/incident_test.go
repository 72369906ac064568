package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/robosoc/internal/config"
	"github.com/shenikar/robosoc/internal/dispatch"
	"github.com/shenikar/robosoc/internal/models"
	"github.com/shenikar/robosoc/internal/service/mocks"
	"github.com/shenikar/robosoc/internal/triage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestIncidentService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, *mocks.MockIncidentRepository, *mocks.MockBroadcaster, *mocks.MockUnitDispatcher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	broadcasterMock := mocks.NewMockBroadcaster(ctrl)
	dispatcherMock := mocks.NewMockUnitDispatcher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		DispatchContact: "radio",
	}

	svc := NewIncidentService(repoMock, triage.NewRuleEngine(), broadcasterMock, dispatcherMock, logger, cfg)
	return svc.(*incidentService), repoMock, broadcasterMock, dispatcherMock
}

// expectBroadcast ожидает ровно одну рассылку сохраненного инцидента
func expectBroadcast(broadcasterMock *mocks.MockBroadcaster) {
	broadcasterMock.EXPECT().
		Broadcast(gomock.Any()).
		Times(1)
}

func ptrFloat(v float64) *float64 { return &v }

func TestIngest_EmptyDetails(t *testing.T) {
	// Подготовка: никаких ожиданий - до побочных эффектов дойти не должно
	svc, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	for _, details := range []string{"", "   ", "\t\n"} {
		// Действие
		incident, err := svc.Ingest(ctx, NewIncidentEvent{
			Type:    "manual",
			Source:  "operator7",
			Details: details,
		})

		// Проверки
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, incident)
	}
}

func TestIngest_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, broadcasterMock, dispatcherMock := newTestIncidentService(t)
	ctx := context.Background()

	var storedIncident *models.Incident
	var storedAudit *models.AuditRecord

	// Ожидания
	repoMock.EXPECT().
		InsertIncident(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident, audit *models.AuditRecord) error {
			storedIncident = inc
			storedAudit = audit
			return nil
		}).Times(1)
	repoMock.EXPECT().InvalidateRecentCache(ctx).Return(nil).Times(1)
	expectBroadcast(broadcasterMock)

	var dispatched dispatch.Payload
	dispatcherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p dispatch.Payload) error {
			dispatched = p
			return nil
		}).Times(1)

	// Действие
	incident, err := svc.Ingest(ctx, NewIncidentEvent{
		Type:      "cctv_alert",
		Source:    "camera1",
		Details:   "Unauthorized access detected",
		Latitude:  ptrFloat(36.17),
		Longitude: ptrFloat(-115.14),
	})

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, incident)
	assert.Same(t, storedIncident, incident)

	assert.NotEqual(t, uuid.Nil, incident.ID)
	assert.Equal(t, models.StatusOpen, incident.Status)
	assert.Equal(t, models.SeverityHigh, incident.Severity)
	require.NotNil(t, incident.Triage)
	assert.Equal(t, "Dispatch Guard", incident.Triage.Action)
	assert.Equal(t, 0.90, incident.Triage.Confidence)

	// Первая запись аудита создается вместе с инцидентом и запечатана хэшем
	require.NotNil(t, storedAudit)
	assert.Equal(t, incident.ID, storedAudit.IncidentID)
	assert.Equal(t, "incident_created", storedAudit.Action)
	assert.True(t, storedAudit.Verify())

	// Для действия "Dispatch Guard" выезжает охранник
	assert.Equal(t, dispatch.UnitGuard, dispatched.UnitType)
	assert.Equal(t, 36.17, dispatched.Location.Lat)
	assert.Equal(t, "radio", dispatched.ContactChannel)

}

func TestIngest_PersistenceFailure(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания: вставка падает; ни рассылки, ни диспетчеризации не происходит
	repoMock.EXPECT().
		InsertIncident(ctx, gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("connection refused")).
		Times(1)

	// Действие
	incident, err := svc.Ingest(ctx, NewIncidentEvent{
		Type:    "manual",
		Source:  "operator7",
		Details: "Suspicious activity at gate 2",
	})

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Nil(t, incident)
}

func TestIngest_OperatorSeverityPreserved(t *testing.T) {
	// Подготовка
	svc, repoMock, broadcasterMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().InsertIncident(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateRecentCache(ctx).Return(nil).Times(1)
	expectBroadcast(broadcasterMock)

	// Действие: оператор выставил MEDIUM, triage рекомендует LOW
	incident, err := svc.Ingest(ctx, NewIncidentEvent{
		Type:     "manual",
		Source:   "operator7",
		Details:  "routine patrol",
		Severity: models.SeverityMedium,
	})

	// Проверки: рекомендация приложена, но серьезность оператора не перекрыта
	require.NoError(t, err)
	assert.Equal(t, models.SeverityMedium, incident.Severity)
	require.NotNil(t, incident.Triage)
	assert.Equal(t, models.SeverityLow, incident.Triage.SuggestedSeverity)
	assert.Equal(t, "Monitor", incident.Triage.Action)

}

func TestIngest_DispatchFailureDoesNotFailIngest(t *testing.T) {
	// Подготовка
	svc, repoMock, broadcasterMock, dispatcherMock := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().InsertIncident(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateRecentCache(ctx).Return(nil).Times(1)
	expectBroadcast(broadcasterMock)
	dispatcherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Return(fmt.Errorf("%w: broker unavailable", dispatch.ErrDispatch)).
		Times(1)

	// Действие
	incident, err := svc.Ingest(ctx, NewIncidentEvent{
		Type:      "cctv_alert",
		Source:    "camera3",
		Details:   "Intrusion detected at perimeter",
		Latitude:  ptrFloat(1.0),
		Longitude: ptrFloat(2.0),
	})

	// Проверки: инцидент сохранен и возвращен несмотря на сбой диспетчеризации
	require.NoError(t, err)
	require.NotNil(t, incident)
	assert.Equal(t, models.SeverityHigh, incident.Severity)

}

func TestIngest_NoCoordinatesNoDispatch(t *testing.T) {
	// Подготовка: dispatcher без ожиданий - без координат юнит не выезжает
	svc, repoMock, broadcasterMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	repoMock.EXPECT().InsertIncident(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateRecentCache(ctx).Return(nil).Times(1)
	expectBroadcast(broadcasterMock)

	// Действие
	_, err := svc.Ingest(ctx, NewIncidentEvent{
		Type:    "manual",
		Source:  "operator2",
		Details: "Unauthorized vehicle at loading dock",
	})

	// Проверки
	require.NoError(t, err)
}

func TestIngest_CriticalDispatchesDrone(t *testing.T) {
	// Подготовка
	svc, repoMock, broadcasterMock, dispatcherMock := newTestIncidentService(t)
	ctx := context.Background()

	repoMock.EXPECT().InsertIncident(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateRecentCache(ctx).Return(nil).Times(1)
	expectBroadcast(broadcasterMock)

	units := make([]string, 0, 2)
	dispatcherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p dispatch.Payload) error {
			units = append(units, p.UnitType)
			return nil
		}).Times(1)

	// Действие: пожар - CRITICAL, пожарная команда без юнита, дрон на обзор
	incident, err := svc.Ingest(ctx, NewIncidentEvent{
		Type:      "sensor_alert",
		Source:    "smoke_sensor_9",
		Details:   "Smoke detected in warehouse B",
		Latitude:  ptrFloat(36.2),
		Longitude: ptrFloat(-115.1),
	})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.SeverityCritical, incident.Severity)
	assert.Equal(t, []string{dispatch.UnitDrone}, units)

}

func TestIngest_BroadcastOrderMatchesIngestOrder(t *testing.T) {
	// Подготовка
	svc, repoMock, broadcasterMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	const rounds = 5

	repoMock.EXPECT().InsertIncident(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(rounds)
	repoMock.EXPECT().InvalidateRecentCache(ctx).Return(nil).Times(rounds)

	var order []string
	broadcasterMock.EXPECT().
		Broadcast(gomock.Any()).
		Do(func(v any) {
			order = append(order, v.(*models.Incident).Details)
		}).Times(rounds)

	// Действие: последовательные ingest'ы
	want := make([]string, 0, rounds)
	for i := 0; i < rounds; i++ {
		details := fmt.Sprintf("routine patrol report %d", i)
		want = append(want, details)

		_, err := svc.Ingest(ctx, NewIncidentEvent{
			Type:    "manual",
			Source:  "operator7",
			Details: details,
		})
		require.NoError(t, err)

		// Передача в очередь рассылки завершается до возврата Ingest
		require.Len(t, order, i+1)
	}

	// Проверки: наблюдатели получают инциденты в порядке сохранения
	assert.Equal(t, want, order)
}

func TestListRecent_CacheHit(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	cached := []*models.Incident{{ID: uuid.New(), Details: "cached"}}

	// Ожидания: попадание в кеш, до бд не доходим
	repoMock.EXPECT().GetRecentFromCache(ctx).Return(cached, nil).Times(1)

	// Действие
	incidents, err := svc.ListRecent(ctx, DefaultRecentLimit)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, cached, incidents)
}

func TestListRecent_CacheMiss(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	fromDB := []*models.Incident{{ID: uuid.New(), Details: "from db"}}

	// Ожидания: промах кеша, чтение из бд, запись в кеш
	repoMock.EXPECT().GetRecentFromCache(ctx).Return(nil, nil).Times(1)
	repoMock.EXPECT().ListRecent(ctx, DefaultRecentLimit).Return(fromDB, nil).Times(1)
	repoMock.EXPECT().SetRecentCache(ctx, fromDB).Return(nil).Times(1)

	// Действие
	incidents, err := svc.ListRecent(ctx, DefaultRecentLimit)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, fromDB, incidents)
}

func TestListRecent_NonDefaultLimitSkipsCache(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания: кеш не трогаем
	repoMock.EXPECT().ListRecent(ctx, 5).Return([]*models.Incident{}, nil).Times(1)

	// Действие
	_, err := svc.ListRecent(ctx, 5)

	// Проверки
	require.NoError(t, err)
}

func TestReportDetections_NoViolations(t *testing.T) {
	// Подготовка: нарушений нет - конвейер не запускается, моки молчат
	svc, _, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	detections := []models.Detection{
		{BBox: [4]int{0, 0, 50, 50}, Confidence: 0.8, RestrictedViolation: false},
	}

	// Действие
	incident, err := svc.ReportDetections(ctx, "camera1", detections)

	// Проверки
	require.NoError(t, err)
	assert.Nil(t, incident)
}

func TestReportDetections_WithViolations(t *testing.T) {
	// Подготовка
	svc, repoMock, broadcasterMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	repoMock.EXPECT().InsertIncident(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateRecentCache(ctx).Return(nil).Times(1)
	expectBroadcast(broadcasterMock)

	detections := []models.Detection{
		{BBox: [4]int{150, 150, 250, 250}, Confidence: 0.9, RestrictedViolation: true},
		{BBox: [4]int{0, 0, 50, 50}, Confidence: 0.8, RestrictedViolation: false},
	}

	// Действие
	incident, err := svc.ReportDetections(ctx, "camera1", detections)

	// Проверки: текст о нарушении зоны дает HIGH / Dispatch Guard
	require.NoError(t, err)
	require.NotNil(t, incident)
	assert.Equal(t, "cctv_alert", incident.Type)
	assert.Equal(t, "camera1", incident.Source)
	assert.Equal(t, models.SeverityHigh, incident.Severity)
	assert.Equal(t, "Dispatch Guard", incident.Triage.Action)

}

func TestRecordAudit_SealsHash(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	var stored *models.AuditRecord
	repoMock.EXPECT().
		AppendAudit(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.AuditRecord) error {
			stored = a
			return nil
		}).Times(1)

	// Действие
	audit, err := svc.RecordAudit(ctx, incidentID, "status_changed", "closed after review", "operator7")

	// Проверки
	require.NoError(t, err)
	assert.Same(t, stored, audit)
	assert.True(t, audit.Verify())

	// Изменение любого поля ломает хэш
	tampered := *audit
	tampered.Details = "reopened"
	assert.False(t, tampered.Verify())
}

func TestRecordAudit_HashSurvivesStoredPrecision(t *testing.T) {
	// Подготовка: часы с наносекундным остатком; timestamptz хранит
	// только микросекунды, прочитанная запись вернется с обрезанной меткой
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()
	svc.now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 123456789, time.UTC)
	}

	repoMock.EXPECT().AppendAudit(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	audit, err := svc.RecordAudit(ctx, uuid.New(), "status_changed", "closed after review", "operator7")
	require.NoError(t, err)

	// Проверки: метка запечатана с точностью хранилища, повторное
	// чтение целостность не ломает
	retrieved := *audit
	retrieved.Timestamp = retrieved.Timestamp.Truncate(time.Microsecond)
	assert.Equal(t, audit.Timestamp, retrieved.Timestamp)
	assert.True(t, retrieved.Verify())
}

func TestRecordAudit_EmptyAction(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestIncidentService(t)

	// Действие
	_, err := svc.RecordAudit(context.Background(), uuid.New(), "  ", "details", "operator7")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSaveHandover_Validation(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Действие / Проверки: пустые поля отвергаются до похода в бд
	_, err := svc.SaveHandover(ctx, "", "notes")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.SaveHandover(ctx, "operator7", "   ")
	assert.ErrorIs(t, err, ErrValidation)

	// Корректная запись сохраняется
	repoMock.EXPECT().SaveHandover(ctx, gomock.Any()).Return(nil).Times(1)
	handover, err := svc.SaveHandover(ctx, "operator7", "all quiet, camera 4 needs maintenance")
	require.NoError(t, err)
	assert.Equal(t, "operator7", handover.Operator)
	assert.NotEqual(t, uuid.Nil, handover.ID)
}
