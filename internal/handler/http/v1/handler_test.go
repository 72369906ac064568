package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/robosoc/internal/config"
	"github.com/shenikar/robosoc/internal/detection"
	"github.com/shenikar/robosoc/internal/handler/http/v1/mocks"
	"github.com/shenikar/robosoc/internal/hub"
	"github.com/shenikar/robosoc/internal/models"
	"github.com/shenikar/robosoc/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockIncidentService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockIncidentService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	zone := models.RestrictedZone{{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 300}, {X: 100, Y: 300}}
	analyzer := detection.NewAnalyzer([]models.RestrictedZone{zone}, 0.4, 0)

	cfg := &config.Config{} // Ключи не заданы - аутентификация отключена

	handler := NewHandler(mockService, analyzer, hub.NewHub(logger), logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateIncident_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := CreateIncidentRequest{
		Type:    "cctv_alert",
		Source:  "camera1",
		Details: "Unauthorized access detected",
	}
	expectedIncident := &models.Incident{
		ID:        incidentID,
		Timestamp: time.Now().UTC(),
		Type:      reqBody.Type,
		Source:    reqBody.Source,
		Details:   reqBody.Details,
		Severity:  models.SeverityHigh,
		Status:    models.StatusOpen,
		Triage: &models.TriageResult{
			SuggestedSeverity: models.SeverityHigh,
			Action:            "Dispatch Guard",
			Rationale:         "Intrusion keywords detected",
			Confidence:        0.90,
			AnalyzedAt:        time.Now().UTC(),
		},
	}

	mockService.EXPECT().
		Ingest(gomock.Any(), DTOToIncidentEvent(reqBody)).
		Return(expectedIncident, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, "HIGH", resp.Severity)
	require.NotNil(t, resp.Triage)
	assert.Equal(t, "Dispatch Guard", resp.Triage.Action)
}

func TestCreateIncident_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Ingest(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBufferString(`{"type": "cctv_alert"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateIncident_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateIncidentRequest{ // Недопустимый уровень серьезности
		Type:     "cctv_alert",
		Source:   "camera1",
		Details:  "Smoke visible",
		Severity: "EXTREME",
	}

	mockService.EXPECT().Ingest(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateIncident_ServiceValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateIncidentRequest{
		Type:    "cctv_alert",
		Source:  "camera1",
		Details: "   ",
	}

	mockService.EXPECT().
		Ingest(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: details are empty", service.ErrValidation)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateIncident_PersistenceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateIncidentRequest{
		Type:    "cctv_alert",
		Source:  "camera1",
		Details: "Fire alarm triggered",
	}

	mockService.EXPECT().
		Ingest(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: connection refused", service.ErrPersistence)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestListIncidents_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	incidents := []*models.Incident{
		{ID: uuid.New(), Type: "cctv_alert", Severity: models.SeverityHigh, Status: models.StatusOpen},
		{ID: uuid.New(), Type: "sensor_alarm", Severity: models.SeverityLow, Status: models.StatusOpen},
	}

	mockService.EXPECT().
		ListRecent(gomock.Any(), service.DefaultRecentLimit).
		Return(incidents, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*IncidentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, incidents[0].ID, resp[0].ID)
}

func TestListIncidents_CustomLimit(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListRecent(gomock.Any(), 5).
		Return([]*models.Incident{}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents?limit=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetAuditTrail_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	incidentID := uuid.New()
	records := []*models.AuditRecord{
		{ID: uuid.New(), IncidentID: incidentID, Action: "status_changed", Operator: "operator1", Hash: "abc"},
		{ID: uuid.New(), IncidentID: incidentID, Action: "incident_created", Operator: "system", Hash: "def"},
	}

	mockService.EXPECT().
		AuditTrail(gomock.Any(), incidentID).
		Return(records, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents/"+incidentID.String()+"/audit", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*AuditRecordResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "status_changed", resp[0].Action)
}

func TestGetAuditTrail_InvalidID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().AuditTrail(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incidents/not-a-uuid/audit", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid incident ID")
}

func TestAppendAudit_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := AppendAuditRequest{
		Action:   "status_changed",
		Details:  "closed after patrol check",
		Operator: "operator1",
	}
	record := &models.AuditRecord{
		ID:         uuid.New(),
		IncidentID: incidentID,
		Timestamp:  time.Now().UTC(),
		Action:     reqBody.Action,
		Details:    reqBody.Details,
		Operator:   reqBody.Operator,
		Hash:       "deadbeef",
	}

	mockService.EXPECT().
		RecordAudit(gomock.Any(), incidentID, reqBody.Action, reqBody.Details, reqBody.Operator).
		Return(record, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents/"+incidentID.String()+"/audit", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp AuditRecordResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, record.ID, resp.ID)
	assert.Equal(t, "deadbeef", resp.Hash)
}

func TestAnalyzeFrame_WithViolation(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := AnalyzeFrameRequest{
		CameraID: "camera1",
		Detections: []DetectionInput{
			{Box: []int{150, 150, 250, 250}, Confidence: 0.9, ClassID: 0}, // Центр внутри зоны
			{Box: []int{0, 0, 50, 50}, Confidence: 0.8, ClassID: 0},       // Вне зоны
			{Box: []int{150, 150, 250, 250}, Confidence: 0.2, ClassID: 0}, // Ниже порога
		},
	}
	incident := &models.Incident{ID: uuid.New(), Type: "cctv_alert", Severity: models.SeverityHigh, Status: models.StatusOpen}

	mockService.EXPECT().
		ReportDetections(gomock.Any(), "camera1", gomock.Any()).
		DoAndReturn(func(_ any, _ string, detections []models.Detection) (*models.Incident, error) {
			require.Len(t, detections, 2)
			assert.True(t, detections[0].RestrictedViolation)
			assert.False(t, detections[1].RestrictedViolation)
			return incident, nil
		}).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/frames", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp AnalyzeFrameResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Violations)
	require.Len(t, resp.Detections, 2)
	require.NotNil(t, resp.Incident)
	assert.Equal(t, incident.ID, resp.Incident.ID)
}

func TestAnalyzeFrame_NoViolations(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := AnalyzeFrameRequest{
		CameraID: "camera2",
		Detections: []DetectionInput{
			{Box: []int{0, 0, 50, 50}, Confidence: 0.9, ClassID: 0},
		},
	}

	mockService.EXPECT().
		ReportDetections(gomock.Any(), "camera2", gomock.Any()).
		Return(nil, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/frames", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp AnalyzeFrameResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Violations)
	assert.Nil(t, resp.Incident)
}

func TestAnalyzeFrame_InvalidBox(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := AnalyzeFrameRequest{
		CameraID: "camera1",
		Detections: []DetectionInput{
			{Box: []int{150, 150, 250}, Confidence: 0.9, ClassID: 0}, // Неполный bbox
		},
	}

	mockService.EXPECT().ReportDetections(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/frames", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateHandover_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateHandoverRequest{
		Operator: "operator1",
		Notes:    "Two open incidents, camera3 offline",
	}
	handover := &models.ShiftHandover{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Operator:  reqBody.Operator,
		Notes:     reqBody.Notes,
	}

	mockService.EXPECT().
		SaveHandover(gomock.Any(), reqBody.Operator, reqBody.Notes).
		Return(handover, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/handovers", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp HandoverResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, handover.ID, resp.ID)
}

func TestListHandovers_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListHandovers(gomock.Any(), service.DefaultRecentLimit).
		Return(nil, errors.New("db down")).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/handovers", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRegisterRoutes_HealthBypassesAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockIncidentService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{APIKeys: []string{"test-api-key"}}
	analyzer := detection.NewAnalyzer(nil, 0.4, 0)
	handler := NewHandler(mockService, analyzer, hub.NewHub(logger), logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	mockService.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Times(0)

	// Без ключа лента недоступна, health-check - доступен
	w := makeRequest(router, "GET", "/api/v1/incidents", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, "GET", "/api/v1/system/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{APIKeys: []string{"test-api-key"}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Без ключа
	w := makeRequest(router, "GET", "/ping", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Неверный ключ
	w = makeRequest(router, "GET", "/ping", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Верный ключ в заголовке
	w = makeRequest(router, "GET", "/ping", nil, map[string]string{"X-API-Key": "test-api-key"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Верный ключ через Bearer
	w = makeRequest(router, "GET", "/ping", nil, map[string]string{"Authorization": "Bearer test-api-key"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Верный ключ через query-параметр (WebSocket-клиенты)
	w = makeRequest(router, "GET", "/ping?api_key=test-api-key", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
