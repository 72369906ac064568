package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/robosoc/internal/config"
	"github.com/shenikar/robosoc/internal/detection"
	"github.com/shenikar/robosoc/internal/hub"
	"github.com/shenikar/robosoc/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	analyzer        *detection.Analyzer
	hub             *hub.Hub
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, analyzer *detection.Analyzer, h *hub.Hub, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		analyzer:        analyzer,
		hub:             h,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Report a new incident
// @Description Ingest a new incident: triage, persist and broadcast to observers. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidentService.Ingest(c.Request.Context(), DTOToIncidentEvent(input))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			log.WithError(err).Warn("Incident rejected")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Failed to ingest incident")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Get recent incidents
// @Description Get the most recent incidents, newest first. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Number of incidents" default(20)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultRecentLimit)))

	incidents, err := h.incidentService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident audit trail
// @Description Get the audit trail of an incident, newest first. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {array} AuditRecordResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/audit [get]
func (h *Handler) getAuditTrail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getAuditTrail").WithField("id", id)

	records, err := h.incidentService.AuditTrail(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Error("Failed to get audit trail from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToAuditResponses(records))
}

// @Summary Append an audit record
// @Description Append an immutable audit record to an incident. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param audit body AppendAuditRequest true "Audit record request"
// @Success 201 {object} AuditRecordResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/audit [post]
func (h *Handler) appendAudit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "appendAudit").WithField("id", id)

	var input AppendAuditRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.incidentService.RecordAudit(c.Request.Context(), id, input.Action, input.Details, input.Operator)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Failed to append audit record in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToAuditResponse(record))
}

// @Summary Analyze a detector frame
// @Description Filter raw detections, flag restricted zone violations and report an incident if any. Requires API key.
// @Tags Detection
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param frame body AnalyzeFrameRequest true "Frame detections"
// @Success 200 {object} AnalyzeFrameResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /frames [post]
func (h *Handler) analyzeFrame(c *gin.Context) {
	var input AnalyzeFrameRequest
	log := h.logger.WithField("method", "analyzeFrame")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detections := h.analyzer.Analyze(DTOToRawDetections(input.Detections))

	incident, err := h.incidentService.ReportDetections(c.Request.Context(), input.CameraID, detections)
	if err != nil {
		log.WithError(err).Error("Failed to report detections")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := AnalyzeFrameResponse{
		Detections: ModelsToDetectionResponses(detections),
		Violations: detection.Violations(detections),
	}
	if incident != nil {
		resp.Incident = ModelToIncidentResponse(incident)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Record a shift handover
// @Description Record an operator shift handover note. Requires API key.
// @Tags Handovers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param handover body CreateHandoverRequest true "Handover request"
// @Success 201 {object} HandoverResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /handovers [post]
func (h *Handler) createHandover(c *gin.Context) {
	var input CreateHandoverRequest
	log := h.logger.WithField("method", "createHandover")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	handover, err := h.incidentService.SaveHandover(c.Request.Context(), input.Operator, input.Notes)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Failed to save handover in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToHandoverResponse(handover))
}

// @Summary List shift handovers
// @Description List recent shift handovers, newest first. Requires API key.
// @Tags Handovers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Number of handovers" default(20)
// @Success 200 {array} HandoverResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /handovers [get]
func (h *Handler) listHandovers(c *gin.Context) {
	log := h.logger.WithField("method", "listHandovers")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultRecentLimit)))

	handovers, err := h.incidentService.ListHandovers(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Failed to list handovers from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToHandoverResponses(handovers))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
