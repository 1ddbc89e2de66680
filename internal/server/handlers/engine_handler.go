package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/arsonstech/fieldservice/internal/domain/models"
	"github.com/arsonstech/fieldservice/internal/repository/mongodb"
	"github.com/arsonstech/fieldservice/internal/service/report"
)

// EngineHandler serves the generator engine service report endpoints.
type EngineHandler struct {
	store   mongodb.EngineStore
	reports *report.Service
	logger  *zap.Logger
}

// NewEngineHandler constructs the HTTP handler adapter.
func NewEngineHandler(store mongodb.EngineStore, reports *report.Service, logger *zap.Logger) *EngineHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EngineHandler{store: store, reports: reports, logger: logger}
}

// Create stores a new field service report.
func (h *EngineHandler) Create(c *gin.Context) {
	record, ok := h.bindEngine(c)
	if !ok {
		return
	}

	created, err := h.store.Insert(c.Request.Context(), *record)
	if err != nil {
		h.logger.Error("failed creating engine record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create engine"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List returns all reports, most recently filled first. With a
// serial_number query parameter it performs the secondary lookup instead and
// returns the single most recent report for that engine.
func (h *EngineHandler) List(c *gin.Context) {
	if serial := c.Query("serial_number"); serial != "" {
		h.getBySerialNumber(c, serial)
		return
	}

	records, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing engine records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch engines"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Get returns one report by id.
func (h *EngineHandler) Get(c *gin.Context) {
	record, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// getBySerialNumber returns the most recent report for an engine serial
// number.
func (h *EngineHandler) getBySerialNumber(c *gin.Context, serialNumber string) {
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serial number is required"})
		return
	}

	record, err := h.store.FindBySerialNumber(c.Request.Context(), serialNumber)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// Update replaces the report under the given id.
func (h *EngineHandler) Update(c *gin.Context) {
	record, ok := h.bindEngine(c)
	if !ok {
		return
	}

	updated, err := h.store.Update(c.Request.Context(), c.Param("id"), *record)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes one report by id.
func (h *EngineHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "engine deleted successfully"})
}

// PDF streams the printable field service report.
func (h *EngineHandler) PDF(c *gin.Context) {
	record, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	data, err := h.reports.RenderFieldServiceReport(*record)
	if err != nil {
		h.logger.Error("failed rendering field service report pdf", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render pdf"})
		return
	}

	c.Header("Content-Disposition", `inline; filename="field-service-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// bindEngine decodes the payload and enforces the non-empty serial number
// invariant after trimming.
func (h *EngineHandler) bindEngine(c *gin.Context) (*models.EngineRecord, bool) {
	var record models.EngineRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid engine payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, false
	}

	record.EngineSerialNumber = strings.TrimSpace(record.EngineSerialNumber)
	if record.EngineSerialNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "engine serial number is required"})
		return nil, false
	}

	return &record, true
}

func (h *EngineHandler) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "engine not found"})
		return
	}
	h.logger.Error("engine record lookup failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
