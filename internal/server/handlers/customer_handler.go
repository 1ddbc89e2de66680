package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/arsonstech/fieldservice/internal/domain/models"
	"github.com/arsonstech/fieldservice/internal/repository/mongodb"
	"github.com/arsonstech/fieldservice/internal/service/report"
)

// CustomerHandler serves the customer warranty record endpoints.
type CustomerHandler struct {
	store   mongodb.CustomerStore
	reports *report.Service
	logger  *zap.Logger
}

// NewCustomerHandler constructs the HTTP handler adapter.
func NewCustomerHandler(store mongodb.CustomerStore, reports *report.Service, logger *zap.Logger) *CustomerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerHandler{store: store, reports: reports, logger: logger}
}

// Create stores a new customer record submitted by the "new customer" form.
func (h *CustomerHandler) Create(c *gin.Context) {
	var record models.CustomerRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid customer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.store.Insert(c.Request.Context(), record)
	if err != nil {
		h.logger.Error("failed creating customer record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer details"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List returns all customer records, newest first. With an engine_number
// query parameter it performs the secondary lookup instead and returns the
// single matching record.
func (h *CustomerHandler) List(c *gin.Context) {
	if engineNumber := c.Query("engine_number"); engineNumber != "" {
		h.getByEngineNumber(c, engineNumber)
		return
	}

	records, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing customer records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch customer details"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Get returns one customer record by id.
func (h *CustomerHandler) Get(c *gin.Context) {
	record, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err, "customer details not found")
		return
	}

	c.JSON(http.StatusOK, record)
}

// getByEngineNumber performs the secondary lookup used by the engine form to
// prefill customer data.
func (h *CustomerHandler) getByEngineNumber(c *gin.Context, engineNumber string) {
	record, err := h.store.FindByEngineNumber(c.Request.Context(), engineNumber)
	if err != nil {
		h.respondLookupError(c, err, "customer not found")
		return
	}

	c.JSON(http.StatusOK, record)
}

// Update replaces the whole record under the given id.
func (h *CustomerHandler) Update(c *gin.Context) {
	var record models.CustomerRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid customer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.store.Update(c.Request.Context(), c.Param("id"), record)
	if err != nil {
		h.respondLookupError(c, err, "customer details not found")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes one record by id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondLookupError(c, err, "customer details not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "customer details deleted successfully"})
}

// PDF streams the printable customer record.
func (h *CustomerHandler) PDF(c *gin.Context) {
	record, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err, "customer details not found")
		return
	}

	data, err := h.reports.RenderCustomerRecord(*record)
	if err != nil {
		h.logger.Error("failed rendering customer pdf", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render pdf"})
		return
	}

	c.Header("Content-Disposition", `inline; filename="customer-details.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *CustomerHandler) respondLookupError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	h.logger.Error("customer record lookup failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
