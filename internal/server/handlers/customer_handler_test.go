package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arsonstech/fieldservice/internal/domain/models"
	"github.com/arsonstech/fieldservice/internal/service/report"
)

type fakeCustomerStore struct {
	records map[string]models.CustomerRecord
	order   []string
	err     error
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{records: map[string]models.CustomerRecord{}}
}

func (f *fakeCustomerStore) Insert(_ context.Context, record models.CustomerRecord) (*models.CustomerRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	f.records[record.ID.Hex()] = record
	f.order = append(f.order, record.ID.Hex())
	return &record, nil
}

func (f *fakeCustomerStore) FindByID(_ context.Context, id string) (*models.CustomerRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.records[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &record, nil
}

func (f *fakeCustomerStore) FindByEngineNumber(_ context.Context, engineNumber string) (*models.CustomerRecord, error) {
	for _, record := range f.records {
		if record.TractorInfo.EngineNumber == engineNumber {
			return &record, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCustomerStore) FindAll(_ context.Context) ([]models.CustomerRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.CustomerRecord, 0, len(f.records))
	for i := len(f.order) - 1; i >= 0; i-- {
		out = append(out, f.records[f.order[i]])
	}
	return out, nil
}

func (f *fakeCustomerStore) Update(_ context.Context, id string, record models.CustomerRecord) (*models.CustomerRecord, error) {
	existing, ok := f.records[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	f.records[id] = record
	return &record, nil
}

func (f *fakeCustomerStore) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.records, id)
	return nil
}

func (f *fakeCustomerStore) FindWarrantyDueBetween(_ context.Context, from, to time.Time) ([]models.CustomerRecord, error) {
	var out []models.CustomerRecord
	for _, record := range f.records {
		upto := record.TractorInfo.WarrantyUpto
		if !upto.Before(from) && !upto.After(to) {
			out = append(out, record)
		}
	}
	return out, nil
}

func newCustomerRouter(store *fakeCustomerStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCustomerHandler(store, report.NewService(), nil)

	r := gin.New()
	r.POST("/api/customer-details", h.Create)
	r.GET("/api/customer-details", h.List)
	r.GET("/api/customer-details/:id", h.Get)
	r.PUT("/api/customer-details/:id", h.Update)
	r.DELETE("/api/customer-details/:id", h.Delete)
	r.GET("/api/customer-details/:id/pdf", h.PDF)
	return r
}

func validCustomerPayload() map[string]any {
	return map[string]any{
		"startDate": "2026-01-01T00:00:00Z",
		"endDate":   "2027-01-01T00:00:00Z",
		"tractorInfo": map[string]any{
			"serialNo":         "TR-88231",
			"chasisNo":         "CH-5521",
			"engineNumber":     "EN-90412",
			"variant":          "4WD",
			"model":            "575 DI",
			"productionDate":   "2025-11-02T00:00:00Z",
			"deliveryDate":     "2026-01-05T00:00:00Z",
			"deliveredBy":      "Regional Depot",
			"installationDate": "2026-01-08T00:00:00Z",
			"warrantyUpto":     "2027-01-08T00:00:00Z",
		},
		"serviceInfo": map[string]any{
			"customerName": "Ramesh Kumar",
			"mobileNumber": "9876543210",
			"email":        "ramesh@example.com",
			"state":        "Haryana",
			"district":     "Karnal",
			"tehsil":       "Indri",
			"village":      "Biana",
		},
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCustomerHandler_CreateAndGet(t *testing.T) {
	store := newFakeCustomerStore()
	r := newCustomerRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/customer-details", validCustomerPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.CustomerRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.False(t, created.ID.IsZero())

	w = doJSON(t, r, http.MethodGet, "/api/customer-details/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.CustomerRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Ramesh Kumar", fetched.ServiceInfo.CustomerName)
}

func TestCustomerHandler_CreateRejectsInvalidMobile(t *testing.T) {
	store := newFakeCustomerStore()
	r := newCustomerRouter(store)

	payload := validCustomerPayload()
	payload["serviceInfo"].(map[string]any)["mobileNumber"] = "12345"

	w := doJSON(t, r, http.MethodPost, "/api/customer-details", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.records)
}

func TestCustomerHandler_CreateRejectsInvalidEmail(t *testing.T) {
	store := newFakeCustomerStore()
	r := newCustomerRouter(store)

	payload := validCustomerPayload()
	payload["serviceInfo"].(map[string]any)["email"] = "not-an-email"

	w := doJSON(t, r, http.MethodPost, "/api/customer-details", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_CreateRejectsMissingServiceInfo(t *testing.T) {
	store := newFakeCustomerStore()
	r := newCustomerRouter(store)

	payload := validCustomerPayload()
	delete(payload, "serviceInfo")

	w := doJSON(t, r, http.MethodPost, "/api/customer-details", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_ListNewestFirst(t *testing.T) {
	store := newFakeCustomerStore()
	r := newCustomerRouter(store)

	first := validCustomerPayload()
	first["serviceInfo"].(map[string]any)["customerName"] = "First"
	second := validCustomerPayload()
	second["serviceInfo"].(map[string]any)["customerName"] = "Second"

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/customer-details", first).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/customer-details", second).Code)

	w := doJSON(t, r, http.MethodGet, "/api/customer-details", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var records []models.CustomerRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Second", records[0].ServiceInfo.CustomerName)
}

func TestCustomerHandler_GetByEngineNumber(t *testing.T) {
	store := newFakeCustomerStore()
	r := newCustomerRouter(store)

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/customer-details", validCustomerPayload()).Code)

	w := doJSON(t, r, http.MethodGet, "/api/customer-details?engine_number=EN-90412", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.CustomerRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "EN-90412", fetched.TractorInfo.EngineNumber)

	w = doJSON(t, r, http.MethodGet, "/api/customer-details?engine_number=EN-00000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerHandler_UpdateReplacesRecord(t *testing.T) {
	store := newFakeCustomerStore()
	r := newCustomerRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/customer-details", validCustomerPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.CustomerRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	payload := validCustomerPayload()
	payload["serviceInfo"].(map[string]any)["village"] = "Gharaunda"

	w = doJSON(t, r, http.MethodPut, "/api/customer-details/"+created.ID.Hex(), payload)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gharaunda", store.records[created.ID.Hex()].ServiceInfo.Village)
}

func TestCustomerHandler_DeleteMissingReturns404(t *testing.T) {
	store := newFakeCustomerStore()
	r := newCustomerRouter(store)

	w := doJSON(t, r, http.MethodDelete, "/api/customer-details/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerHandler_PDF(t *testing.T) {
	store := newFakeCustomerStore()
	r := newCustomerRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/customer-details", validCustomerPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.CustomerRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodGet, "/api/customer-details/"+created.ID.Hex()+"/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}
