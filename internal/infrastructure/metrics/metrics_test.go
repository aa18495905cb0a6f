package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/metrics"
)

func TestMetrics_Recorders(t *testing.T) {
	m := metrics.New("test")

	m.RecordLedgerOperation("update_stock", "ok")
	m.RecordLedgerOperation("update_stock", "ok")
	m.RecordLedgerOperation("update_stock", "failed")
	m.SetProductStock(&entity.Product{ID: "1", Name: "Laptop", Category: "Electronics", CurrentStock: 7})
	m.RecordAlertRaised(entity.AlertTypeLowStock, entity.SeverityMedium)
	m.RecordNotification("email", "sent")
	m.RecordReportGenerated("inventory", "ok")
	m.RecordHTTPRequest("GET", "/api/v1/products", 200, 15*time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.Registry(), "test_ledger_operations_total"), "una serie por result")
	assert.Equal(t, 1, testutil.CollectAndCount(m.Registry(), "test_product_stock"))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Registry(), "test_http_requests_total"))
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New("")
	m.RecordNotification("slack", "sent")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `inventorypro_notifications_total{channel="slack",result="sent"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
