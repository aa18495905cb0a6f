package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventorypro-api/internal/application/alerts"
	"github.com/jhoicas/inventorypro-api/internal/application/auth"
	"github.com/jhoicas/inventorypro-api/internal/application/dto"
	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
	"github.com/jhoicas/inventorypro-api/internal/application/notification"
	"github.com/jhoicas/inventorypro-api/internal/application/report"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/memory"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/metrics"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/notify"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/inventorypro-api/internal/interfaces/http"
)

type apiFixture struct {
	app     *fiber.App
	browser *notify.BrowserChannel
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	prefs := memory.NewPreferenceStore()
	m := metrics.New("test")

	browser := notify.NewBrowserChannel(time.Minute, notify.DefaultFeedSize, nil)
	t.Cleanup(browser.Close)

	settings := notification.NewSettingsUseCase(prefs, browser, nil)
	dispatcher := notification.NewDispatcher(settings, []notification.Channel{
		browser,
		notify.NewEmailChannel("alerts@inventorypro.local", nil, nil),
		notify.NewSlackChannel(notify.DefaultSlackChannel, nil),
	}, browser, m, nil)
	alertSvc := alerts.NewService(memory.NewAlertRepository(), dispatcher, nil, m, nil)
	ledgerUC := ledger.NewLedgerUseCase(memory.NewTxRunner(store), store.Repos(), alertSvc, nil, m, nil)
	authUC, err := auth.NewAuthUseCase(prefs, auth.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin}, auth.DemoCredentials, nil)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestMetrics(m))
	apphttp.Router(app, apphttp.RouterDeps{
		LedgerUC:       ledgerUC,
		AlertSvc:       alertSvc,
		AuthUC:         authUC,
		SettingsUC:     settings,
		Dispatcher:     dispatcher,
		Browser:        browser,
		ReportUC:       report.NewUseCase(ledgerUC, pdf.NewMarotoPDFGenerator(), m, nil),
		MetricsHandler: m.Handler(),
		JWTSecret:      testJWTSecret,
	})
	return &apiFixture{app: app, browser: browser}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[dto.ErrorResponse](t, resp).Code
}

func (f *apiFixture) createProduct(t *testing.T, token string, body map[string]any) dto.ProductResponse {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/products", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

func laptop() map[string]any {
	return map[string]any{
		"name": "Laptop Pro 15\"", "category": "Electronics", "current_stock": 20,
		"min_threshold": 10, "max_threshold": 50, "price": "1200", "supplier": "TechCorp",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@company.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestLogin_FaltanCampos(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@company.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestLogout_InvalidaElToken(t *testing.T) {
	f := newAPI(t)
	token := f.login(t, "admin@company.com", "admin123")

	resp := f.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "Admin User", me.Name)
	assert.Equal(t, "admin", me.Role)

	resp = f.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/products", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", errorCode(t, resp))
}

func TestProtegido_SinToken(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Products / stock / shipments
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_SoloAdmin(t *testing.T) {
	f := newAPI(t)
	staff := f.login(t, "staff@company.com", "staff123")

	resp := f.do(t, http.MethodPost, "/api/products", staff, laptop())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))

	resp = f.do(t, http.MethodPost, "/api/categories", staff, dto.CreateCategoryRequest{Name: "Toys"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProductFlow(t *testing.T) {
	f := newAPI(t)
	admin := f.login(t, "admin@company.com", "admin123")
	staff := f.login(t, "staff@company.com", "staff123")

	p := f.createProduct(t, admin, laptop())
	assert.Equal(t, 20, p.CurrentStock)
	assert.Equal(t, "normal", p.StockStatus)
	assert.Equal(t, "24000", p.StockValue.String())

	resp := f.do(t, http.MethodGet, "/api/products?search=laptop", staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ListResponse[dto.ProductResponse]](t, resp)
	require.Equal(t, 1, list.Total)

	resp = f.do(t, http.MethodGet, "/api/products/"+p.ID, staff, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = f.do(t, http.MethodGet, "/api/products/missing", staff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// staff puede actualizar stock
	resp = f.do(t, http.MethodPut, "/api/products/"+p.ID+"/stock", staff, map[string]any{
		"new_stock": 15, "action": "remove", "notes": "venta", "price": "1250",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	upd := decode[dto.StockUpdateResponse](t, resp)
	assert.Equal(t, 15, upd.Product.CurrentStock)
	assert.Equal(t, 5, upd.Log.Quantity)
	assert.Equal(t, "Staff User", upd.Log.User)
	require.NotNil(t, upd.Log.PriceChange)

	resp = f.do(t, http.MethodPut, "/api/products/"+p.ID+"/stock", staff, map[string]any{"new_stock": 1, "action": "explode"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = f.do(t, http.MethodPut, "/api/products/"+p.ID+"/stock", staff, map[string]any{"new_stock": 40, "action": "remove"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "remove que sube el stock")
	resp = f.do(t, http.MethodPut, "/api/products/missing/stock", staff, map[string]any{"new_stock": 1, "action": "set"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/products/stats", staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.InventoryStatsResponse](t, resp)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, "18750", stats.TotalValue.String())

	resp = f.do(t, http.MethodGet, "/api/logs?action=remove", staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logs := decode[dto.ListResponse[dto.StockLogResponse]](t, resp)
	assert.Equal(t, 1, logs.Total)

	resp = f.do(t, http.MethodGet, "/api/categories", staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cats := decode[dto.ListResponse[string]](t, resp)
	assert.Contains(t, cats.Items, "Electronics")
}

func TestShipmentFlow(t *testing.T) {
	f := newAPI(t)
	admin := f.login(t, "admin@company.com", "admin123")
	p := f.createProduct(t, admin, map[string]any{
		"name": "Widget", "category": "Home & Kitchen", "current_stock": 10,
		"min_threshold": 2, "max_threshold": 50, "price": "100", "supplier": "Acme",
	})

	resp := f.do(t, http.MethodPost, "/api/shipments", admin, map[string]any{
		"product_id": p.ID, "quantity": 2, "shipping_fee_percentage": "10", "gst_percentage": "5",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CreateShipmentResponse](t, resp)
	assert.Equal(t, "230", created.Shipment.TotalValue.String())
	assert.Equal(t, 8, created.Product.CurrentStock)

	resp = f.do(t, http.MethodPost, "/api/shipments", admin, map[string]any{"product_id": p.ID, "quantity": 9})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	stockErr := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", stockErr.Code)
	assert.Equal(t, "Only 8 units are available in stock. Cannot mark 9 units for shipment.", stockErr.Message)

	resp = f.do(t, http.MethodPost, "/api/shipments", admin, map[string]any{"product_id": "missing", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = f.do(t, http.MethodPost, "/api/shipments", admin, map[string]any{"product_id": p.ID, "quantity": 1, "gst_percentage": "150"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/shipments/summary", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	totals := decode[dto.ShipmentTotalsResponse](t, resp)
	assert.Equal(t, 1, totals.Count)
	assert.Equal(t, "20", totals.ShippingFees.String())

	resp = f.do(t, http.MethodGet, "/api/shipment-logs", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.ListResponse[dto.ShipmentLogResponse]](t, resp).Total)

	resp = f.do(t, http.MethodDelete, "/api/shipments/"+created.Shipment.ID, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	removed := decode[dto.RemoveShipmentResponse](t, resp)
	require.NotNil(t, removed.Product)
	assert.Equal(t, 10, removed.Product.CurrentStock)

	resp = f.do(t, http.MethodDelete, "/api/shipments/"+created.Shipment.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alerts / notifications
// ──────────────────────────────────────────────────────────────────────────────

func TestAlertsFlow(t *testing.T) {
	f := newAPI(t)
	admin := f.login(t, "admin@company.com", "admin123")
	p := f.createProduct(t, admin, laptop())

	resp := f.do(t, http.MethodPut, "/api/products/"+p.ID+"/stock", admin, map[string]any{"new_stock": 0, "action": "set"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/alerts", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.AlertListResponse](t, resp)
	require.Equal(t, 1, list.Total)
	a := list.Items[0]
	assert.Equal(t, "out_of_stock", a.Type)
	assert.Equal(t, "high", a.Severity)
	assert.Equal(t, 1, list.Priorities.High)

	resp = f.do(t, http.MethodPost, "/api/alerts/"+a.ID+"/acknowledge", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ack := decode[dto.AcknowledgeResponse](t, resp)
	assert.True(t, ack.Alert.Acknowledged)
	assert.Equal(t, p.ID, ack.RestockProductID)

	resp = f.do(t, http.MethodGet, "/api/alerts", admin, nil)
	assert.Equal(t, 0, decode[dto.AlertListResponse](t, resp).Total)
	resp = f.do(t, http.MethodGet, "/api/alerts?include_acknowledged=true", admin, nil)
	assert.Equal(t, 1, decode[dto.AlertListResponse](t, resp).Total)

	resp = f.do(t, http.MethodPost, "/api/alerts/missing/dismiss", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// la alerta con permiso en default abre la solicitud del navegador
	resp = f.do(t, http.MethodGet, "/api/notifications/browser", admin, nil)
	feed := decode[dto.BrowserFeedResponse](t, resp)
	assert.Equal(t, notification.PermissionDefault, feed.Permission)
	assert.True(t, feed.Pending)
	assert.Empty(t, feed.Notifications)
}

func TestNotifications(t *testing.T) {
	f := newAPI(t)
	token := f.login(t, "staff@company.com", "staff123")

	resp := f.do(t, http.MethodGet, "/api/notifications/settings", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settings := decode[map[string]bool](t, resp)
	assert.Equal(t, map[string]bool{"browser": true, "email": true, "slack": false}, settings)

	resp = f.do(t, http.MethodPut, "/api/notifications/settings", token, dto.UpdateNotificationSettingRequest{Key: "slack", Value: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[map[string]bool](t, resp)["slack"])

	resp = f.do(t, http.MethodPut, "/api/notifications/settings", token, dto.UpdateNotificationSettingRequest{Key: "sms", Value: true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/notifications/test", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/notifications/browser/permission", token, dto.PermissionRequest{Granted: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, notification.PermissionGranted, decode[dto.BrowserFeedResponse](t, resp).Permission)

	resp = f.do(t, http.MethodPost, "/api/notifications/test", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = f.do(t, http.MethodGet, "/api/notifications/browser", token, nil)
	feed := decode[dto.BrowserFeedResponse](t, resp)
	require.Len(t, feed.Notifications, 1)
	assert.Equal(t, "InventoryPro Alert - Test Product", feed.Notifications[0].Title)

	resp = f.do(t, http.MethodPost, "/api/notifications/settings/reset", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[map[string]bool](t, resp)["slack"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Reports / metrics
// ──────────────────────────────────────────────────────────────────────────────

func TestReports(t *testing.T) {
	f := newAPI(t)
	admin := f.login(t, "admin@company.com", "admin123")

	resp := f.do(t, http.MethodGet, "/api/reports/export?type=inventory", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "NO_DATA", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/reports/summary?type=bogus", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	f.createProduct(t, admin, laptop())

	resp = f.do(t, http.MethodGet, "/api/reports/summary?type=inventory&range=7d", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.ReportSummaryResponse](t, resp)
	assert.Equal(t, "Last 7 Days", summary.RangeLabel)

	resp = f.do(t, http.MethodGet, "/api/reports/export?type=inventory&range=7d", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventory-report-last-7-days-")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = f.do(t, http.MethodGet, "/api/reports/export?type=shipment", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/reports/daily", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	daily := decode[dto.DailyReportResponse](t, resp)
	assert.Equal(t, 1, daily.Summary.TotalActivities)

	resp = f.do(t, http.MethodGet, "/api/reports/daily?format=pdf", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventory-daily-report-")
}

func TestMetricsEndpoint(t *testing.T) {
	f := newAPI(t)
	f.do(t, http.MethodGet, "/health", "", nil)

	resp := f.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestConcurrentStockUpdates(t *testing.T) {
	f := newAPI(t)
	admin := f.login(t, "admin@company.com", "admin123")
	p := f.createProduct(t, admin, laptop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			raw, _ := json.Marshal(map[string]any{"new_stock": 30 + n, "action": "set"})
			req := httptest.NewRequest(http.MethodPut, "/api/products/"+p.ID+"/stock", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+admin)
			resp, err := f.app.Test(req, -1)
			if err == nil {
				resp.Body.Close()
			}
		}(i)
	}
	wg.Wait()

	resp := f.do(t, http.MethodGet, "/api/logs", admin, nil)
	logs := decode[dto.ListResponse[dto.StockLogResponse]](t, resp)
	assert.Equal(t, 11, logs.Total, "alta + 10 actualizaciones")
}
