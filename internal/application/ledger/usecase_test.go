package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type recordingObserver struct {
	mu    sync.Mutex
	calls [][]*entity.Product
	actor []string
}

func (o *recordingObserver) ProductsChanged(_ context.Context, products []*entity.Product, actor entity.User) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, products)
	o.actor = append(o.actor, actor.Name)
	return nil
}

type recordingPublisher struct {
	events []entity.LedgerEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev entity.LedgerEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

var (
	admin = entity.User{ID: "1", Name: "Admin User", Email: "admin@company.com", Role: entity.RoleAdmin}
	fixed = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc        *ledger.LedgerUseCase
	store     *memory.Store
	observer  *recordingObserver
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	obs := &recordingObserver{}
	pub := &recordingPublisher{}
	uc := ledger.NewLedgerUseCase(memory.NewTxRunner(store), store.Repos(), obs, pub, nil, nil).
		WithClock(func() time.Time { return fixed })
	return &fixture{uc: uc, store: store, observer: obs, publisher: pub}
}

func (f *fixture) addProduct(t *testing.T, name string, stock, minT int, price string) *entity.Product {
	t.Helper()
	p, err := f.uc.AddProduct(context.Background(), admin, ledger.AddProductInput{
		Name: name, Category: "Electronics", CurrentStock: stock,
		MinThreshold: minT, MaxThreshold: 100,
		Price: decimal.RequireFromString(price), Supplier: "Acme",
	})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// AddProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestAddProduct_CreaProductoYLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.uc.AddProduct(ctx, admin, ledger.AddProductInput{
		Name: "Kindle", Category: "Books", CurrentStock: 12,
		MinThreshold: 5, MaxThreshold: 40, Price: decimal.NewFromInt(120), Supplier: "Amazon",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "2024-03-10", p.LastUpdated)

	cats, err := f.uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Contains(t, cats, "Books", "la categoría nueva debe registrarse")

	logs, err := f.uc.ListStockLogs(ctx, ledger.LogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.StockActionAdd, logs[0].Action)
	assert.Equal(t, 0, logs[0].PreviousStock)
	assert.Equal(t, 12, logs[0].NewStock)
	assert.Equal(t, 12, logs[0].Quantity)
	assert.Equal(t, "New product added to inventory", logs[0].Notes)
	assert.Equal(t, "Admin User", logs[0].User)

	require.Len(t, f.observer.calls, 1, "el hook corre después del commit")
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, entity.EventTypeProductCreated, f.publisher.events[0].EventType)
	assert.Equal(t, "Admin User", f.publisher.events[0].Actor)
}

func TestAddProduct_Validacion(t *testing.T) {
	f := newFixture(t)
	cases := []ledger.AddProductInput{
		{Name: "", Category: "X"},
		{Name: "A", Category: " "},
		{Name: "A", Category: "X", CurrentStock: -1},
		{Name: "A", Category: "X", Price: decimal.NewFromInt(-1)},
	}
	for _, in := range cases {
		_, err := f.uc.AddProduct(context.Background(), admin, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, f.observer.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStock
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStock_CantidadEsMagnitudDelCambio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Pixel 8", 20, 5, "700")

	for _, next := range []int{35, 4, 4, 0, 9} {
		before, err := f.uc.GetProduct(ctx, p.ID)
		require.NoError(t, err)

		res, err := f.uc.UpdateStock(ctx, admin, ledger.StockUpdateInput{ProductID: p.ID, NewStock: next, Action: entity.StockActionSet})
		require.NoError(t, err)
		require.NotNil(t, res)

		diff := res.Log.NewStock - res.Log.PreviousStock
		if diff < 0 {
			diff = -diff
		}
		assert.Equal(t, diff, res.Log.Quantity)
		assert.Equal(t, before.CurrentStock, res.Log.PreviousStock)
		assert.Equal(t, next, res.Product.CurrentStock)
	}
}

func TestUpdateStock_CambioDePrecioYProveedor(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "iPhone 15 Pro", 25, 10, "999")

	res, err := f.uc.UpdateStock(context.Background(), admin, ledger.StockUpdateInput{
		ProductID:   p.ID,
		NewStock:    50,
		Action:      entity.StockActionAdd,
		Notes:       "New shipment received from Apple",
		NewPrice:    ptr(decimal.NewFromInt(1099)),
		NewSupplier: ptr("Apple Authorized Reseller"),
	})
	require.NoError(t, err)

	l := res.Log
	require.NotNil(t, l.PriceChange)
	assert.True(t, l.PriceChange.From.Equal(decimal.NewFromInt(999)))
	assert.True(t, l.PriceChange.To.Equal(decimal.NewFromInt(1099)))
	require.NotNil(t, l.SupplierChange)
	assert.Equal(t, "Acme", l.SupplierChange.From)
	assert.Equal(t,
		"New shipment received from Apple | Price updated: RS:999 → RS:1099 | Supplier updated: Acme → Apple Authorized Reseller",
		l.Notes)
	assert.True(t, res.Product.Price.Equal(decimal.NewFromInt(1099)))
	assert.Equal(t, "Apple Authorized Reseller", res.Product.Supplier)
}

func TestUpdateStock_PrecioIgualNoGeneraCambio(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "Router", 5, 1, "50")

	res, err := f.uc.UpdateStock(context.Background(), admin, ledger.StockUpdateInput{
		ProductID: p.ID, NewStock: 6, Action: entity.StockActionAdd,
		NewPrice: ptr(decimal.RequireFromString("50.00")), NewSupplier: ptr("Acme"),
	})
	require.NoError(t, err)
	assert.Nil(t, res.Log.PriceChange)
	assert.Nil(t, res.Log.SupplierChange)
	assert.Empty(t, res.Log.Notes)
}

func TestUpdateStock_ProductoInexistenteEsNoop(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.UpdateStock(context.Background(), admin, ledger.StockUpdateInput{ProductID: "nope", NewStock: 3, Action: entity.StockActionSet})
	require.NoError(t, err)
	assert.Nil(t, res)

	logs, _ := f.uc.ListStockLogs(context.Background(), ledger.LogFilter{})
	assert.Empty(t, logs)
	assert.Empty(t, f.observer.calls, "un no-op no dispara el hook")
}

func TestUpdateStock_Validacion(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "Mouse", 5, 1, "10")

	_, err := f.uc.UpdateStock(context.Background(), admin, ledger.StockUpdateInput{ProductID: p.ID, NewStock: -1, Action: entity.StockActionSet})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateStock(context.Background(), admin, ledger.StockUpdateInput{ProductID: p.ID, NewStock: 1, Action: "teleport"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStock_AccionContraria(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "Monitor", 10, 2, "200")
	ctx := context.Background()

	_, err := f.uc.UpdateStock(ctx, admin, ledger.StockUpdateInput{ProductID: p.ID, NewStock: 4, Action: entity.StockActionAdd})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.UpdateStock(ctx, admin, ledger.StockUpdateInput{ProductID: p.ID, NewStock: 15, Action: entity.StockActionRemove})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.CurrentStock, "el rechazo no toca el stock")
	logs, _ := f.uc.ListStockLogs(ctx, ledger.LogFilter{})
	assert.Len(t, logs, 1, "solo el log de alta")

	res, err := f.uc.UpdateStock(ctx, admin, ledger.StockUpdateInput{ProductID: p.ID, NewStock: 4, Action: entity.StockActionRemove})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Log.Quantity)
	_, err = f.uc.UpdateStock(ctx, admin, ledger.StockUpdateInput{ProductID: p.ID, NewStock: 4, Action: entity.StockActionAdd})
	assert.NoError(t, err, "sin cambio add es válido")
}

// El fallo del publisher no revierte la mutación.
func TestUpdateStock_ErrorDelPublisherNoRevierte(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "Teclado", 5, 1, "30")
	f.publisher.err = errors.New("broker caído")

	res, err := f.uc.UpdateStock(context.Background(), admin, ledger.StockUpdateInput{ProductID: p.ID, NewStock: 9, Action: entity.StockActionAdd})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Product.CurrentStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Shipments
// ──────────────────────────────────────────────────────────────────────────────

func TestAddToShipment_CalculaYDescuentaStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Monitor", 10, 2, "100")

	res, err := f.uc.AddToShipment(ctx, admin, ledger.ShipmentInput{
		ProductID: p.ID, Quantity: 2,
		ShippingFeePct: decimal.NewFromInt(10), GSTPct: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.Item.ShippingFee.Equal(decimal.NewFromInt(10)))
	assert.True(t, res.Item.GSTAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, res.Item.TotalValue.Equal(decimal.NewFromInt(230)))
	assert.Equal(t, 8, res.Product.CurrentStock)

	assert.Equal(t, entity.ShipmentActionMarked, res.Log.Action)
	assert.Equal(t, -2, res.Log.StockChange)
	assert.Equal(t, "Marked 2 units for shipment", res.Log.Notes)

	logs, _ := f.uc.ListStockLogs(ctx, ledger.LogFilter{})
	require.NotEmpty(t, logs)
	assert.Equal(t, entity.StockActionRemove, logs[0].Action, "el más reciente es la salida por despacho")
	assert.Equal(t, "Marked 2 units for shipment", logs[0].Notes)

	totals, err := f.uc.ShipmentTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Count)
	assert.Equal(t, 2, totals.TotalQuantity)
	assert.True(t, totals.ShippingFees.Equal(decimal.NewFromInt(20)))
	assert.True(t, totals.GSTAmount.Equal(decimal.NewFromInt(10)))
}

func TestAddToShipment_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Adidas Ultraboost 22", 3, 15, "180")

	res, err := f.uc.AddToShipment(ctx, admin, ledger.ShipmentInput{ProductID: p.ID, Quantity: 5})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var detail *domain.InsufficientStockError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, 3, detail.Available)
	assert.Equal(t, 5, detail.Requested)

	after, _ := f.uc.GetProduct(ctx, p.ID)
	assert.Equal(t, 3, after.CurrentStock, "el stock nunca queda negativo")
	items, _ := f.uc.ListShipments(ctx, ledger.ProductFilter{})
	assert.Empty(t, items, "la transacción no deja la línea creada")
}

func TestAddToShipment_TodoElStock(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "Webcam", 4, 1, "60")

	res, err := f.uc.AddToShipment(context.Background(), admin, ledger.ShipmentInput{ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Product.CurrentStock)
}

func TestAddToShipment_Validacion(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "Cable", 10, 1, "5")

	for _, in := range []ledger.ShipmentInput{
		{ProductID: p.ID, Quantity: 0},
		{ProductID: p.ID, Quantity: -2},
		{ProductID: p.ID, Quantity: 1, ShippingFeePct: decimal.NewFromInt(101)},
		{ProductID: p.ID, Quantity: 1, GSTPct: decimal.NewFromInt(-1)},
	} {
		_, err := f.uc.AddToShipment(context.Background(), admin, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAddToShipment_ProductoInexistenteEsNoop(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.AddToShipment(context.Background(), admin, ledger.ShipmentInput{ProductID: "ghost", Quantity: 1})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestRemoveFromShipment_DevuelveExactamenteLaCantidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Tablet", 10, 2, "300")

	added, err := f.uc.AddToShipment(ctx, admin, ledger.ShipmentInput{ProductID: p.ID, Quantity: 7})
	require.NoError(t, err)

	removed, err := f.uc.RemoveFromShipment(ctx, admin, added.Item.ID)
	require.NoError(t, err)
	require.NotNil(t, removed.Product)
	assert.Equal(t, 10, removed.Product.CurrentStock)

	logs, _ := f.uc.ListStockLogs(ctx, ledger.LogFilter{})
	assert.Equal(t, entity.StockActionAdd, logs[0].Action)
	assert.Equal(t, "Returned 7 units from shipment to inventory", logs[0].Notes)
	assert.Equal(t, 7, logs[0].Quantity)

	items, _ := f.uc.ListShipments(ctx, ledger.ProductFilter{})
	assert.Empty(t, items)
}

func TestRemoveFromShipment_Inexistente(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.RemoveFromShipment(context.Background(), admin, "missing")
	require.NoError(t, err)
	assert.Nil(t, res)
}

// Si el producto de origen ya no existe la línea se elimina igual y no falla.
func TestRemoveFromShipment_ProductoAusente(t *testing.T) {
	store := memory.NewStore()
	uc := ledger.NewLedgerUseCase(memory.NewTxRunner(store), store.Repos(), nil, nil, nil, nil)
	ctx := context.Background()
	require.NoError(t, store.Repos().Shipments.Create(ctx, &entity.ShipmentItem{ID: "s1", ProductID: "gone", ProductName: "Old", Quantity: 3}))

	res, err := uc.RemoveFromShipment(ctx, admin, "s1")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.Product)

	items, _ := uc.ListShipments(ctx, ledger.ProductFilter{})
	assert.Empty(t, items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestListProducts_Filtros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addProduct(t, "Galaxy Buds", 5, 1, "100")
	_, err := f.uc.AddProduct(ctx, admin, ledger.AddProductInput{Name: "Air Max", Category: "Footwear", CurrentStock: 1, Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	all, _ := f.uc.ListProducts(ctx, ledger.ProductFilter{Category: ledger.AllCategories})
	assert.Len(t, all, 2)

	bySearch, _ := f.uc.ListProducts(ctx, ledger.ProductFilter{Search: "galaxy"})
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Galaxy Buds", bySearch[0].Name)

	byCategoryText, _ := f.uc.ListProducts(ctx, ledger.ProductFilter{Search: "FOOT"})
	assert.Len(t, byCategoryText, 1)

	byCategory, _ := f.uc.ListProducts(ctx, ledger.ProductFilter{Category: "Electronics"})
	assert.Len(t, byCategory, 1)
}

func TestInventoryStats(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "A", 10, 10, "2.5") // low
	f.addProduct(t, "B", 30, 10, "1")

	s, err := f.uc.InventoryStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalProducts)
	assert.Equal(t, 1, s.LowStockCount)
	assert.True(t, s.TotalValue.Equal(decimal.NewFromInt(55)))
}

func TestSeed_CargaDemoYEjecutaHook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.Seed(ctx, ledger.DemoData(fixed)))

	products, _ := f.uc.ListProducts(ctx, ledger.ProductFilter{})
	assert.Len(t, products, 8)
	logs, _ := f.uc.ListStockLogs(ctx, ledger.LogFilter{})
	assert.Len(t, logs, 8)
	assert.Equal(t, "today-1", logs[0].ID, "newest-first")

	cats, _ := f.uc.ListCategories(ctx)
	assert.Equal(t, []string{"Electronics", "Footwear", "Clothing", "Home & Kitchen"}, cats)

	require.Len(t, f.observer.calls, 1)
	assert.Equal(t, "System", f.observer.actor[0])
}
