package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// AllCategories valor de filtro que desactiva el filtro por categoría.
const AllCategories = "all"

// ProductFilter búsqueda (nombre o categoría, sin distinguir mayúsculas) y categoría exacta.
type ProductFilter struct {
	Search   string
	Category string
}

func (f ProductFilter) match(p *entity.Product) bool {
	if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
		return false
	}
	return containsFold(f.Search, p.Name, p.Category)
}

// LogFilter filtro de logs por texto libre, acción y usuario.
type LogFilter struct {
	Search string
	Action string
	User   string
}

func (f LogFilter) matchFields(action, user string, fields ...string) bool {
	if f.Action != "" && f.Action != "all" && action != f.Action {
		return false
	}
	if f.User != "" && f.User != "all" && user != f.User {
		return false
	}
	return containsFold(f.Search, fields...)
}

func containsFold(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// ShipmentTotals agregados de las líneas de despacho.
type ShipmentTotals struct {
	Count         int
	TotalQuantity int
	TotalValue    decimal.Decimal
	ShippingFees  decimal.Decimal // Σ fee × qty
	GSTAmount     decimal.Decimal // Σ gst × qty
}

// InventoryStats resumen del tablero de productos.
type InventoryStats struct {
	TotalProducts int
	LowStockCount int // stock <= MinThreshold
	TotalValue    decimal.Decimal
}

// Snapshot copia de todas las colecciones del ledger (usada por reportes).
type Snapshot struct {
	Products     []*entity.Product
	StockLogs    []*entity.StockLog
	Shipments    []*entity.ShipmentItem
	ShipmentLogs []*entity.ShipmentLog
}

// ListProducts lista productos aplicando el filtro.
func (uc *LedgerUseCase) ListProducts(ctx context.Context, f ProductFilter) ([]*entity.Product, error) {
	all, err := uc.repos.Products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]*entity.Product, 0, len(all))
	for _, p := range all {
		if f.match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetProduct devuelve (nil, nil) si no existe.
func (uc *LedgerUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListCategories categorías registradas en orden de alta.
func (uc *LedgerUseCase) ListCategories(ctx context.Context) ([]string, error) {
	return uc.repos.Categories.List(ctx)
}

// ListStockLogs logs de stock del más reciente al más antiguo.
func (uc *LedgerUseCase) ListStockLogs(ctx context.Context, f LogFilter) ([]*entity.StockLog, error) {
	all, err := uc.repos.StockLogs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stock logs: %w", err)
	}
	out := make([]*entity.StockLog, 0, len(all))
	for _, l := range all {
		if f.matchFields(l.Action, l.User, l.ProductName, l.Notes, l.User) {
			out = append(out, l)
		}
	}
	return out, nil
}

// ListShipments líneas de despacho filtradas por texto y categoría.
func (uc *LedgerUseCase) ListShipments(ctx context.Context, f ProductFilter) ([]*entity.ShipmentItem, error) {
	all, err := uc.repos.Shipments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	out := make([]*entity.ShipmentItem, 0, len(all))
	for _, s := range all {
		if f.Category != "" && f.Category != AllCategories && s.Category != f.Category {
			continue
		}
		if containsFold(f.Search, s.ProductName, s.Category) {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListShipmentLogs logs de despacho del más reciente al más antiguo.
func (uc *LedgerUseCase) ListShipmentLogs(ctx context.Context, f LogFilter) ([]*entity.ShipmentLog, error) {
	all, err := uc.repos.ShipmentLogs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipment logs: %w", err)
	}
	out := make([]*entity.ShipmentLog, 0, len(all))
	for _, l := range all {
		if f.matchFields(l.Action, l.User, l.ProductName, l.Notes, l.User) {
			out = append(out, l)
		}
	}
	return out, nil
}

// ShipmentTotals suma cantidad, valor, fletes y GST de todas las líneas.
func (uc *LedgerUseCase) ShipmentTotals(ctx context.Context) (ShipmentTotals, error) {
	items, err := uc.repos.Shipments.List(ctx)
	if err != nil {
		return ShipmentTotals{}, fmt.Errorf("shipment totals: %w", err)
	}
	return SumShipments(items), nil
}

// SumShipments agrega las líneas sin redondear.
func SumShipments(items []*entity.ShipmentItem) ShipmentTotals {
	t := ShipmentTotals{Count: len(items)}
	for _, s := range items {
		t.TotalQuantity += s.Quantity
		t.TotalValue = t.TotalValue.Add(s.TotalValue)
		t.ShippingFees = t.ShippingFees.Add(s.TotalShippingFee())
		t.GSTAmount = t.GSTAmount.Add(s.TotalGST())
	}
	return t
}

// InventoryStats total de productos, cuántos están en o por debajo del mínimo y valor total.
func (uc *LedgerUseCase) InventoryStats(ctx context.Context) (InventoryStats, error) {
	products, err := uc.repos.Products.List(ctx)
	if err != nil {
		return InventoryStats{}, fmt.Errorf("inventory stats: %w", err)
	}
	s := InventoryStats{TotalProducts: len(products)}
	for _, p := range products {
		if p.StockStatus() == entity.StockStatusLow {
			s.LowStockCount++
		}
		s.TotalValue = s.TotalValue.Add(p.StockValue())
	}
	return s, nil
}

// Snapshot toma una copia de las colecciones; los cambios posteriores no la afectan.
func (uc *LedgerUseCase) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Products, err = uc.repos.Products.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot products: %w", err)
	}
	if snap.StockLogs, err = uc.repos.StockLogs.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot stock logs: %w", err)
	}
	if snap.Shipments, err = uc.repos.Shipments.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot shipments: %w", err)
	}
	if snap.ShipmentLogs, err = uc.repos.ShipmentLogs.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot shipment logs: %w", err)
	}
	return &snap, nil
}
