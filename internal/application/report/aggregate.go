package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// LowStockReportLevel stock a partir del cual un producto cuenta como bajo en los reportes.
const LowStockReportLevel = 10

// Umbrales de la etiqueta de nivel de stock.
const (
	stockLevelHigh   = 50
	stockLevelMedium = 20
)

var hundred = decimal.NewFromInt(100)

// FilterLogsSince conserva los logs con Timestamp >= cutoff, en el mismo orden.
func FilterLogsSince(logs []*entity.StockLog, cutoff time.Time) []*entity.StockLog {
	out := make([]*entity.StockLog, 0, len(logs))
	for _, l := range logs {
		if !l.Timestamp.Before(cutoff) {
			out = append(out, l)
		}
	}
	return out
}

// CategoryValue valor y stock de una categoría.
type CategoryValue struct {
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Value decimal.Decimal `json:"value"`
	Share decimal.Decimal `json:"share"` // % del valor total
}

// GroupProductsByCategory agrupa en orden de primera aparición.
func GroupProductsByCategory(products []*entity.Product) []CategoryValue {
	idx := map[string]int{}
	var out []CategoryValue
	total := decimal.Zero
	for _, p := range products {
		i, ok := idx[p.Category]
		if !ok {
			i = len(out)
			idx[p.Category] = i
			out = append(out, CategoryValue{Name: p.Category})
		}
		v := p.StockValue()
		out[i].Stock += p.CurrentStock
		out[i].Value = out[i].Value.Add(v)
		total = total.Add(v)
	}
	for i := range out {
		out[i].Share = share(out[i].Value, total)
	}
	return out
}

// CategoryShipment agregado de despachos por categoría.
type CategoryShipment struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	TotalValue decimal.Decimal `json:"total_value"`
	GSTAmount  decimal.Decimal `json:"gst_amount"` // Σ gst × qty
	Share      decimal.Decimal `json:"share"`
}

// GroupShipmentsByCategory agrupa las líneas de despacho en orden de primera aparición.
func GroupShipmentsByCategory(items []*entity.ShipmentItem) []CategoryShipment {
	idx := map[string]int{}
	var out []CategoryShipment
	total := decimal.Zero
	for _, s := range items {
		i, ok := idx[s.Category]
		if !ok {
			i = len(out)
			idx[s.Category] = i
			out = append(out, CategoryShipment{Name: s.Category})
		}
		out[i].Quantity += s.Quantity
		out[i].TotalValue = out[i].TotalValue.Add(s.TotalValue)
		out[i].GSTAmount = out[i].GSTAmount.Add(s.TotalGST())
		total = total.Add(s.TotalValue)
	}
	for i := range out {
		out[i].Share = share(out[i].TotalValue, total)
	}
	return out
}

func share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

// StockLevel fila del ranking de stock.
type StockLevel struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	Level string `json:"level"` // High | Medium | Low
}

// StockLevelLabel High (>50), Medium (>20) o Low.
func StockLevelLabel(stock int) string {
	switch {
	case stock > stockLevelHigh:
		return "High"
	case stock > stockLevelMedium:
		return "Medium"
	}
	return "Low"
}

// TopStockLevels los n productos con más stock; empates en orden de entrada.
func TopStockLevels(products []*entity.Product, n int) []StockLevel {
	sorted := append([]*entity.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CurrentStock > sorted[j].CurrentStock })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]StockLevel, len(sorted))
	for i, p := range sorted {
		out[i] = StockLevel{Rank: i + 1, Name: p.Name, Stock: p.CurrentStock, Level: StockLevelLabel(p.CurrentStock)}
	}
	return out
}

// TopShipments las n líneas de mayor valor total.
func TopShipments(items []*entity.ShipmentItem, n int) []*entity.ShipmentItem {
	sorted := append([]*entity.ShipmentItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TotalValue.GreaterThan(sorted[j].TotalValue) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// InventorySummary resumen ejecutivo del reporte de inventario.
type InventorySummary struct {
	TotalProducts int             `json:"total_products"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockItems int             `json:"low_stock_items"` // stock <= 10
	Activities    int             `json:"activities"`
	AvgStockLevel int             `json:"avg_stock_level"`
}

// SummarizeInventory usa los logs ya filtrados por rango.
func SummarizeInventory(products []*entity.Product, logs []*entity.StockLog) InventorySummary {
	s := InventorySummary{TotalProducts: len(products), Activities: len(logs)}
	sum := 0
	for _, p := range products {
		s.TotalValue = s.TotalValue.Add(p.StockValue())
		if p.CurrentStock <= LowStockReportLevel {
			s.LowStockItems++
		}
		sum += p.CurrentStock
	}
	if n := len(products); n > 0 {
		s.AvgStockLevel = (2*sum + n) / (2 * n) // redondeo half-up
	}
	return s
}

// ShipmentSummary resumen ejecutivo del reporte de despachos.
type ShipmentSummary struct {
	TotalShipments  int             `json:"total_shipments"`
	TotalQuantity   int             `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	GSTCollected    decimal.Decimal `json:"gst_collected"`
	ShippingRevenue decimal.Decimal `json:"shipping_revenue"`
}

func SummarizeShipments(items []*entity.ShipmentItem) ShipmentSummary {
	t := ledger.SumShipments(items)
	return ShipmentSummary{
		TotalShipments:  t.Count,
		TotalQuantity:   t.TotalQuantity,
		TotalValue:      t.TotalValue,
		GSTCollected:    t.GSTAmount,
		ShippingRevenue: t.ShippingFees,
	}
}

// RecentActivityCount logs que muestra la sección de actividad reciente.
const RecentActivityCount = 5

// ActivitySummary altas, bajas y actividad reciente del rango.
type ActivitySummary struct {
	Additions int                `json:"additions"`
	Removals  int                `json:"removals"`
	Total     int                `json:"total"`
	Recent    []*entity.StockLog `json:"-"`
}

// SummarizeActivity espera los logs del más reciente al más antiguo.
func SummarizeActivity(logs []*entity.StockLog) ActivitySummary {
	s := ActivitySummary{Total: len(logs)}
	for _, l := range logs {
		switch l.Action {
		case entity.StockActionAdd:
			s.Additions++
		case entity.StockActionRemove:
			s.Removals++
		}
	}
	n := len(logs)
	if n > RecentActivityCount {
		n = RecentActivityCount
	}
	s.Recent = logs[:n]
	return s
}

// Entry kinds del reporte diario.
const (
	EntryInventory = "inventory"
	EntryShipment  = "shipment"
)

// DailyEntry fila del reporte diario: un log de stock o de despacho.
type DailyEntry struct {
	Kind           string
	Timestamp      time.Time
	ProductName    string
	Action         string
	Quantity       int
	PreviousStock  int
	NewStock       int
	User           string
	Notes          string
	PriceChange    *entity.PriceChange
	SupplierChange *entity.SupplierChange
}

// DisplayNotes notas con los cambios de precio y proveedor; "-" si queda vacío.
func (e DailyEntry) DisplayNotes() string {
	parts := make([]string, 0, 3)
	if e.Notes != "" {
		parts = append(parts, e.Notes)
	}
	if e.PriceChange != nil {
		parts = append(parts, "Price: RS:"+e.PriceChange.From.String()+" → RS:"+e.PriceChange.To.String())
	}
	if e.SupplierChange != nil {
		parts = append(parts, "Supplier: "+e.SupplierChange.From+" → "+e.SupplierChange.To)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " | ")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DailyEntries logs de stock y de despacho del mismo día calendario que now
// (en la zona de now), del más reciente al más antiguo.
func DailyEntries(stockLogs []*entity.StockLog, shipmentLogs []*entity.ShipmentLog, now time.Time) []DailyEntry {
	loc := now.Location()
	var out []DailyEntry
	for _, l := range stockLogs {
		if !sameDay(l.Timestamp.In(loc), now) {
			continue
		}
		out = append(out, DailyEntry{
			Kind: EntryInventory, Timestamp: l.Timestamp, ProductName: l.ProductName,
			Action: l.Action, Quantity: l.Quantity, PreviousStock: l.PreviousStock, NewStock: l.NewStock,
			User: l.User, Notes: l.Notes, PriceChange: l.PriceChange, SupplierChange: l.SupplierChange,
		})
	}
	for _, l := range shipmentLogs {
		if !sameDay(l.Timestamp.In(loc), now) {
			continue
		}
		out = append(out, DailyEntry{
			Kind: EntryShipment, Timestamp: l.Timestamp, ProductName: l.ProductName,
			Action: l.Action, Quantity: l.Quantity, User: l.User, Notes: l.Notes,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// DailySummary totales del reporte diario.
type DailySummary struct {
	TotalActivities int `json:"total_activities"`
	StockAdditions  int `json:"stock_additions"`
	StockRemovals   int `json:"stock_removals"`
	PriceChanges    int `json:"price_changes"`
	SupplierChanges int `json:"supplier_changes"`
}

func SummarizeDaily(entries []DailyEntry) DailySummary {
	s := DailySummary{TotalActivities: len(entries)}
	for _, e := range entries {
		switch e.Action {
		case entity.StockActionAdd:
			s.StockAdditions++
		case entity.StockActionRemove:
			s.StockRemovals++
		}
		if e.PriceChange != nil {
			s.PriceChanges++
		}
		if e.SupplierChange != nil {
			s.SupplierChanges++
		}
	}
	return s
}
