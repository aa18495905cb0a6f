package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/application/report"
)

// ReportSummaryResponse agregados de GET /reports/summary.
type ReportSummaryResponse struct {
	Kind            string                `json:"kind"`
	Range           string                `json:"range"`
	RangeLabel      string                `json:"range_label"`
	GeneratedAt     time.Time             `json:"generated_at"`
	Inventory       *InventorySummaryDTO  `json:"inventory,omitempty"`
	Categories      []CategoryValueDTO    `json:"categories,omitempty"`
	TopStock        []report.StockLevel   `json:"top_stock,omitempty"`
	Shipment        *ShipmentSummaryDTO   `json:"shipment,omitempty"`
	TopShipments    []ShipmentResponse    `json:"top_shipments,omitempty"`
	ShipmentsByCat  []CategoryShipmentDTO `json:"shipments_by_category,omitempty"`
	Activity        ActivitySummaryDTO    `json:"activity"`
	Trend           []report.TrendPoint   `json:"trend"`
	Recommendations []string              `json:"recommendations"`
}

type InventorySummaryDTO struct {
	TotalProducts int             `json:"total_products"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockItems int             `json:"low_stock_items"`
	Activities    int             `json:"activities"`
	AvgStockLevel int             `json:"avg_stock_level"`
}

type ShipmentSummaryDTO struct {
	TotalShipments  int             `json:"total_shipments"`
	TotalQuantity   int             `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	GSTCollected    decimal.Decimal `json:"gst_collected"`
	ShippingRevenue decimal.Decimal `json:"shipping_revenue"`
}

type CategoryValueDTO struct {
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Value decimal.Decimal `json:"value"`
	Share decimal.Decimal `json:"share"`
}

type CategoryShipmentDTO struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	TotalValue decimal.Decimal `json:"total_value"`
	GSTAmount  decimal.Decimal `json:"gst_amount"`
	Share      decimal.Decimal `json:"share"`
}

type ActivitySummaryDTO struct {
	Additions int                `json:"additions"`
	Removals  int                `json:"removals"`
	Total     int                `json:"total"`
	Recent    []StockLogResponse `json:"recent"`
}

func ReportSummaryFrom(r *report.RangeReport) ReportSummaryResponse {
	out := ReportSummaryResponse{
		Kind:        string(r.Kind),
		Range:       r.Range.Token,
		RangeLabel:  r.Range.Label,
		GeneratedAt: r.GeneratedAt,
		Activity: ActivitySummaryDTO{
			Additions: r.Activity.Additions,
			Removals:  r.Activity.Removals,
			Total:     r.Activity.Total,
			Recent:    StockLogsFromEntities(r.Activity.Recent),
		},
		Trend:           r.Trend,
		Recommendations: r.Recommendations,
	}
	switch r.Kind {
	case report.KindShipment:
		out.Shipment = &ShipmentSummaryDTO{
			TotalShipments:  r.Shipment.TotalShipments,
			TotalQuantity:   r.Shipment.TotalQuantity,
			TotalValue:      Money(r.Shipment.TotalValue),
			GSTCollected:    Money(r.Shipment.GSTCollected),
			ShippingRevenue: Money(r.Shipment.ShippingRevenue),
		}
		out.TopShipments = ShipmentsFromEntities(r.TopShipments)
		for _, c := range r.ShipmentCategories {
			out.ShipmentsByCat = append(out.ShipmentsByCat, CategoryShipmentDTO{
				Name: c.Name, Quantity: c.Quantity, TotalValue: Money(c.TotalValue),
				GSTAmount: Money(c.GSTAmount), Share: c.Share.Round(1),
			})
		}
	default:
		out.Inventory = &InventorySummaryDTO{
			TotalProducts: r.Inventory.TotalProducts,
			TotalValue:    Money(r.Inventory.TotalValue),
			LowStockItems: r.Inventory.LowStockItems,
			Activities:    r.Inventory.Activities,
			AvgStockLevel: r.Inventory.AvgStockLevel,
		}
		for _, c := range r.Categories {
			out.Categories = append(out.Categories, CategoryValueDTO{
				Name: c.Name, Stock: c.Stock, Value: Money(c.Value), Share: c.Share.Round(1),
			})
		}
		out.TopStock = r.TopStock
	}
	return out
}

// DailyReportResponse resumen de GET /reports/daily?format=json.
type DailyReportResponse struct {
	Date    string              `json:"date"`
	Summary report.DailySummary `json:"summary"`
	Entries []DailyEntryDTO     `json:"entries"`
}

type DailyEntryDTO struct {
	Kind          string    `json:"kind"`
	Timestamp     time.Time `json:"timestamp"`
	ProductName   string    `json:"product_name"`
	Action        string    `json:"action"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	User          string    `json:"user"`
	Notes         string    `json:"notes"`
}

func DailyReportFrom(r *report.DailyReport) DailyReportResponse {
	entries := make([]DailyEntryDTO, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = DailyEntryDTO{
			Kind: e.Kind, Timestamp: e.Timestamp, ProductName: e.ProductName, Action: e.Action,
			Quantity: e.Quantity, PreviousStock: e.PreviousStock, NewStock: e.NewStock,
			User: e.User, Notes: e.DisplayNotes(),
		}
	}
	return DailyReportResponse{Date: r.Date.Format("2006-01-02"), Summary: r.Summary, Entries: entries}
}
