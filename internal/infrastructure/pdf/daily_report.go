package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/core"

	"github.com/jhoicas/inventorypro-api/internal/application/report"
)

func dailySummaryRows(s report.DailySummary) []core.Row {
	rows := []core.Row{sectionTitle("Daily Summary")}
	return append(rows, bulletRows([]string{
		"• Total Activities: " + report.FormatInt(s.TotalActivities),
		"• Stock Additions: " + report.FormatInt(s.StockAdditions),
		"• Stock Removals: " + report.FormatInt(s.StockRemovals),
		"• Price Changes: " + report.FormatInt(s.PriceChanges),
		"• Supplier Changes: " + report.FormatInt(s.SupplierChanges),
	})...)
}

var dailyColumns = []column{
	{"Time", 1, align.Left},
	{"Product", 2, align.Left},
	{"Action", 2, align.Center},
	{"Qty", 1, align.Right},
	{"Stock Change", 2, align.Center},
	{"User", 1, align.Left},
	{"Notes", 3, align.Left},
}

func dailyTableRows(entries []report.DailyEntry) []core.Row {
	rows := []core.Row{sectionTitle("Activity Details")}
	data := make([][]string, 0, len(entries))
	for _, e := range entries {
		change := "-"
		if e.Kind == report.EntryInventory {
			change = report.FormatInt(e.PreviousStock) + " → " + report.FormatInt(e.NewStock)
		}
		data = append(data, []string{
			e.Timestamp.Format("03:04 PM"), truncate(e.ProductName, 20), e.Action,
			report.FormatInt(e.Quantity), change, e.User, truncate(e.DisplayNotes(), 60),
		})
	}
	return append(rows, table(dailyColumns, data)...)
}

func dailyFooterRow() core.Row {
	return footerRow("InventoryPro - Inventory Management System", "")
}
