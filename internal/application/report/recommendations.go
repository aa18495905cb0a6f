package report

import (
	"fmt"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

var generalRecommendations = []string{
	"• Implement automated reorder points for critical items",
	"• Review supplier performance and delivery times",
	"• Consider demand forecasting for better planning",
}

// InventoryRecommendations recomendaciones del reporte de inventario; logs son los del rango.
func InventoryRecommendations(products []*entity.Product, categories []CategoryValue, logs []*entity.StockLog) []string {
	var out []string
	summary := SummarizeInventory(products, logs)
	if summary.LowStockItems > 0 {
		out = append(out, fmt.Sprintf("• Restock %d low-stock items immediately", summary.LowStockItems))
	}
	if len(categories) > 0 {
		top := categories[0]
		for _, c := range categories[1:] {
			if c.Value.GreaterThan(top.Value) {
				top = c
			}
		}
		out = append(out, fmt.Sprintf("• Focus on %s category (highest value: %s)", top.Name, FormatMoney(top.Value)))
	}
	if len(logs) < 5 {
		out = append(out, "• Increase inventory monitoring frequency")
	}
	// promedio exacto, sin redondear
	if n := len(products); n == 0 || stockSum(products) < 20*n {
		out = append(out, "• Consider increasing overall stock levels")
	}
	return append(out, generalRecommendations...)
}

// ShipmentRecommendations recomendaciones del reporte de despachos.
func ShipmentRecommendations(items []*entity.ShipmentItem) []string {
	var out []string
	s := SummarizeShipments(items)
	if s.TotalShipments < 5 {
		out = append(out, "• Consider increasing shipment frequency to improve cash flow")
	}
	if s.TotalShipments == 0 || s.TotalValue.LessThan(thousand.Mul(decimalInt(s.TotalShipments))) {
		out = append(out, "• Focus on higher-value shipments to improve profitability")
	}
	out = append(out,
		"• Review GST calculations for compliance accuracy",
		"• Optimize shipping fees based on market rates",
		"• Consider bulk shipment discounts for large orders",
	)
	return append(out, generalRecommendations...)
}

func stockSum(products []*entity.Product) int {
	sum := 0
	for _, p := range products {
		sum += p.CurrentStock
	}
	return sum
}
