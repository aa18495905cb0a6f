package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// AlertSeverity aplica la regla de severidad: stock 0 → high, stock <= min/2 → high, resto medium.
// min/2 es división real: con min=15 el límite es 7.5.
func AlertSeverity(currentStock, minThreshold int) string {
	if currentStock == 0 {
		return entity.SeverityHigh
	}
	if float64(currentStock) <= float64(minThreshold)/2 {
		return entity.SeverityHigh
	}
	return entity.SeverityMedium
}

// AlertTypeFor devuelve out_of_stock si no queda stock, si no low_stock.
func AlertTypeFor(currentStock int) string {
	if currentStock == 0 {
		return entity.AlertTypeOutOfStock
	}
	return entity.AlertTypeLowStock
}

type alertKey struct {
	productName string
	alertType   string
}

// DeriveAlerts genera las alertas nuevas para los productos con stock <= MinThreshold.
// No emite una alerta si ya existe otra sin reconocer con el mismo (ProductName, Type),
// por lo que ejecutar dos veces sobre la misma colección no agrega nada.
func DeriveAlerts(products []*entity.Product, existing []*entity.Alert, now time.Time) []*entity.Alert {
	active := make(map[alertKey]struct{}, len(existing))
	for _, a := range existing {
		if a.Acknowledged {
			continue
		}
		active[alertKey{a.ProductName, a.Type}] = struct{}{}
	}

	var out []*entity.Alert
	for _, p := range products {
		if p.CurrentStock > p.MinThreshold {
			continue
		}
		typ := AlertTypeFor(p.CurrentStock)
		key := alertKey{p.Name, typ}
		if _, ok := active[key]; ok {
			continue
		}
		active[key] = struct{}{}
		out = append(out, &entity.Alert{
			ID:          uuid.New().String(),
			Type:        typ,
			ProductID:   p.ID,
			ProductName: p.Name,
			Message:     alertMessage(p),
			Severity:    AlertSeverity(p.CurrentStock, p.MinThreshold),
			Timestamp:   now,
		})
	}
	return out
}

func alertMessage(p *entity.Product) string {
	if p.CurrentStock == 0 {
		return "Product is out of stock"
	}
	return fmt.Sprintf("Stock level is below minimum threshold (%d/%d units)", p.CurrentStock, p.MinThreshold)
}
