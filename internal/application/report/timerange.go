// Package report agrega los datos del ledger para los reportes PDF y su resumen JSON.
package report

import (
	"strings"
	"time"
)

// TimeRange ventana de un reporte por rango.
type TimeRange struct {
	Token string
	Label string
	days  int
	years int
}

// CustomRangeLabel etiqueta de un token no reconocido (ventana de 30 días).
const CustomRangeLabel = "Custom Range"

var timeRanges = map[string]TimeRange{
	"7d":  {Token: "7d", Label: "Last 7 Days", days: 7},
	"30d": {Token: "30d", Label: "Last 30 Days", days: 30},
	"90d": {Token: "90d", Label: "Last 90 Days", days: 90},
	"1y":  {Token: "1y", Label: "Last Year", years: 1},
}

// ParseTimeRange 7d, 30d, 90d o 1y; cualquier otro valor es "Custom Range" de 30 días.
func ParseTimeRange(token string) TimeRange {
	if r, ok := timeRanges[strings.TrimSpace(token)]; ok {
		return r
	}
	return TimeRange{Token: token, Label: CustomRangeLabel, days: 30}
}

// Cutoff inicio de la ventana: now menos los días del rango, o menos un año.
func (r TimeRange) Cutoff(now time.Time) time.Time {
	if r.years > 0 {
		return now.AddDate(-r.years, 0, 0)
	}
	return now.AddDate(0, 0, -r.days)
}

// Slug etiqueta en minúsculas con guiones ("Last 30 Days" → "last-30-days").
func (r TimeRange) Slug() string {
	return strings.Join(strings.Fields(strings.ToLower(r.Label)), "-")
}

// RangeFileName <inventory|shipment>-report-<rango>-<YYYY-MM-DD>.pdf
func RangeFileName(kind Kind, r TimeRange, now time.Time) string {
	return string(kind) + "-report-" + r.Slug() + "-" + now.Format("2006-01-02") + ".pdf"
}

// DailyFileName inventory-daily-report-<YYYY-MM-DD>.pdf
func DailyFileName(now time.Time) string {
	return "inventory-daily-report-" + now.Format("2006-01-02") + ".pdf"
}
