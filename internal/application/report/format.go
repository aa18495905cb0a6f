package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoney "RS:" con separador de miles y dos decimales (1234.5 → RS:1,234.50).
func FormatMoney(d decimal.Decimal) string {
	return "RS:" + printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// FormatInt entero con separador de miles.
func FormatInt(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatPercent porcentaje con un decimal (12.345 → 12.3%).
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

var thousand = decimal.NewFromInt(1000)

func decimalInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
