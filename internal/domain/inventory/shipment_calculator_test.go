package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventorypro-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Vector de referencia: precio 100, flete 10%, GST 5%, 2 unidades → 10 / 5 / 230.
func TestCalcShipment_VectorReferencia(t *testing.T) {
	got := inventory.CalcShipment(dec("100"), dec("10"), dec("5"), 2)

	assert.True(t, got.ShippingFee.Equal(dec("10")), "flete: %s", got.ShippingFee)
	assert.True(t, got.GSTAmount.Equal(dec("5")), "gst: %s", got.GSTAmount)
	assert.True(t, got.TotalValue.Equal(dec("230")), "total: %s", got.TotalValue)
}

// No hay redondeo interno: los decimales se conservan completos.
func TestCalcShipment_SinRedondeo(t *testing.T) {
	got := inventory.CalcShipment(dec("999"), dec("2.5"), dec("18"), 3)

	assert.True(t, got.ShippingFee.Equal(dec("24.975")))
	assert.True(t, got.GSTAmount.Equal(dec("179.82")))
	assert.True(t, got.TotalValue.Equal(dec("3611.385")))
}

func TestCalcShipment_CantidadCero(t *testing.T) {
	got := inventory.CalcShipment(dec("150"), dec("10"), dec("5"), 0)
	assert.True(t, got.TotalValue.IsZero())
	assert.True(t, got.ShippingFee.Equal(dec("15")), "el flete unitario no depende de la cantidad")
}

func TestValidPercentage(t *testing.T) {
	assert.True(t, inventory.ValidPercentage(dec("0")))
	assert.True(t, inventory.ValidPercentage(dec("100")))
	assert.True(t, inventory.ValidPercentage(dec("18.5")))
	assert.False(t, inventory.ValidPercentage(dec("-0.01")))
	assert.False(t, inventory.ValidPercentage(dec("100.01")))
}
