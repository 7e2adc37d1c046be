package venta

import "github.com/shopspring/decimal"

// TipoIVA selects the tax rate applied to the cart subtotal.
// The set is closed: anything else falls back to sin_iva.
type TipoIVA string

const (
	IVASin   TipoIVA = "sin_iva"   // 0%
	IVAMedia TipoIVA = "media_iva" // 10.5%
	IVAFull  TipoIVA = "iva"       // 21%
)

var (
	tasaMedia = decimal.NewFromFloat(0.105)
	tasaFull  = decimal.NewFromFloat(0.21)
)

// Tasa returns the tax rate for the mode.
func (t TipoIVA) Tasa() decimal.Decimal {
	switch t {
	case IVAMedia:
		return tasaMedia
	case IVAFull:
		return tasaFull
	default:
		return decimal.Zero
	}
}

// SubtotalLinea computes precio × cantidad. Callers clamp cantidad ≥ 1 and
// precio ≥ 0 before reaching here.
func SubtotalLinea(precio decimal.Decimal, cantidad int) decimal.Decimal {
	return precio.Mul(decimal.NewFromInt(int64(cantidad)))
}

// SubtotalCarrito sums line subtotals. Empty cart → 0.
func SubtotalCarrito(lineas []Linea) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lineas {
		subtotal = subtotal.Add(l.Subtotal)
	}
	return subtotal
}

// Impuesto computes subtotal × tasa.
func Impuesto(subtotal, tasa decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(tasa)
}

// Total computes subtotal − descuento + impuesto. No floor at zero: the
// discount is unconstrained here and callers guard negative totals.
func Total(subtotal, descuento, impuesto decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(descuento).Add(impuesto)
}
