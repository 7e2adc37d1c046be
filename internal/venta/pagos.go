package venta

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// MetodoPago is one of the fixed set of payment methods.
type MetodoPago string

const (
	PagoEfectivo      MetodoPago = "efectivo"
	PagoTarjeta       MetodoPago = "tarjeta"
	PagoTransferencia MetodoPago = "transferencia"
)

// MetodosPago lists the valid methods in display order.
var MetodosPago = []MetodoPago{PagoEfectivo, PagoTarjeta, PagoTransferencia}

var (
	ErrMetodoDesconocido = errors.New("método de pago desconocido")
	ErrMetodoInactivo    = errors.New("el método de pago no está activo")
	ErrMontoNegativo     = errors.New("el monto no puede ser negativo")
)

// Pagos tracks amounts committed per payment method. The set of active
// methods is exactly the set the operator toggled on; deactivating a method
// resets its amount to 0. At most one entry per method.
type Pagos struct {
	activos []MetodoPago
	montos  map[MetodoPago]decimal.Decimal
}

func metodoValido(m MetodoPago) bool {
	for _, v := range MetodosPago {
		if v == m {
			return true
		}
	}
	return false
}

// Alternar toggles a method. Activating the first method defaults its amount
// to the total currently owed (a convenience, not a rule); later methods
// start at 0. Deactivating zeroes the amount.
func (p *Pagos) Alternar(m MetodoPago, totalActual decimal.Decimal) error {
	if !metodoValido(m) {
		return fmt.Errorf("%w: %s", ErrMetodoDesconocido, m)
	}
	if p.montos == nil {
		p.montos = make(map[MetodoPago]decimal.Decimal)
	}
	for i, a := range p.activos {
		if a == m {
			p.activos = append(p.activos[:i], p.activos[i+1:]...)
			p.montos[m] = decimal.Zero
			return nil
		}
	}
	if len(p.activos) == 0 {
		p.montos[m] = totalActual
	} else {
		p.montos[m] = decimal.Zero
	}
	p.activos = append(p.activos, m)
	return nil
}

// FijarMonto sets the amount for an active method. Amounts must be ≥ 0.
func (p *Pagos) FijarMonto(m MetodoPago, monto decimal.Decimal) error {
	if !metodoValido(m) {
		return fmt.Errorf("%w: %s", ErrMetodoDesconocido, m)
	}
	if monto.IsNegative() {
		return ErrMontoNegativo
	}
	if !p.Activo(m) {
		return fmt.Errorf("%w: %s", ErrMetodoInactivo, m)
	}
	p.montos[m] = monto
	return nil
}

// Activo reports whether the method is currently toggled on.
func (p *Pagos) Activo(m MetodoPago) bool {
	for _, a := range p.activos {
		if a == m {
			return true
		}
	}
	return false
}

// TotalPagado sums the active methods' amounts.
func (p *Pagos) TotalPagado() decimal.Decimal {
	total := decimal.Zero
	for _, m := range p.activos {
		total = total.Add(p.montos[m])
	}
	return total
}

// Restante is the amount still owed: total − pagado when positive, else 0.
func (p *Pagos) Restante(total decimal.Decimal) decimal.Decimal {
	r := total.Sub(p.TotalPagado())
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Vuelto is the change due: pagado − total when positive, else 0.
func (p *Pagos) Vuelto(total decimal.Decimal) decimal.Decimal {
	v := p.TotalPagado().Sub(total)
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// Detalle returns the active entries in activation order.
func (p *Pagos) Detalle() []model.PagoVenta {
	out := make([]model.PagoVenta, 0, len(p.activos))
	for _, m := range p.activos {
		out = append(out, model.PagoVenta{Metodo: string(m), Monto: p.montos[m]})
	}
	return out
}

// Reiniciar deactivates every method and zeroes all amounts.
func (p *Pagos) Reiniciar() {
	p.activos = nil
	p.montos = nil
}

// cargar restores a previously serialized payment set (draft/budget load).
// Unknown methods are dropped.
func (p *Pagos) cargar(detalle []model.PagoVenta) {
	p.Reiniciar()
	p.montos = make(map[MetodoPago]decimal.Decimal)
	for _, d := range detalle {
		m := MetodoPago(d.Metodo)
		if !metodoValido(m) || p.Activo(m) {
			continue
		}
		p.activos = append(p.activos, m)
		p.montos[m] = d.Monto
	}
}
