package venta

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

var (
	ErrLineaNoEncontrada = errors.New("el producto no está en el carrito")
	ErrCantidadInvalida  = errors.New("la cantidad debe ser al menos 1")
	ErrPrecioInvalido    = errors.New("el precio no puede ser negativo")
	ErrPrecioNoEditable  = errors.New("el precio de este producto no es editable")
)

// Linea is one cart line. Subtotal is always recomputed on mutation, never
// carried stale.
type Linea struct {
	SKU          string          `json:"sku"`
	CodigoBarras string          `json:"codigo_barras"`
	Nombre       string          `json:"nombre"`
	Precio       decimal.Decimal `json:"precio"`
	Editable     bool            `json:"editable"`
	Cantidad     int             `json:"cantidad"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Carrito is an ordered collection of lines keyed by SKU. Adding a product
// already present merges quantities — no two lines ever share a SKU.
type Carrito struct {
	lineas []Linea
}

// Agregar adds cantidad units of a product, merging into the existing line
// when the SKU is already present.
func (c *Carrito) Agregar(p model.Producto, cantidad int) error {
	if cantidad < 1 {
		return ErrCantidadInvalida
	}
	if p.Precio.IsNegative() {
		return ErrPrecioInvalido
	}
	for i := range c.lineas {
		if c.lineas[i].SKU == p.SKU {
			c.lineas[i].Cantidad += cantidad
			c.lineas[i].Subtotal = SubtotalLinea(c.lineas[i].Precio, c.lineas[i].Cantidad)
			return nil
		}
	}
	c.lineas = append(c.lineas, Linea{
		SKU:          p.SKU,
		CodigoBarras: p.CodigoBarras,
		Nombre:       p.Nombre,
		Precio:       p.Precio,
		Editable:     p.Editable,
		Cantidad:     cantidad,
		Subtotal:     SubtotalLinea(p.Precio, cantidad),
	})
	return nil
}

// ActualizarCantidad rejects cantidades < 1, leaving the line unchanged.
func (c *Carrito) ActualizarCantidad(sku string, cantidad int) error {
	if cantidad < 1 {
		return ErrCantidadInvalida
	}
	l := c.buscar(sku)
	if l == nil {
		return fmt.Errorf("%w: %s", ErrLineaNoEncontrada, sku)
	}
	l.Cantidad = cantidad
	l.Subtotal = SubtotalLinea(l.Precio, l.Cantidad)
	return nil
}

// ActualizarPrecio overrides the unit price. Only meaningful for lines whose
// product allows it; negative prices are rejected.
func (c *Carrito) ActualizarPrecio(sku string, precio decimal.Decimal) error {
	if precio.IsNegative() {
		return ErrPrecioInvalido
	}
	l := c.buscar(sku)
	if l == nil {
		return fmt.Errorf("%w: %s", ErrLineaNoEncontrada, sku)
	}
	if !l.Editable {
		return ErrPrecioNoEditable
	}
	l.Precio = precio
	l.Subtotal = SubtotalLinea(l.Precio, l.Cantidad)
	return nil
}

// Quitar deletes the line unconditionally. Unknown SKUs are a no-op.
func (c *Carrito) Quitar(sku string) {
	for i := range c.lineas {
		if c.lineas[i].SKU == sku {
			c.lineas = append(c.lineas[:i], c.lineas[i+1:]...)
			return
		}
	}
}

// Vaciar empties the cart (sale reset).
func (c *Carrito) Vaciar() {
	c.lineas = nil
}

// Vacio reports whether the cart has no lines.
func (c *Carrito) Vacio() bool { return len(c.lineas) == 0 }

// Lineas returns a copy of the lines in insertion order.
func (c *Carrito) Lineas() []Linea {
	out := make([]Linea, len(c.lineas))
	copy(out, c.lineas)
	return out
}

// Subtotal sums line subtotals.
func (c *Carrito) Subtotal() decimal.Decimal {
	return SubtotalCarrito(c.lineas)
}

// anularPrecios zeroes every line's unit price and subtotal. Used by the
// Mercado Libre shortcut, which records the sale at zero recognized price.
func (c *Carrito) anularPrecios() {
	for i := range c.lineas {
		c.lineas[i].Precio = decimal.Zero
		c.lineas[i].Subtotal = decimal.Zero
	}
}

func (c *Carrito) buscar(sku string) *Linea {
	for i := range c.lineas {
		if c.lineas[i].SKU == sku {
			return &c.lineas[i]
		}
	}
	return nil
}
