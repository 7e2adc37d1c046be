package venta

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// Origen classifies where the sale came from.
type Origen string

const (
	OrigenPuerta Origen = "Puerta"
	OrigenWeb    Origen = "Web"
	OrigenRedes  Origen = "Redes"
	OrigenML     Origen = "Mercado_libre"
)

// TipoConsumidor classifies the buyer for tax purposes.
type TipoConsumidor string

const (
	ConsumidorMinorista TipoConsumidor = "minorista"
	ConsumidorMayorista TipoConsumidor = "mayorista"
	ConsumidorFinal     TipoConsumidor = "consumidor_final"
	ConsumidorMonotributo TipoConsumidor = "monotributo"
)

// Estado is the persistence status a session is saved under.
type Estado string

const (
	EstadoEntregado   Estado = "entregado"
	EstadoPresupuesto Estado = "presupuesto"
	EstadoConsigna    Estado = "consigna"
)

// Fase is the coarse state of the session machine: Vacia until the first
// product is added or a draft/budget is loaded, Armando while editing.
// Terminal transitions (entregado, presupuesto, consigna, reset) return the
// session to Vacia.
type Fase string

const (
	FaseVacia   Fase = "vacia"
	FaseArmando Fase = "armando"
)

var (
	ErrCarritoVacio     = errors.New("debés agregar al menos un producto")
	ErrPagoInsuficiente = errors.New("el monto pagado no cubre el total de la venta")
	ErrSinPagos         = errors.New("la conversión de un presupuesto requiere al menos un pago")
	ErrEstadoInvalido   = errors.New("estado de venta desconocido")
)

// Totales is the reactive money summary of a session.
type Totales struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Impuesto decimal.Decimal `json:"impuesto"`
	Total    decimal.Decimal `json:"total"`
}

// Sesion aggregates everything a sale in progress needs: cart, customer,
// classification, tax mode, payments and the budget identifier when the
// session was loaded from an existing presupuesto.
type Sesion struct {
	ID         uuid.UUID
	OperadorID string

	Carrito Carrito
	Pagos   Pagos

	Cliente       *model.Cliente
	Origen        Origen
	Consumidor    TipoConsumidor
	TipoIVA       TipoIVA
	Observaciones string
	Descuento     decimal.Decimal

	// PresupuestoID is set when the session was loaded from a stored budget;
	// saving then converts that record instead of registering a new sale.
	PresupuestoID *int64

	// Reinicios counts full resets; clients use it to reinitialize dependent
	// widgets (payment tracker, customer search).
	Reinicios int

	iniciada bool
	CreadaEn time.Time
}

// NuevaSesion returns a session with the storefront defaults.
func NuevaSesion(operadorID string) *Sesion {
	return &Sesion{
		ID:         uuid.New(),
		OperadorID: operadorID,
		Origen:     OrigenPuerta,
		Consumidor: ConsumidorMinorista,
		TipoIVA:    IVASin,
		Descuento:  decimal.Zero,
		CreadaEn:   time.Now(),
	}
}

// Fase reports whether the session has started building a sale.
func (s *Sesion) Fase() Fase {
	if s.iniciada {
		return FaseArmando
	}
	return FaseVacia
}

// Agregar puts cantidad units of a product in the cart, moving the session
// to Armando on the first line.
func (s *Sesion) Agregar(p model.Producto, cantidad int) error {
	if err := s.Carrito.Agregar(p, cantidad); err != nil {
		return err
	}
	s.iniciada = true
	return nil
}

// Totales recomputes subtotal, impuesto and total from the current cart,
// discount and tax mode.
func (s *Sesion) Totales() Totales {
	subtotal := s.Carrito.Subtotal()
	impuesto := Impuesto(subtotal, s.TipoIVA.Tasa())
	return Totales{
		Subtotal: subtotal,
		Impuesto: impuesto,
		Total:    Total(subtotal, s.Descuento, impuesto),
	}
}

// AlternarPago toggles a payment method against the current total owed.
func (s *Sesion) AlternarPago(m MetodoPago) error {
	return s.Pagos.Alternar(m, s.Totales().Total)
}

// AplicarMercadoLibre zeroes every line price and forces the origin to
// Mercado_libre. Deliberate business rule: marketplace sales are recorded at
// zero recognized price.
func (s *Sesion) AplicarMercadoLibre() {
	s.Carrito.anularPrecios()
	s.Origen = OrigenML
}

// Preparar validates the requested terminal transition and assembles the
// registrar_venta payload. presupuesto/consigna force the payment set empty
// and skip the sufficiency check; entregado requires pagado ≥ total.
// The session itself is not mutated beyond the forced payment reset — the
// caller resets it only after the backend accepts the record.
func (s *Sesion) Preparar(estado Estado) (*model.RegistrarVentaParams, error) {
	if s.Carrito.Vacio() {
		return nil, ErrCarritoVacio
	}

	switch estado {
	case EstadoEntregado:
		if s.Pagos.TotalPagado().LessThan(s.Totales().Total) {
			return nil, ErrPagoInsuficiente
		}
	case EstadoPresupuesto, EstadoConsigna:
		s.Pagos.Reiniciar()
	default:
		return nil, ErrEstadoInvalido
	}

	clienteID := model.ClienteConsumidorFinalID
	if s.Cliente != nil {
		clienteID = s.Cliente.ID
	}

	observaciones := s.Observaciones
	if estado != EstadoEntregado {
		observaciones = string(estado)
	}

	lineas := s.Carrito.Lineas()
	detalles := make([]model.DetalleVenta, 0, len(lineas))
	for _, l := range lineas {
		detalles = append(detalles, model.DetalleVenta{
			SKU:            l.SKU,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.Precio,
		})
	}

	return &model.RegistrarVentaParams{
		ClienteID:      clienteID,
		Origen:         string(s.Origen),
		TipoConsumidor: string(s.Consumidor),
		TipoIVA:        string(s.TipoIVA),
		Observaciones:  observaciones,
		Detalles:       detalles,
		Pagos:          s.Pagos.Detalle(),
		OperadorID:     s.OperadorID,
	}, nil
}

// PrepararConversion validates the budget-to-sale path: the session must have
// been loaded from a presupuesto and carry at least one non-empty payment.
// Returns the budget id and the payments to settle it with.
func (s *Sesion) PrepararConversion() (int64, []model.PagoVenta, error) {
	if s.PresupuestoID == nil {
		return 0, nil, errors.New("la sesión no proviene de un presupuesto")
	}
	if s.Carrito.Vacio() {
		return 0, nil, ErrCarritoVacio
	}
	pagos := s.Pagos.Detalle()
	conMonto := pagos[:0:0]
	for _, p := range pagos {
		if p.Monto.IsPositive() {
			conMonto = append(conMonto, p)
		}
	}
	if len(conMonto) == 0 {
		return 0, nil, ErrSinPagos
	}
	return *s.PresupuestoID, conMonto, nil
}

// Snapshot freezes the session into a draft. The store assigns the id.
func (s *Sesion) Snapshot() (model.Borrador, error) {
	if s.Carrito.Vacio() {
		return model.Borrador{}, ErrCarritoVacio
	}
	lineas := s.Carrito.Lineas()
	items := make([]model.BorradorItem, 0, len(lineas))
	for _, l := range lineas {
		items = append(items, model.BorradorItem{
			SKU:          l.SKU,
			CodigoBarras: l.CodigoBarras,
			Nombre:       l.Nombre,
			Precio:       l.Precio,
			Editable:     l.Editable,
			Cantidad:     l.Cantidad,
			Subtotal:     l.Subtotal,
		})
	}
	return model.Borrador{
		Items:         items,
		Cliente:       s.Cliente,
		Pagos:         s.Pagos.Detalle(),
		Origen:        string(s.Origen),
		Consumidor:    string(s.Consumidor),
		Observaciones: s.Observaciones,
		TipoIVA:       string(s.TipoIVA),
	}, nil
}

// CargarBorrador replaces the session contents with a draft snapshot.
func (s *Sesion) CargarBorrador(b model.Borrador) {
	s.Carrito.Vaciar()
	for _, it := range b.Items {
		s.Carrito.lineas = append(s.Carrito.lineas, Linea{
			SKU:          it.SKU,
			CodigoBarras: it.CodigoBarras,
			Nombre:       it.Nombre,
			Precio:       it.Precio,
			Editable:     it.Editable,
			Cantidad:     it.Cantidad,
			Subtotal:     SubtotalLinea(it.Precio, it.Cantidad),
		})
	}
	s.Cliente = b.Cliente
	s.Pagos.cargar(b.Pagos)
	s.Origen = Origen(b.Origen)
	s.Consumidor = TipoConsumidor(b.Consumidor)
	s.Observaciones = b.Observaciones
	s.TipoIVA = TipoIVA(b.TipoIVA)
	s.PresupuestoID = nil
	s.iniciada = !s.Carrito.Vacio()
}

// CargarPresupuesto rebuilds the session from a stored budget and records its
// id so the save path converts the record instead of creating a new sale.
// Budget lines are never price-editable once loaded.
func (s *Sesion) CargarPresupuesto(p model.Presupuesto) {
	s.Carrito.Vaciar()
	for _, d := range p.Detalles {
		s.Carrito.lineas = append(s.Carrito.lineas, Linea{
			SKU:          d.SKU,
			CodigoBarras: d.CodigoBarras,
			Nombre:       d.Nombre,
			Precio:       d.PrecioUnitario,
			Editable:     false,
			Cantidad:     d.Cantidad,
			Subtotal:     SubtotalLinea(d.PrecioUnitario, d.Cantidad),
		})
	}
	s.Cliente = &model.Cliente{
		ID:       p.ClienteID,
		Tipo:     model.ClienteNatural,
		Nombre:   p.ClienteNombre,
		Apellido: p.ClienteApellido,
	}
	s.Pagos.cargar(p.Pagos)
	s.Origen = Origen(p.Origen)
	s.Consumidor = TipoConsumidor(p.TipoConsumidor)
	s.Observaciones = p.Observaciones
	s.TipoIVA = TipoIVA(p.TipoIVA)
	id := p.ID
	s.PresupuestoID = &id
	s.iniciada = !s.Carrito.Vacio()
}

// Reiniciar clears everything back to defaults and bumps the reset counter.
func (s *Sesion) Reiniciar() {
	s.Carrito.Vaciar()
	s.Pagos.Reiniciar()
	s.Cliente = nil
	s.Origen = OrigenPuerta
	s.Consumidor = ConsumidorMinorista
	s.TipoIVA = IVASin
	s.Observaciones = ""
	s.Descuento = decimal.Zero
	s.PresupuestoID = nil
	s.iniciada = false
	s.Reinicios++
}
