package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/venezolean/POSPLIPSHOP/internal/borrador"
	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/gateway"
	"github.com/venezolean/POSPLIPSHOP/internal/model"
	"github.com/venezolean/POSPLIPSHOP/internal/venta"
	"github.com/venezolean/POSPLIPSHOP/internal/worker"
)

var (
	ErrSesionNoEncontrada = errors.New("sesión no encontrada")
	ErrSesionAjena        = errors.New("la sesión pertenece a otro operador")
	ErrClienteNoExiste    = errors.New("cliente no encontrado")
)

type SesionService interface {
	Crear(ctx context.Context, operadorID string) (*dto.SesionResponse, error)
	Obtener(ctx context.Context, operadorID string, id uuid.UUID) (*dto.SesionResponse, error)

	AgregarItem(ctx context.Context, operadorID string, id uuid.UUID, req dto.AgregarItemRequest) (*dto.SesionResponse, error)
	ActualizarItem(ctx context.Context, operadorID string, id uuid.UUID, sku string, req dto.ActualizarItemRequest) (*dto.SesionResponse, error)
	QuitarItem(ctx context.Context, operadorID string, id uuid.UUID, sku string) (*dto.SesionResponse, error)

	Actualizar(ctx context.Context, operadorID string, id uuid.UUID, req dto.ActualizarSesionRequest) (*dto.SesionResponse, error)
	AsignarCliente(ctx context.Context, operadorID string, id uuid.UUID, documento string) (*dto.SesionResponse, error)
	QuitarCliente(ctx context.Context, operadorID string, id uuid.UUID) (*dto.SesionResponse, error)

	AlternarPago(ctx context.Context, operadorID string, id uuid.UUID, metodo string) (*dto.SesionResponse, error)
	FijarPago(ctx context.Context, operadorID string, id uuid.UUID, req dto.FijarPagoRequest) (*dto.SesionResponse, error)

	MercadoLibre(ctx context.Context, operadorID string, id uuid.UUID) (*dto.SesionResponse, error)
	Guardar(ctx context.Context, operadorID, operadorNombre string, id uuid.UUID, req dto.GuardarSesionRequest) (*dto.GuardarSesionResponse, error)
	Reiniciar(ctx context.Context, operadorID string, id uuid.UUID) (*dto.SesionResponse, error)

	GuardarBorrador(ctx context.Context, operadorID string, id uuid.UUID) (*model.Borrador, error)
	ListarBorradores(ctx context.Context, operadorID string) ([]model.Borrador, error)
	EliminarBorrador(ctx context.Context, operadorID, borradorID string) error
	CargarBorrador(ctx context.Context, operadorID string, id uuid.UUID, borradorID string) (*dto.SesionResponse, error)

	BuscarPresupuestos(ctx context.Context, term string) ([]model.Presupuesto, error)
	CargarPresupuesto(ctx context.Context, operadorID string, id uuid.UUID, presupuestoID int64) (*dto.SesionResponse, error)
}

type sesionService struct {
	mu       sync.Mutex
	sesiones map[uuid.UUID]*venta.Sesion

	productos  gateway.ProductoGateway
	ventas     gateway.VentaGateway
	clientes   gateway.ClienteGateway
	borradores *borrador.Store
	caja       CajaService
	dispatcher *worker.Dispatcher
}

func NewSesionService(
	productos gateway.ProductoGateway,
	ventas gateway.VentaGateway,
	clientes gateway.ClienteGateway,
	borradores *borrador.Store,
	caja CajaService,
	dispatcher *worker.Dispatcher,
) SesionService {
	return &sesionService{
		sesiones:   make(map[uuid.UUID]*venta.Sesion),
		productos:  productos,
		ventas:     ventas,
		clientes:   clientes,
		borradores: borradores,
		caja:       caja,
		dispatcher: dispatcher,
	}
}

// Crear opens a new sale session. An open caja is the precondition for the
// whole sale flow, so it is checked here and nowhere else.
func (s *sesionService) Crear(ctx context.Context, operadorID string) (*dto.SesionResponse, error) {
	if _, err := s.caja.Abierta(ctx, operadorID); err != nil {
		return nil, err
	}

	sesion := venta.NuevaSesion(operadorID)
	s.mu.Lock()
	s.sesiones[sesion.ID] = sesion
	s.mu.Unlock()

	return sesionResponse(sesion), nil
}

// buscar looks the session up and enforces operator ownership. Callers must
// hold s.mu for the whole mutation that follows.
func (s *sesionService) buscar(operadorID string, id uuid.UUID) (*venta.Sesion, error) {
	sesion, ok := s.sesiones[id]
	if !ok {
		return nil, ErrSesionNoEncontrada
	}
	if sesion.OperadorID != operadorID {
		return nil, ErrSesionAjena
	}
	return sesion, nil
}

func (s *sesionService) Obtener(_ context.Context, operadorID string, id uuid.UUID) (*dto.SesionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	return sesionResponse(sesion), nil
}

func (s *sesionService) AgregarItem(ctx context.Context, operadorID string, id uuid.UUID, req dto.AgregarItemRequest) (*dto.SesionResponse, error) {
	producto, err := s.productos.BuscarPorBarcode(ctx, req.CodigoBarras)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("producto con código %s no encontrado", req.CodigoBarras)
	}

	cantidad := req.Cantidad
	if cantidad == 0 {
		cantidad = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	if err := sesion.Agregar(*producto, cantidad); err != nil {
		return nil, err
	}
	return sesionResponse(sesion), nil
}

func (s *sesionService) ActualizarItem(_ context.Context, operadorID string, id uuid.UUID, sku string, req dto.ActualizarItemRequest) (*dto.SesionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	if req.Cantidad != nil {
		if err := sesion.Carrito.ActualizarCantidad(sku, *req.Cantidad); err != nil {
			return nil, err
		}
	}
	if req.Precio != nil {
		if err := sesion.Carrito.ActualizarPrecio(sku, *req.Precio); err != nil {
			return nil, err
		}
	}
	return sesionResponse(sesion), nil
}

func (s *sesionService) QuitarItem(_ context.Context, operadorID string, id uuid.UUID, sku string) (*dto.SesionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	sesion.Carrito.Quitar(sku)
	return sesionResponse(sesion), nil
}

func (s *sesionService) Actualizar(_ context.Context, operadorID string, id uuid.UUID, req dto.ActualizarSesionRequest) (*dto.SesionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	if req.Origen != nil {
		sesion.Origen = venta.Origen(*req.Origen)
	}
	if req.Consumidor != nil {
		sesion.Consumidor = venta.TipoConsumidor(*req.Consumidor)
	}
	if req.TipoIVA != nil {
		sesion.TipoIVA = venta.TipoIVA(*req.TipoIVA)
	}
	if req.Observaciones != nil {
		sesion.Observaciones = *req.Observaciones
	}
	if req.Descuento != nil {
		sesion.Descuento = *req.Descuento
	}
	return sesionResponse(sesion), nil
}

func (s *sesionService) AsignarCliente(ctx context.Context, operadorID string, id uuid.UUID, documento string) (*dto.SesionResponse, error) {
	cliente, err := s.clientes.BuscarPorDocumento(ctx, documento)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, ErrClienteNoExiste
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	sesion.Cliente = cliente
	return sesionResponse(sesion), nil
}

func (s *sesionService) QuitarCliente(_ context.Context, operadorID string, id uuid.UUID) (*dto.SesionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	sesion.Cliente = nil
	return sesionResponse(sesion), nil
}

func (s *sesionService) AlternarPago(_ context.Context, operadorID string, id uuid.UUID, metodo string) (*dto.SesionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	if err := sesion.AlternarPago(venta.MetodoPago(metodo)); err != nil {
		return nil, err
	}
	return sesionResponse(sesion), nil
}

func (s *sesionService) FijarPago(_ context.Context, operadorID string, id uuid.UUID, req dto.FijarPagoRequest) (*dto.SesionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	if err := sesion.Pagos.FijarMonto(venta.MetodoPago(req.Metodo), req.Monto); err != nil {
		return nil, err
	}
	return sesionResponse(sesion), nil
}

func (s *sesionService) MercadoLibre(_ context.Context, operadorID string, id uuid.UUID) (*dto.SesionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	sesion.AplicarMercadoLibre()
	return sesionResponse(sesion), nil
}

// Guardar commits the session to the backend. Sessions loaded from a budget
// always take the conversion path; everything else registers a new record
// under the requested estado. On success the session resets and a comprobante
// job is enqueued (best-effort).
func (s *sesionService) Guardar(ctx context.Context, operadorID, operadorNombre string, id uuid.UUID, req dto.GuardarSesionRequest) (*dto.GuardarSesionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}

	if sesion.PresupuestoID != nil {
		presupuestoID, pagos, err := sesion.PrepararConversion()
		if err != nil {
			return nil, err
		}
		if err := s.ventas.ConvertirPresupuesto(ctx, presupuestoID, pagos); err != nil {
			return nil, err
		}
		s.despacharComprobante(sesion, operadorNombre, presupuestoID, string(venta.EstadoEntregado), pagos, req.ClienteEmail)
		sesion.Reiniciar()
		return &dto.GuardarSesionResponse{VentaID: presupuestoID, Convertida: true, Estado: string(venta.EstadoEntregado)}, nil
	}

	params, err := sesion.Preparar(venta.Estado(req.Estado))
	if err != nil {
		return nil, err
	}
	ventaID, err := s.ventas.Registrar(ctx, *params)
	if err != nil {
		// Session state stays as-is so the operator can correct and retry.
		return nil, err
	}
	s.despacharComprobante(sesion, operadorNombre, ventaID, req.Estado, params.Pagos, req.ClienteEmail)
	sesion.Reiniciar()
	return &dto.GuardarSesionResponse{VentaID: ventaID, Estado: req.Estado}, nil
}

// despacharComprobante snapshots the session for printing and enqueues the
// rendering job. Failures are logged, never surfaced to the sale flow.
func (s *sesionService) despacharComprobante(sesion *venta.Sesion, operadorNombre string, ventaID int64, estado string, pagos []model.PagoVenta, email *string) {
	totales := sesion.Totales()
	lineas := sesion.Carrito.Lineas()

	comp := model.Comprobante{
		VentaID:   ventaID,
		Estado:    estado,
		Fecha:     time.Now(),
		Operador:  operadorNombre,
		Cliente:   nombreCliente(sesion.Cliente),
		Lineas:    make([]model.LineaComprobante, 0, len(lineas)),
		Subtotal:  totales.Subtotal,
		Descuento: sesion.Descuento,
		Impuesto:  totales.Impuesto,
		Total:     totales.Total,
		Pagos:     pagos,
		Vuelto:    sesion.Pagos.Vuelto(totales.Total),
	}
	for _, l := range lineas {
		comp.Lineas = append(comp.Lineas, model.LineaComprobante{
			Nombre:         l.Nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.Precio,
			Subtotal:       l.Subtotal,
		})
	}

	payload := worker.ComprobanteJobPayload{Comprobante: comp, ClienteEmail: email}
	if err := s.dispatcher.EnqueueComprobante(context.Background(), payload); err != nil {
		log.Warn().Err(err).Int64("venta_id", ventaID).Msg("no se pudo encolar el comprobante")
	}
}

func (s *sesionService) Reiniciar(_ context.Context, operadorID string, id uuid.UUID) (*dto.SesionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	sesion.Reiniciar()
	return sesionResponse(sesion), nil
}

func (s *sesionService) GuardarBorrador(ctx context.Context, operadorID string, id uuid.UUID) (*model.Borrador, error) {
	s.mu.Lock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	snapshot, err := sesion.Snapshot()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	guardado, err := s.borradores.Guardar(ctx, operadorID, snapshot)
	if err != nil {
		return nil, err
	}
	return &guardado, nil
}

func (s *sesionService) ListarBorradores(ctx context.Context, operadorID string) ([]model.Borrador, error) {
	return s.borradores.Listar(ctx, operadorID), nil
}

func (s *sesionService) EliminarBorrador(ctx context.Context, operadorID, borradorID string) error {
	return s.borradores.Eliminar(ctx, operadorID, borradorID)
}

func (s *sesionService) CargarBorrador(ctx context.Context, operadorID string, id uuid.UUID, borradorID string) (*dto.SesionResponse, error) {
	var encontrado *model.Borrador
	for _, b := range s.borradores.Listar(ctx, operadorID) {
		b := b
		if b.ID == borradorID {
			encontrado = &b
			break
		}
	}
	if encontrado == nil {
		return nil, borrador.ErrNoExiste
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	sesion.CargarBorrador(*encontrado)
	return sesionResponse(sesion), nil
}

func (s *sesionService) BuscarPresupuestos(ctx context.Context, term string) ([]model.Presupuesto, error) {
	return s.ventas.BuscarPresupuestos(ctx, term)
}

func (s *sesionService) CargarPresupuesto(ctx context.Context, operadorID string, id uuid.UUID, presupuestoID int64) (*dto.SesionResponse, error) {
	presupuestos, err := s.ventas.BuscarPresupuestos(ctx, fmt.Sprintf("%d", presupuestoID))
	if err != nil {
		return nil, err
	}
	var encontrado *model.Presupuesto
	for i := range presupuestos {
		if presupuestos[i].ID == presupuestoID {
			encontrado = &presupuestos[i]
			break
		}
	}
	if encontrado == nil {
		return nil, fmt.Errorf("presupuesto %d no encontrado", presupuestoID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sesion, err := s.buscar(operadorID, id)
	if err != nil {
		return nil, err
	}
	sesion.CargarPresupuesto(*encontrado)
	return sesionResponse(sesion), nil
}

// ── response builders ────────────────────────────────────────────────────────

func sesionResponse(s *venta.Sesion) *dto.SesionResponse {
	totales := s.Totales()
	detalle := s.Pagos.Detalle()

	pagos := dto.PagosResponse{
		Activos:     make([]string, 0, len(detalle)),
		Montos:      make(map[string]decimal.Decimal, len(detalle)),
		TotalPagado: s.Pagos.TotalPagado(),
		Restante:    s.Pagos.Restante(totales.Total),
		Vuelto:      s.Pagos.Vuelto(totales.Total),
	}
	for _, p := range detalle {
		pagos.Activos = append(pagos.Activos, p.Metodo)
		pagos.Montos[p.Metodo] = p.Monto
	}

	lineas := s.Carrito.Lineas()
	items := make([]dto.ItemSesionResponse, 0, len(lineas))
	for _, l := range lineas {
		items = append(items, dto.ItemSesionResponse{
			SKU:          l.SKU,
			CodigoBarras: l.CodigoBarras,
			Nombre:       l.Nombre,
			Precio:       l.Precio,
			Editable:     l.Editable,
			Cantidad:     l.Cantidad,
			Subtotal:     l.Subtotal,
		})
	}

	return &dto.SesionResponse{
		ID:            s.ID.String(),
		Fase:          string(s.Fase()),
		Origen:        string(s.Origen),
		Consumidor:    string(s.Consumidor),
		TipoIVA:       string(s.TipoIVA),
		Observaciones: s.Observaciones,
		Descuento:     s.Descuento,
		Cliente:       s.Cliente,
		Items:         items,
		Totales: dto.TotalesResponse{
			Subtotal: totales.Subtotal,
			Impuesto: totales.Impuesto,
			Total:    totales.Total,
		},
		Pagos:         pagos,
		PresupuestoID: s.PresupuestoID,
		Reinicios:     s.Reinicios,
	}
}

func nombreCliente(c *model.Cliente) string {
	if c == nil {
		return ""
	}
	if c.Tipo == model.ClienteJuridico {
		return c.RazonSocial
	}
	return fmt.Sprintf("%s %s", c.Nombre, c.Apellido)
}
