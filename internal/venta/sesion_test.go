package venta

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

func sesionConProducto(t *testing.T, precio float64, cantidad int) *Sesion {
	t.Helper()
	s := NuevaSesion("op-1")
	require.NoError(t, s.Agregar(producto("A1", precio, false), cantidad))
	return s
}

func TestSesion_Defaults(t *testing.T) {
	s := NuevaSesion("op-1")
	assert.Equal(t, FaseVacia, s.Fase())
	assert.Equal(t, OrigenPuerta, s.Origen)
	assert.Equal(t, ConsumidorMinorista, s.Consumidor)
	assert.Equal(t, IVASin, s.TipoIVA)
	assert.True(t, s.Descuento.IsZero())
}

func TestSesion_TotalesConIVA(t *testing.T) {
	// 100 × 2 = 200, 21% = 42, total 242
	s := sesionConProducto(t, 100, 2)
	s.TipoIVA = IVAFull

	tot := s.Totales()
	assert.Equal(t, "200", tot.Subtotal.String())
	assert.Equal(t, "42", tot.Impuesto.String())
	assert.Equal(t, "242", tot.Total.String())
}

func TestSesion_Preparar_CarritoVacio(t *testing.T) {
	s := NuevaSesion("op-1")
	_, err := s.Preparar(EstadoEntregado)
	assert.ErrorIs(t, err, ErrCarritoVacio)
}

func TestSesion_Preparar_EntregadoPagoInsuficiente(t *testing.T) {
	s := sesionConProducto(t, 100, 2)
	require.NoError(t, s.AlternarPago(PagoEfectivo))
	require.NoError(t, s.Pagos.FijarMonto(PagoEfectivo, decimal.NewFromFloat(150)))

	_, err := s.Preparar(EstadoEntregado)
	assert.ErrorIs(t, err, ErrPagoInsuficiente)
}

func TestSesion_Preparar_EntregadoExacto(t *testing.T) {
	s := sesionConProducto(t, 100, 2)
	require.NoError(t, s.AlternarPago(PagoEfectivo)) // toma el total: 200

	params, err := s.Preparar(EstadoEntregado)
	require.NoError(t, err)
	assert.Equal(t, model.ClienteConsumidorFinalID, params.ClienteID)
	assert.Empty(t, params.Observaciones)
	require.Len(t, params.Pagos, 1)
	assert.Equal(t, "200", params.Pagos[0].Monto.String())
	require.Len(t, params.Detalles, 1)
	assert.Equal(t, 2, params.Detalles[0].Cantidad)
}

func TestSesion_Preparar_PresupuestoForzaPagosVacios(t *testing.T) {
	s := sesionConProducto(t, 300, 1)
	require.NoError(t, s.AlternarPago(PagoTarjeta))
	s.Observaciones = "entrega coordinada"

	params, err := s.Preparar(EstadoPresupuesto)
	require.NoError(t, err)
	assert.Empty(t, params.Pagos)
	assert.Equal(t, "presupuesto", params.Observaciones)
	// el reset de pagos persiste en la sesión
	assert.True(t, s.Pagos.TotalPagado().IsZero())
}

func TestSesion_Preparar_ConsignaSinChequeoDePago(t *testing.T) {
	s := sesionConProducto(t, 300, 1)

	params, err := s.Preparar(EstadoConsigna)
	require.NoError(t, err)
	assert.Empty(t, params.Pagos)
	assert.Equal(t, "consigna", params.Observaciones)
}

func TestSesion_Preparar_EstadoDesconocido(t *testing.T) {
	s := sesionConProducto(t, 100, 1)
	_, err := s.Preparar(Estado("anulado"))
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestSesion_Preparar_ClienteAsignado(t *testing.T) {
	s := sesionConProducto(t, 100, 1)
	s.Cliente = &model.Cliente{ID: 42}
	require.NoError(t, s.AlternarPago(PagoEfectivo))

	params, err := s.Preparar(EstadoEntregado)
	require.NoError(t, err)
	assert.Equal(t, int64(42), params.ClienteID)
}

func TestSesion_MercadoLibre(t *testing.T) {
	s := sesionConProducto(t, 100, 3)
	s.AplicarMercadoLibre()

	assert.Equal(t, OrigenML, s.Origen)
	assert.True(t, s.Totales().Total.IsZero())
	for _, l := range s.Carrito.Lineas() {
		assert.True(t, l.Precio.IsZero())
		assert.True(t, l.Subtotal.IsZero())
	}
}

func TestSesion_PrepararConversion_SinPresupuesto(t *testing.T) {
	s := sesionConProducto(t, 100, 1)
	_, _, err := s.PrepararConversion()
	assert.Error(t, err)
}

func TestSesion_PrepararConversion_RequierePagoPositivo(t *testing.T) {
	s := NuevaSesion("op-1")
	s.CargarPresupuesto(presupuestoDePrueba())

	_, _, err := s.PrepararConversion()
	assert.ErrorIs(t, err, ErrSinPagos)

	require.NoError(t, s.AlternarPago(PagoEfectivo))
	require.NoError(t, s.Pagos.FijarMonto(PagoEfectivo, decimal.Zero))
	_, _, err = s.PrepararConversion()
	assert.ErrorIs(t, err, ErrSinPagos)

	require.NoError(t, s.Pagos.FijarMonto(PagoEfectivo, decimal.NewFromFloat(500)))
	id, pagos, err := s.PrepararConversion()
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)
	require.Len(t, pagos, 1)
	assert.Equal(t, "500", pagos[0].Monto.String())
}

func TestSesion_SnapshotYCargarBorrador(t *testing.T) {
	s := sesionConProducto(t, 100, 2)
	s.TipoIVA = IVAMedia
	s.Origen = OrigenWeb
	s.Observaciones = "retira el lunes"
	require.NoError(t, s.AlternarPago(PagoEfectivo))

	b, err := s.Snapshot()
	require.NoError(t, err)
	require.Len(t, b.Items, 1)
	assert.Equal(t, "Web", b.Origen)

	destino := NuevaSesion("op-1")
	destino.CargarBorrador(b)
	assert.Equal(t, FaseArmando, destino.Fase())
	assert.Equal(t, OrigenWeb, destino.Origen)
	assert.Equal(t, IVAMedia, destino.TipoIVA)
	assert.Equal(t, "retira el lunes", destino.Observaciones)
	assert.Equal(t, s.Totales().Total.String(), destino.Totales().Total.String())
	assert.Nil(t, destino.PresupuestoID)
}

func TestSesion_Snapshot_CarritoVacio(t *testing.T) {
	s := NuevaSesion("op-1")
	_, err := s.Snapshot()
	assert.ErrorIs(t, err, ErrCarritoVacio)
}

func TestSesion_CargarPresupuesto_LineasNoEditables(t *testing.T) {
	s := NuevaSesion("op-1")
	s.CargarPresupuesto(presupuestoDePrueba())

	require.NotNil(t, s.PresupuestoID)
	assert.Equal(t, int64(77), *s.PresupuestoID)
	assert.Equal(t, FaseArmando, s.Fase())
	for _, l := range s.Carrito.Lineas() {
		assert.False(t, l.Editable)
	}
	err := s.Carrito.ActualizarPrecio("P1", decimal.NewFromFloat(1))
	assert.ErrorIs(t, err, ErrPrecioNoEditable)
}

func TestSesion_Reiniciar(t *testing.T) {
	s := sesionConProducto(t, 100, 1)
	s.Cliente = &model.Cliente{ID: 9}
	s.TipoIVA = IVAFull
	require.NoError(t, s.AlternarPago(PagoEfectivo))

	s.Reiniciar()

	assert.Equal(t, FaseVacia, s.Fase())
	assert.True(t, s.Carrito.Vacio())
	assert.Nil(t, s.Cliente)
	assert.Equal(t, IVASin, s.TipoIVA)
	assert.Equal(t, OrigenPuerta, s.Origen)
	assert.True(t, s.Pagos.TotalPagado().IsZero())
	assert.Equal(t, 1, s.Reinicios)
}

func presupuestoDePrueba() model.Presupuesto {
	return model.Presupuesto{
		ID:              77,
		ClienteID:       3,
		ClienteNombre:   "Marta",
		ClienteApellido: "Gómez",
		Origen:          "Puerta",
		TipoConsumidor:  "minorista",
		Estado:          "presupuesto",
		TipoIVA:         "sin_iva",
		Detalles: []model.DetallePresupuesto{
			{SKU: "P1", Nombre: "Lámpara", CodigoBarras: "779P1", Cantidad: 1, PrecioUnitario: decimal.NewFromFloat(500)},
		},
	}
}
