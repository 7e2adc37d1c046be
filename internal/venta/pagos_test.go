package venta

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

func TestPagos_PrimerMetodoTomaElTotal(t *testing.T) {
	var p Pagos
	total := decimal.NewFromFloat(242)

	require.NoError(t, p.Alternar(PagoEfectivo, total))
	assert.True(t, p.Activo(PagoEfectivo))
	assert.Equal(t, "242", p.TotalPagado().String())

	// el segundo método arranca en 0
	require.NoError(t, p.Alternar(PagoTarjeta, total))
	assert.Equal(t, "242", p.TotalPagado().String())
}

func TestPagos_DesactivarResetea(t *testing.T) {
	var p Pagos
	total := decimal.NewFromFloat(500)

	require.NoError(t, p.Alternar(PagoEfectivo, total))
	require.NoError(t, p.Alternar(PagoEfectivo, total))

	assert.False(t, p.Activo(PagoEfectivo))
	assert.True(t, p.TotalPagado().IsZero())

	// reactivar vuelve a ser "primer método": toma el total de nuevo
	require.NoError(t, p.Alternar(PagoEfectivo, total))
	assert.Equal(t, "500", p.TotalPagado().String())
}

func TestPagos_MetodoDesconocido(t *testing.T) {
	var p Pagos
	err := p.Alternar(MetodoPago("cheque"), decimal.Zero)
	assert.ErrorIs(t, err, ErrMetodoDesconocido)
}

func TestPagos_FijarMonto(t *testing.T) {
	var p Pagos
	total := decimal.NewFromFloat(300)
	require.NoError(t, p.Alternar(PagoEfectivo, total))
	require.NoError(t, p.Alternar(PagoTransferencia, total))

	require.NoError(t, p.FijarMonto(PagoEfectivo, decimal.NewFromFloat(100)))
	require.NoError(t, p.FijarMonto(PagoTransferencia, decimal.NewFromFloat(200)))
	assert.Equal(t, "300", p.TotalPagado().String())
}

func TestPagos_FijarMontoMetodoInactivo(t *testing.T) {
	var p Pagos
	err := p.FijarMonto(PagoTarjeta, decimal.NewFromFloat(100))
	assert.ErrorIs(t, err, ErrMetodoInactivo)
}

func TestPagos_FijarMontoNegativo(t *testing.T) {
	var p Pagos
	require.NoError(t, p.Alternar(PagoEfectivo, decimal.Zero))
	err := p.FijarMonto(PagoEfectivo, decimal.NewFromFloat(-5))
	assert.ErrorIs(t, err, ErrMontoNegativo)
}

func TestPagos_RestanteYVueltoExcluyentes(t *testing.T) {
	var p Pagos
	total := decimal.NewFromFloat(200)
	require.NoError(t, p.Alternar(PagoEfectivo, decimal.Zero))

	// pagado 150 < total 200: restante 50, vuelto 0
	require.NoError(t, p.FijarMonto(PagoEfectivo, decimal.NewFromFloat(150)))
	assert.Equal(t, "50", p.Restante(total).String())
	assert.True(t, p.Vuelto(total).IsZero())

	// pagado 258 > total 200: restante 0, vuelto 58
	require.NoError(t, p.FijarMonto(PagoEfectivo, decimal.NewFromFloat(258)))
	assert.True(t, p.Restante(total).IsZero())
	assert.Equal(t, "58", p.Vuelto(total).String())
}

func TestPagos_DetalleEnOrdenDeActivacion(t *testing.T) {
	var p Pagos
	require.NoError(t, p.Alternar(PagoTarjeta, decimal.NewFromFloat(100)))
	require.NoError(t, p.Alternar(PagoEfectivo, decimal.Zero))

	detalle := p.Detalle()
	require.Len(t, detalle, 2)
	assert.Equal(t, "tarjeta", detalle[0].Metodo)
	assert.Equal(t, "efectivo", detalle[1].Metodo)
}

func TestPagos_CargarDescartaDesconocidos(t *testing.T) {
	var p Pagos
	p.cargar([]model.PagoVenta{
		{Metodo: "efectivo", Monto: decimal.NewFromFloat(100)},
		{Metodo: "cripto", Monto: decimal.NewFromFloat(999)},
		{Metodo: "efectivo", Monto: decimal.NewFromFloat(50)}, // duplicado
	})
	detalle := p.Detalle()
	require.Len(t, detalle, 1)
	assert.Equal(t, "100", detalle[0].Monto.String())
}
