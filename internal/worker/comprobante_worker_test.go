package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// dispatcherSinRedis points at a closed port; any enqueue fails immediately.
func dispatcherSinRedis() *Dispatcher {
	return NewDispatcher(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
}

func payloadDePrueba(email *string) json.RawMessage {
	payload := ComprobanteJobPayload{
		Comprobante: model.Comprobante{
			VentaID:  321,
			Estado:   "entregado",
			Fecha:    time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC),
			Operador: "Carla Pérez",
			Lineas: []model.LineaComprobante{
				{Nombre: "Taza cerámica", Cantidad: 2, PrecioUnitario: decimal.NewFromFloat(100), Subtotal: decimal.NewFromFloat(200)},
			},
			Subtotal: decimal.NewFromFloat(200),
			Impuesto: decimal.NewFromFloat(42),
			Total:    decimal.NewFromFloat(242),
			Pagos: []model.PagoVenta{
				{Metodo: "efectivo", Monto: decimal.NewFromFloat(242)},
			},
			Vuelto: decimal.Zero,
		},
		ClienteEmail: email,
	}
	raw, _ := json.Marshal(payload)
	return raw
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestComprobanteWorker_RenderizaSinEmail(t *testing.T) {
	dir := t.TempDir()
	w := NewComprobanteWorker(dispatcherSinRedis(), dir)

	err := w.Process(context.Background(), payloadDePrueba(nil))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "comprobante_321.pdf"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestComprobanteWorker_EmailEncadenadoFalla(t *testing.T) {
	dir := t.TempDir()
	w := NewComprobanteWorker(dispatcherSinRedis(), dir)
	email := "marta@example.com"

	// The PDF renders fine; the chained email enqueue cannot reach Redis, so
	// the job as a whole fails and would land in the dead-letter list.
	err := w.Process(context.Background(), payloadDePrueba(&email))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enqueue email")

	_, statErr := os.Stat(filepath.Join(dir, "comprobante_321.pdf"))
	assert.NoError(t, statErr)
}

func TestComprobanteWorker_PayloadInvalido(t *testing.T) {
	w := NewComprobanteWorker(dispatcherSinRedis(), t.TempDir())

	err := w.Process(context.Background(), json.RawMessage(`{"comprobante": "no-es-objeto"}`))
	require.Error(t, err)
}
