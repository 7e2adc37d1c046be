package worker

// comprobante_worker.go
// Renders printable comprobantes (thermal ticket for entregado/consigna, quote
// layout for presupuesto) from the snapshot captured at save time. When the
// customer left an email, an email job is chained with the PDF attached.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/venezolean/POSPLIPSHOP/internal/infra"
	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// ComprobanteJobPayload is the job envelope sent to QueueComprobante. It
// carries the full sale snapshot so rendering never goes back to the backend.
type ComprobanteJobPayload struct {
	Comprobante  model.Comprobante `json:"comprobante"`
	ClienteEmail *string           `json:"cliente_email,omitempty"`
}

type ComprobanteWorker struct {
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewComprobanteWorker(dispatcher *Dispatcher, pdfStoragePath string) *ComprobanteWorker {
	return &ComprobanteWorker{dispatcher: dispatcher, pdfStoragePath: pdfStoragePath}
}

// Process renders the PDF and, when an email is present, chains an email job.
func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("comprobante_worker: invalid payload: %w", err)
	}
	c := payload.Comprobante

	pdfPath, err := infra.GenerarComprobantePDF(&c, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("comprobante_worker: render venta %d: %w", c.VentaID, err)
	}
	log.Info().Str("pdf", pdfPath).Int64("venta_id", c.VentaID).Str("estado", c.Estado).Msg("comprobante_worker: PDF generated")

	if payload.ClienteEmail == nil || *payload.ClienteEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Comprobante Plipshop — Venta N° %d", c.VentaID)
	body := fmt.Sprintf("Adjunto encontrarás tu comprobante de compra.\nTotal: $%s", c.Total.StringFixed(2))
	if c.Estado == "presupuesto" {
		subject = fmt.Sprintf("Presupuesto Plipshop N° %d", c.VentaID)
		body = fmt.Sprintf("Adjunto encontrarás el presupuesto solicitado.\nTotal: $%s", c.Total.StringFixed(2))
	}
	emailJob := EmailJobPayload{
		ToEmail: *payload.ClienteEmail,
		Subject: subject,
		Body:    body,
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		return fmt.Errorf("comprobante_worker: enqueue email: %w", err)
	}
	log.Info().Str("email", *payload.ClienteEmail).Int64("venta_id", c.VentaID).Msg("comprobante_worker: email job enqueued")
	return nil
}
