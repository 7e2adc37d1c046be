package infra

// pdf.go — printable comprobantes using go-pdf/fpdf.
// Sales and consignments render as an A7-ish thermal ticket; budgets render
// as an A5 quote the operator can hand to the customer.
// Output files land in storagePath/{comprobante,presupuesto}_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// ComprobantePDFPath returns where the renderer writes (or wrote) the file
// for a given sale, without generating anything.
func ComprobantePDFPath(storagePath string, ventaID int64, estado string) string {
	prefix := "comprobante"
	if estado == "presupuesto" {
		prefix = "presupuesto"
	}
	return filepath.Join(storagePath, fmt.Sprintf("%s_%d.pdf", prefix, ventaID))
}

// GenerarComprobantePDF renders a comprobante snapshot to disk and returns
// the file path. Budgets get the quote layout, everything else the ticket.
func GenerarComprobantePDF(c *model.Comprobante, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := ComprobantePDFPath(storagePath, c.VentaID, c.Estado)

	if c.Estado == "presupuesto" {
		return filePath, generarPresupuesto(c, filePath)
	}
	return filePath, generarTicket(c, filePath)
}

func generarTicket(c *model.Comprobante, filePath string) error {
	// 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Plipshop", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	titulo := "Comprobante de Compra"
	if c.Estado == "consigna" {
		titulo = "Entrega en Consigna"
	}
	pdf.CellFormat(contentW, 5, titulo, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Venta N° %d", c.VentaID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, c.Fecha.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if c.Cliente != "" {
		pdf.CellFormat(contentW, 4, "Cliente: "+c.Cliente, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, l := range c.Lineas {
		nombre := l.Nombre
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", l.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+l.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	if !c.Descuento.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Descuento:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-$"+c.Descuento.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if !c.Impuesto.IsZero() {
		pdf.CellFormat(col1+col2, 5, "IVA:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+c.Impuesto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+c.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	for _, pago := range c.Pagos {
		pdf.CellFormat(col1+col2, 4, "Pago ("+pago.Metodo+"):", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+pago.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if !c.Vuelto.IsZero() {
		pdf.CellFormat(col1+col2, 4, "Vuelto:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+c.Vuelto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return fmt.Errorf("pdf: write file: %w", err)
	}
	return nil
}

func generarPresupuesto(c *model.Comprobante, filePath string) error {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Plipshop", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Presupuesto N° %d", c.VentaID), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, c.Fecha.Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	if c.Cliente != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, "Cliente: "+c.Cliente, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	col1 := contentW * 0.46
	col2 := contentW * 0.12
	col3 := contentW * 0.21
	col4 := contentW * 0.21

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "P. unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range c.Lineas {
		nombre := l.Nombre
		if len(nombre) > 34 {
			nombre = nombre[:33] + "…"
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", l.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+l.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+l.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(col1+col2+col3, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "$"+c.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !c.Descuento.IsZero() {
		pdf.CellFormat(col1+col2+col3, 6, "Descuento:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "-$"+c.Descuento.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if !c.Impuesto.IsZero() {
		pdf.CellFormat(col1+col2+col3, 6, "IVA:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+c.Impuesto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+c.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Presupuesto sin valor fiscal. Precios sujetos a cambio sin previo aviso.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return fmt.Errorf("pdf: write file: %w", err)
	}
	return nil
}
