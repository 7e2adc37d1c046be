package handler

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/venezolean/POSPLIPSHOP/internal/apierror"
	"github.com/venezolean/POSPLIPSHOP/internal/infra"
)

type ComprobantesHandler struct {
	pdfStoragePath string
}

func NewComprobantesHandler(pdfStoragePath string) *ComprobantesHandler {
	return &ComprobantesHandler{pdfStoragePath: pdfStoragePath}
}

// Descargar godoc
// @Summary Descarga el PDF de un comprobante o presupuesto ya renderizado
// @Tags comprobantes
// @Produce application/pdf
// @Security BearerAuth
// @Param venta_id path int true "ID de venta"
// @Param tipo query string false "venta | presupuesto" default(venta)
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/comprobantes/{venta_id}/pdf [get]
func (h *ComprobantesHandler) Descargar(c *gin.Context) {
	ventaID, err := strconv.ParseInt(c.Param("venta_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("venta_id invalido"))
		return
	}
	estado := "entregado"
	if c.Query("tipo") == "presupuesto" {
		estado = "presupuesto"
	}

	path := infra.ComprobantePDFPath(h.pdfStoragePath, ventaID, estado)
	if _, err := os.Stat(path); err != nil {
		// Rendering is async; the file may simply not exist yet.
		c.JSON(http.StatusNotFound, apierror.New("Comprobante aún no disponible"))
		return
	}
	c.FileAttachment(path, "comprobante.pdf")
}
