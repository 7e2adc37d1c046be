package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/venezolean/POSPLIPSHOP/internal/apierror"
	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/middleware"
	"github.com/venezolean/POSPLIPSHOP/internal/service"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// Buscar godoc
// @Summary Búsqueda avanzada de inventario
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Param term query string false "Texto libre"
// @Param stock query string false "all | in-stock | low-stock | out-of-stock"
// @Success 200 {array} model.InventarioItem
// @Router /v1/inventario [get]
func (h *InventarioHandler) Buscar(c *gin.Context) {
	var filter dto.InventarioFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	items, err := h.svc.Buscar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo buscar el inventario"))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventarioHandler) OpcionesFiltros(c *gin.Context) {
	opciones, err := h.svc.OpcionesFiltros(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("No se pudieron obtener los filtros"))
		return
	}
	c.JSON(http.StatusOK, opciones)
}

// Actualizar godoc
// @Summary Actualiza stock/precio/link de una fila de inventario
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de fila"
// @Param body body dto.ActualizarInventarioRequest true "Cambios"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/inventario/{id} [patch]
func (h *InventarioHandler) Actualizar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	var req dto.ActualizarInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	if err := h.svc.ActualizarItem(c.Request.Context(), id, req, claims.OperadorID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
