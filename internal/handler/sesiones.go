package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/venezolean/POSPLIPSHOP/internal/apierror"
	"github.com/venezolean/POSPLIPSHOP/internal/borrador"
	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/middleware"
	"github.com/venezolean/POSPLIPSHOP/internal/service"
	"github.com/venezolean/POSPLIPSHOP/internal/venta"
)

type SesionesHandler struct{ svc service.SesionService }

func NewSesionesHandler(svc service.SesionService) *SesionesHandler {
	return &SesionesHandler{svc: svc}
}

// sesionID parses the :id path param; writes the 400 itself on failure.
func sesionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id de sesión invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// responder maps service errors to status codes shared by every session route.
func responder(c *gin.Context, resp *dto.SesionResponse, err error) {
	if err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}
	switch {
	case errors.Is(err, service.ErrSesionNoEncontrada):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrSesionAjena):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.Is(err, service.ErrClienteNoExiste), errors.Is(err, borrador.ErrNoExiste):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// Crear godoc
// @Summary Abre una nueva sesión de venta (requiere caja abierta)
// @Tags sesiones
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.SesionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sesiones [post]
func (h *SesionesHandler) Crear(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Crear(c.Request.Context(), claims.OperadorID)
	if err != nil {
		if errors.Is(err, service.ErrCajaCerrada) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SesionesHandler) Obtener(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Obtener(c.Request.Context(), claims.OperadorID, id)
	responder(c, resp, err)
}

func (h *SesionesHandler) AgregarItem(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.AgregarItem(c.Request.Context(), claims.OperadorID, id, req)
	responder(c, resp, err)
}

func (h *SesionesHandler) ActualizarItem(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	var req dto.ActualizarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ActualizarItem(c.Request.Context(), claims.OperadorID, id, c.Param("sku"), req)
	responder(c, resp, err)
}

func (h *SesionesHandler) QuitarItem(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.QuitarItem(c.Request.Context(), claims.OperadorID, id, c.Param("sku"))
	responder(c, resp, err)
}

func (h *SesionesHandler) Actualizar(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	var req dto.ActualizarSesionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Actualizar(c.Request.Context(), claims.OperadorID, id, req)
	responder(c, resp, err)
}

func (h *SesionesHandler) AsignarCliente(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	var req dto.AsignarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.AsignarCliente(c.Request.Context(), claims.OperadorID, id, req.Documento)
	responder(c, resp, err)
}

func (h *SesionesHandler) QuitarCliente(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.QuitarCliente(c.Request.Context(), claims.OperadorID, id)
	responder(c, resp, err)
}

func (h *SesionesHandler) AlternarPago(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	var req dto.AlternarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.AlternarPago(c.Request.Context(), claims.OperadorID, id, req.Metodo)
	responder(c, resp, err)
}

func (h *SesionesHandler) FijarPago(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	var req dto.FijarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.FijarPago(c.Request.Context(), claims.OperadorID, id, req)
	responder(c, resp, err)
}

func (h *SesionesHandler) MercadoLibre(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.MercadoLibre(c.Request.Context(), claims.OperadorID, id)
	responder(c, resp, err)
}

// Guardar godoc
// @Summary Registra la venta (entregado|presupuesto|consigna) o convierte el presupuesto cargado
// @Tags sesiones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de sesión"
// @Param body body dto.GuardarSesionRequest true "Estado destino"
// @Success 200 {object} dto.GuardarSesionResponse
// @Failure 409 {object} apierror.APIError
// @Failure 502 {object} apierror.APIError
// @Router /v1/sesiones/{id}/guardar [post]
func (h *SesionesHandler) Guardar(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	var req dto.GuardarSesionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Guardar(c.Request.Context(), claims.OperadorID, claims.Username, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSesionNoEncontrada):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrSesionAjena):
			c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		case errors.Is(err, venta.ErrCarritoVacio),
			errors.Is(err, venta.ErrPagoInsuficiente),
			errors.Is(err, venta.ErrSinPagos),
			errors.Is(err, venta.ErrEstadoInvalido):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			// Gateway failures: the session keeps its state so the operator
			// can retry.
			c.JSON(http.StatusBadGateway, apierror.New("No se pudo registrar la venta: "+err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SesionesHandler) Reiniciar(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Reiniciar(c.Request.Context(), claims.OperadorID, id)
	responder(c, resp, err)
}

// ── Borradores ───────────────────────────────────────────────────────────────

func (h *SesionesHandler) GuardarBorrador(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	b, err := h.svc.GuardarBorrador(c.Request.Context(), claims.OperadorID, id)
	if err != nil {
		responder(c, nil, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *SesionesHandler) CargarBorrador(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.CargarBorrador(c.Request.Context(), claims.OperadorID, id, c.Param("borrador_id"))
	responder(c, resp, err)
}

func (h *SesionesHandler) ListarBorradores(c *gin.Context) {
	claims := middleware.GetClaims(c)
	borradores, err := h.svc.ListarBorradores(c.Request.Context(), claims.OperadorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudieron listar los borradores"))
		return
	}
	c.JSON(http.StatusOK, borradores)
}

func (h *SesionesHandler) EliminarBorrador(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.EliminarBorrador(c.Request.Context(), claims.OperadorID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo eliminar el borrador"))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Presupuestos ─────────────────────────────────────────────────────────────

func (h *SesionesHandler) BuscarPresupuestos(c *gin.Context) {
	presupuestos, err := h.svc.BuscarPresupuestos(c.Request.Context(), c.Query("term"))
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("No se pudieron buscar presupuestos"))
		return
	}
	c.JSON(http.StatusOK, presupuestos)
}

func (h *SesionesHandler) CargarPresupuesto(c *gin.Context) {
	id, ok := sesionID(c)
	if !ok {
		return
	}
	var req dto.CargarPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.CargarPresupuesto(c.Request.Context(), claims.OperadorID, id, req.PresupuestoID)
	responder(c, resp, err)
}
