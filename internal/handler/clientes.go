package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venezolean/POSPLIPSHOP/internal/apierror"
	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/middleware"
	"github.com/venezolean/POSPLIPSHOP/internal/service"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Buscar godoc
// @Summary Busca un cliente por documento (DNI/CUIT)
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param documento path string true "DNI o CUIT"
// @Success 200 {object} model.Cliente
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{documento} [get]
func (h *ClientesHandler) Buscar(c *gin.Context) {
	cliente, err := h.svc.BuscarPorDocumento(c.Request.Context(), c.Param("documento"))
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo buscar el cliente"))
		return
	}
	if cliente == nil {
		// Normal branch: the terminal routes to the registration form.
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	c.JSON(http.StatusOK, cliente)
}

// Registrar godoc
// @Summary Registra un cliente nuevo
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarClienteRequest true "Datos del cliente"
// @Success 201 {object} dto.RegistrarClienteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/clientes [post]
func (h *ClientesHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	id, err := h.svc.Registrar(c.Request.Context(), req, claims.OperadorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.RegistrarClienteResponse{ID: id})
}
