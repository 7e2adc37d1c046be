package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venezolean/POSPLIPSHOP/internal/apierror"
	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/middleware"
	"github.com/venezolean/POSPLIPSHOP/internal/service"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Estado godoc
// @Summary Devuelve la caja abierta del operador
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Caja
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja [get]
func (h *CajaHandler) Estado(c *gin.Context) {
	claims := middleware.GetClaims(c)
	caja, err := h.svc.Abierta(c.Request.Context(), claims.OperadorID)
	if err != nil {
		if errors.Is(err, service.ErrCajaCerrada) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo consultar el estado de la caja"))
		return
	}
	c.JSON(http.StatusOK, caja)
}

// Abrir godoc
// @Summary Abre la caja del turno
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Monto de apertura"
// @Success 201 {object} model.Caja
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	caja, err := h.svc.Abrir(c.Request.Context(), claims.OperadorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, caja)
}

// ResumenCierre godoc
// @Summary Resumen de cierre de la caja abierta
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResumenCierreResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/resumen [get]
func (h *CajaHandler) ResumenCierre(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ResumenCierre(c.Request.Context(), claims.OperadorID)
	if err != nil {
		if errors.Is(err, service.ErrCajaCerrada) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo obtener el resumen de cierre"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cierra la caja del turno
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Codigo de cierre y monto declarado"
// @Success 200 {object} dto.ResumenCierreResponse
// @Failure 400 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Cerrar(c.Request.Context(), claims.OperadorID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodigoCierre):
			c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		case errors.Is(err, service.ErrCajaCerrada):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
