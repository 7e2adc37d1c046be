package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/venezolean/POSPLIPSHOP/internal/apierror"
	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/middleware"
	"github.com/venezolean/POSPLIPSHOP/internal/service"
)

const precioCacheTTL = 4 * time.Hour

type ProductosHandler struct {
	svc service.ProductoService
	rdb *redis.Client
}

func NewProductosHandler(svc service.ProductoService, rdb *redis.Client) *ProductosHandler {
	return &ProductosHandler{svc: svc, rdb: rdb}
}

// Buscar godoc
// @Summary Búsqueda de productos por texto o código de barras
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Param term query string true "Texto o código"
// @Success 200 {array} model.Producto
// @Router /v1/productos [get]
func (h *ProductosHandler) Buscar(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, apierror.New("term requerido"))
		return
	}
	productos, err := h.svc.Buscar(c.Request.Context(), term)
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo buscar productos"))
		return
	}
	c.JSON(http.StatusOK, productos)
}

// Precio godoc
// @Summary Consulta de precio por código de barras (sin autenticación)
// @Tags precio
// @Produce json
// @Param barcode path string true "Código de barras"
// @Success 200 {object} dto.PrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{barcode} [get]
func (h *ProductosHandler) Precio(c *gin.Context) {
	barcode := c.Param("barcode")
	ctx := c.Request.Context()
	cacheKey := "precio:" + barcode

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.svc.PrecioPorBarcode(ctx, barcode)
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo consultar el precio"))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

// Registrar godoc
// @Summary Alta de producto con características tipadas
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarProductoRequest true "Atributos del producto"
// @Success 201 {object} dto.RegistrarProductoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/productos [post]
func (h *ProductosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	id, err := h.svc.Registrar(c.Request.Context(), req, claims.OperadorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.RegistrarProductoResponse{ID: id})
}
