package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venezolean/POSPLIPSHOP/internal/apierror"
	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/middleware"
	"github.com/venezolean/POSPLIPSHOP/internal/service"
)

type SugerenciasHandler struct{ svc service.SugerenciaService }

func NewSugerenciasHandler(svc service.SugerenciaService) *SugerenciasHandler {
	return &SugerenciasHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra una sugerencia del operador
// @Tags sugerencias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SugerenciaRequest true "Nota y contexto"
// @Success 201 {object} dto.SugerenciaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/sugerencias [post]
func (h *SugerenciasHandler) Registrar(c *gin.Context) {
	var req dto.SugerenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	id, err := h.svc.Registrar(c.Request.Context(), claims.OperadorID, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo registrar la sugerencia"))
		return
	}
	c.JSON(http.StatusCreated, dto.SugerenciaResponse{ID: id})
}
