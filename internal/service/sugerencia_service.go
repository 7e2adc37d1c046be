package service

import (
	"context"

	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/gateway"
	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

type SugerenciaService interface {
	Registrar(ctx context.Context, operadorID string, req dto.SugerenciaRequest) (int64, error)
}

type sugerenciaService struct {
	sugerencias gateway.SugerenciaGateway
}

func NewSugerenciaService(sugerencias gateway.SugerenciaGateway) SugerenciaService {
	return &sugerenciaService{sugerencias: sugerencias}
}

func (s *sugerenciaService) Registrar(ctx context.Context, operadorID string, req dto.SugerenciaRequest) (int64, error) {
	return s.sugerencias.Registrar(ctx, model.Sugerencia{
		OperadorID: operadorID,
		Contexto:   req.Contexto,
		Nota:       req.Nota,
	})
}
