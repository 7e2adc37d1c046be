package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/venezolean/POSPLIPSHOP/internal/config"
	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/gateway"
	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

var (
	ErrCajaCerrada   = errors.New("no hay una caja abierta para el operador")
	ErrCajaYaAbierta = errors.New("el operador ya tiene una caja abierta")
	ErrMontoApertura = errors.New("el monto de apertura debe ser mayor a cero")
	ErrCodigoCierre  = errors.New("código de cierre incorrecto")
)

type CajaService interface {
	// Abierta returns the operator's open register, or ErrCajaCerrada.
	Abierta(ctx context.Context, operadorID string) (*model.Caja, error)
	Abrir(ctx context.Context, operadorID string, req dto.AbrirCajaRequest) (*model.Caja, error)
	ResumenCierre(ctx context.Context, operadorID string) (*dto.ResumenCierreResponse, error)
	Cerrar(ctx context.Context, operadorID string, req dto.CerrarCajaRequest) (*dto.ResumenCierreResponse, error)
}

type cajaService struct {
	cajas gateway.CajaGateway
	cfg   *config.Config
}

func NewCajaService(cajas gateway.CajaGateway, cfg *config.Config) CajaService {
	return &cajaService{cajas: cajas, cfg: cfg}
}

func (s *cajaService) Abierta(ctx context.Context, operadorID string) (*model.Caja, error) {
	caja, err := s.cajas.Abierta(ctx, operadorID)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, ErrCajaCerrada
	}
	return caja, nil
}

func (s *cajaService) Abrir(ctx context.Context, operadorID string, req dto.AbrirCajaRequest) (*model.Caja, error) {
	if !req.MontoApertura.IsPositive() {
		return nil, ErrMontoApertura
	}
	existente, err := s.cajas.Abierta(ctx, operadorID)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, ErrCajaYaAbierta
	}
	return s.cajas.Abrir(ctx, operadorID, req.MontoApertura)
}

func (s *cajaService) ResumenCierre(ctx context.Context, operadorID string) (*dto.ResumenCierreResponse, error) {
	caja, err := s.Abierta(ctx, operadorID)
	if err != nil {
		return nil, err
	}
	resumen, err := s.cajas.ResumenCierre(ctx, caja.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenCierreResponse{
		Caja:      cajaResponse(caja),
		Resumen:   *resumen,
		CajaFinal: resumen.CajaFinal(),
	}, nil
}

// Cerrar validates the close code, defaults the declared amount to the
// opening float and persists the close. The register is terminal afterwards.
func (s *cajaService) Cerrar(ctx context.Context, operadorID string, req dto.CerrarCajaRequest) (*dto.ResumenCierreResponse, error) {
	if subtle.ConstantTimeCompare([]byte(req.Codigo), []byte(s.cfg.CajaCodigoCierre)) != 1 {
		return nil, ErrCodigoCierre
	}

	caja, err := s.Abierta(ctx, operadorID)
	if err != nil {
		return nil, err
	}
	resumen, err := s.cajas.ResumenCierre(ctx, caja.ID)
	if err != nil {
		return nil, err
	}

	montoCierre := caja.MontoApertura
	if req.MontoCierre != nil {
		montoCierre = *req.MontoCierre
	}
	if montoCierre.IsNegative() {
		return nil, errors.New("el monto de cierre no puede ser negativo")
	}

	if err := s.cajas.Cerrar(ctx, caja.ID, montoCierre, operadorID); err != nil {
		return nil, err
	}

	return &dto.ResumenCierreResponse{
		Caja:      cajaResponse(caja),
		Resumen:   *resumen,
		CajaFinal: resumen.CajaFinal(),
	}, nil
}

func cajaResponse(caja *model.Caja) dto.CajaResponse {
	return dto.CajaResponse{
		ID:            caja.ID,
		OperadorID:    caja.OperadorID,
		MontoApertura: caja.MontoApertura,
		AbiertaEn:     caja.AbiertaEn.Format("2006-01-02T15:04:05Z07:00"),
	}
}
