package service

import (
	"context"

	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/gateway"
	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

type ClienteService interface {
	// BuscarPorDocumento returns (nil, nil) when no customer matches; the
	// handler turns that into a 404 so the terminal routes to registration.
	BuscarPorDocumento(ctx context.Context, documento string) (*model.Cliente, error)
	Registrar(ctx context.Context, req dto.RegistrarClienteRequest, operadorID string) (int64, error)
}

type clienteService struct {
	clientes gateway.ClienteGateway
}

func NewClienteService(clientes gateway.ClienteGateway) ClienteService {
	return &clienteService{clientes: clientes}
}

func (s *clienteService) BuscarPorDocumento(ctx context.Context, documento string) (*model.Cliente, error) {
	return s.clientes.BuscarPorDocumento(ctx, documento)
}

func (s *clienteService) Registrar(ctx context.Context, req dto.RegistrarClienteRequest, operadorID string) (int64, error) {
	return s.clientes.Registrar(ctx, gateway.ClienteRegistro{
		Tipo:        model.TipoCliente(req.Tipo),
		Nombre:      req.Nombre,
		Apellido:    req.Apellido,
		RazonSocial: req.RazonSocial,
		Documento:   req.Documento,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Direccion:   req.Direccion,
	}, operadorID)
}
