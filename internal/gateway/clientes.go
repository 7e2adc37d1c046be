package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// ClienteRegistro is the field set sent to registrar_cliente. Natural
// customers carry nombre/apellido; juridicos carry razon social.
type ClienteRegistro struct {
	Tipo        model.TipoCliente
	Nombre      string
	Apellido    string
	RazonSocial string
	Documento   string
	Telefono    string
	Email       string
	Direccion   string
}

// ClienteGateway covers customer lookup and registration.
type ClienteGateway interface {
	// BuscarPorDocumento returns (nil, nil) when no customer matches — a
	// normal branch routing to registration, not an error.
	BuscarPorDocumento(ctx context.Context, documento string) (*model.Cliente, error)
	Registrar(ctx context.Context, reg ClienteRegistro, operadorID string) (int64, error)
}

type clienteGateway struct{ db *gorm.DB }

func NewClienteGateway(db *gorm.DB) ClienteGateway { return &clienteGateway{db: db} }

func (g *clienteGateway) BuscarPorDocumento(ctx context.Context, documento string) (*model.Cliente, error) {
	raw, err := jsonRow(ctx, g.db, "SELECT buscar_cliente_documento(?)", documento)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	cliente := &model.Cliente{}
	if err := json.Unmarshal(raw, cliente); err != nil {
		return nil, fmt.Errorf("buscar_cliente_documento: respuesta ilegible: %w", err)
	}
	return cliente, nil
}

func (g *clienteGateway) Registrar(ctx context.Context, reg ClienteRegistro, operadorID string) (int64, error) {
	var id int64
	row := g.db.WithContext(ctx).Raw(
		"SELECT registrar_cliente(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		string(reg.Tipo), reg.Nombre, reg.Apellido, reg.RazonSocial,
		reg.Documento, reg.Telefono, reg.Email, reg.Direccion, operadorID,
	).Row()
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("registrar_cliente: %w", err)
	}
	return id, nil
}
