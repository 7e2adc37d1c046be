package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// OperadorGateway resolves terminal operators for authentication. Credential
// verification happens terminal-side against the stored hash.
type OperadorGateway interface {
	// BuscarPorUsername returns (nil, nil) when the username is unknown.
	BuscarPorUsername(ctx context.Context, username string) (*model.Operador, error)
}

type operadorGateway struct{ db *gorm.DB }

func NewOperadorGateway(db *gorm.DB) OperadorGateway { return &operadorGateway{db: db} }

func (g *operadorGateway) BuscarPorUsername(ctx context.Context, username string) (*model.Operador, error) {
	raw, err := jsonRow(ctx, g.db, "SELECT buscar_operador(?)", username)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	// The hash travels in the procedure payload but never re-serializes out
	// of the model (json:"-"), so it is decoded through an alias shape.
	var payload struct {
		model.Operador
		PasswordHash string `json:"password_hash"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("buscar_operador: respuesta ilegible: %w", err)
	}
	operador := payload.Operador
	operador.PasswordHash = payload.PasswordHash
	return &operador, nil
}
