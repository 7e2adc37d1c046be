package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// SugerenciaGateway persists operator feedback notes.
type SugerenciaGateway interface {
	Registrar(ctx context.Context, s model.Sugerencia) (int64, error)
}

type sugerenciaGateway struct{ db *gorm.DB }

func NewSugerenciaGateway(db *gorm.DB) SugerenciaGateway { return &sugerenciaGateway{db: db} }

func (g *sugerenciaGateway) Registrar(ctx context.Context, s model.Sugerencia) (int64, error) {
	contexto, err := json.Marshal(s.Contexto)
	if err != nil {
		return 0, err
	}
	var id int64
	row := g.db.WithContext(ctx).Raw(
		"SELECT registrar_sugerencia(?, ?::jsonb, ?)", s.OperadorID, contexto, s.Nota,
	).Row()
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("registrar_sugerencia: %w", err)
	}
	return id, nil
}
