package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Product characteristics used to be free-form key→string-list blobs parsed ad
// hoc. Here each attribute declares its type and is validated at the boundary
// before being serialized into the procedure's JSONB parameter.

// TipoCaracteristica discriminates the attribute variants.
// "texto": one free string. "numerica": one decimal-parseable string.
// "opcion": exactly one value from a closed set. "multiple": one or more values.
type TipoCaracteristica string

const (
	CaracteristicaTexto    TipoCaracteristica = "texto"
	CaracteristicaNumerica TipoCaracteristica = "numerica"
	CaracteristicaOpcion   TipoCaracteristica = "opcion"
	CaracteristicaMultiple TipoCaracteristica = "multiple"
)

// Caracteristica is one typed product attribute.
type Caracteristica struct {
	Tipo    TipoCaracteristica `json:"tipo"`
	Valores []string           `json:"valores"`
}

// Caracteristicas maps attribute name to its typed value set.
type Caracteristicas map[string]Caracteristica

// Validar rejects malformed attributes before they reach the backend.
func (cs Caracteristicas) Validar() error {
	for nombre, c := range cs {
		if nombre == "" {
			return fmt.Errorf("caracteristica sin nombre")
		}
		switch c.Tipo {
		case CaracteristicaTexto, CaracteristicaOpcion:
			if len(c.Valores) != 1 {
				return fmt.Errorf("caracteristica %q requiere exactamente un valor", nombre)
			}
		case CaracteristicaNumerica:
			if len(c.Valores) != 1 {
				return fmt.Errorf("caracteristica %q requiere exactamente un valor", nombre)
			}
			if _, err := strconv.ParseFloat(c.Valores[0], 64); err != nil {
				return fmt.Errorf("caracteristica %q no es numerica: %q", nombre, c.Valores[0])
			}
		case CaracteristicaMultiple:
			if len(c.Valores) == 0 {
				return fmt.Errorf("caracteristica %q requiere al menos un valor", nombre)
			}
		default:
			return fmt.Errorf("caracteristica %q con tipo desconocido %q", nombre, c.Tipo)
		}
		for _, v := range c.Valores {
			if v == "" {
				return fmt.Errorf("caracteristica %q con valor vacio", nombre)
			}
		}
	}
	return nil
}

// JSONB serializes the map for the stored-procedure parameter. The backend's
// legacy shape is key → list of strings, so the typed layer flattens here.
func (cs Caracteristicas) JSONB() ([]byte, error) {
	if err := cs.Validar(); err != nil {
		return nil, err
	}
	plano := make(map[string][]string, len(cs))
	for nombre, c := range cs {
		plano[nombre] = c.Valores
	}
	return json.Marshal(plano)
}

// UnmarshalJSON accepts both the typed shape and the legacy flat
// key → []string shape returned by older backend rows.
func (cs *Caracteristicas) UnmarshalJSON(data []byte) error {
	tipadas := map[string]Caracteristica{}
	if err := json.Unmarshal(data, &tipadas); err == nil {
		valido := true
		for _, c := range tipadas {
			if c.Tipo == "" {
				valido = false
				break
			}
		}
		if valido && len(tipadas) > 0 {
			*cs = tipadas
			return nil
		}
	}

	planas := map[string][]string{}
	if err := json.Unmarshal(data, &planas); err != nil {
		return err
	}
	out := make(Caracteristicas, len(planas))
	for nombre, valores := range planas {
		tipo := CaracteristicaMultiple
		if len(valores) == 1 {
			tipo = CaracteristicaTexto
		}
		out[nombre] = Caracteristica{Tipo: tipo, Valores: valores}
	}
	*cs = out
	return nil
}
