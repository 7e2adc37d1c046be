// Package gateway is the terminal's only bridge to the remote backend. Every
// business operation is a named stored-procedure call (plus one table upsert
// for inventory rows); the backend's transaction semantics, search ranking
// and schema stay opaque to this repository.
//
// Set-returning procedures are aggregated to a single jsonb value in the
// issued statement so decoding stays in one place (encoding/json) and the
// backend remains free to evolve row shapes.
package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// errNoRows normalizes the two "nothing there" shapes gorm can produce.
func errNoRows(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows)
}

// jsonRow executes a statement whose single column is a jsonb value and
// returns the raw bytes. A NULL result comes back as nil with no error.
func jsonRow(ctx context.Context, db *gorm.DB, query string, args ...interface{}) ([]byte, error) {
	var raw []byte
	row := db.WithContext(ctx).Raw(query, args...).Row()
	if err := row.Scan(&raw); err != nil {
		if errNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

// jsonList executes a jsonb_agg-wrapped procedure call and decodes the array
// into dest. An empty or NULL aggregate leaves dest untouched.
func jsonList(ctx context.Context, db *gorm.DB, dest interface{}, query string, args ...interface{}) error {
	raw, err := jsonRow(ctx, db, query, args...)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("gateway: respuesta ilegible: %w", err)
	}
	return nil
}
