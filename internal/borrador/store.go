// Package borrador persists in-progress sale drafts in the terminal's local
// durable storage (Redis at a fixed key per operator). Drafts are a
// client-local convenience: they survive restarts but are never synced to the
// backend, and are lost if storage is cleared.
package borrador

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// ClaveBorradores is the fixed storage key prefix; one JSON list per operator.
const ClaveBorradores = "plipshop:venta:borradores:"

// MaxBorradores caps the list at the most recent entries.
const MaxBorradores = 3

// ErrNoExiste is returned by a KV when the key has never been written.
var ErrNoExiste = errors.New("clave inexistente")

// KV is the minimal durable key-value surface the store needs. Implemented by
// redisKV in production and by an in-memory map in tests.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type redisKV struct{ rdb *redis.Client }

func (k redisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := k.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoExiste
	}
	return v, err
}

func (k redisKV) Set(ctx context.Context, key, value string) error {
	return k.rdb.Set(ctx, key, value, 0).Err()
}

// Store keeps a bounded, most-recent-first draft list per operator.
//
// Save is read-modify-write over a single key: it is not transactional across
// concurrent terminals. Accepted for a single-operator terminal.
type Store struct {
	kv KV
}

// NewStore builds a Redis-backed store.
func NewStore(rdb *redis.Client) *Store {
	return &Store{kv: redisKV{rdb: rdb}}
}

// NewStoreKV builds a store over any KV (tests).
func NewStoreKV(kv KV) *Store { return &Store{kv: kv} }

// Guardar saves a draft: fresh id if absent, dedupe by id, prepend, truncate
// to the MaxBorradores most recent, persist the resulting list in one write.
// Returns the saved draft with its assigned id.
func (s *Store) Guardar(ctx context.Context, operadorID string, b model.Borrador) (model.Borrador, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.GuardadoEn = time.Now()

	lista := s.leer(ctx, operadorID)
	actual := make([]model.Borrador, 0, len(lista)+1)
	actual = append(actual, b)
	for _, d := range lista {
		if d.ID != b.ID {
			actual = append(actual, d)
		}
	}
	if len(actual) > MaxBorradores {
		actual = actual[:MaxBorradores]
	}

	data, err := json.Marshal(actual)
	if err != nil {
		return model.Borrador{}, err
	}
	if err := s.kv.Set(ctx, ClaveBorradores+operadorID, string(data)); err != nil {
		return model.Borrador{}, err
	}
	return b, nil
}

// Listar returns the persisted drafts most-recent-first. Missing or corrupt
// storage degrades to an empty list, never an error.
func (s *Store) Listar(ctx context.Context, operadorID string) []model.Borrador {
	return s.leer(ctx, operadorID)
}

// Eliminar removes the draft with the given id; no-op if absent.
func (s *Store) Eliminar(ctx context.Context, operadorID, id string) error {
	lista := s.leer(ctx, operadorID)
	actual := make([]model.Borrador, 0, len(lista))
	for _, d := range lista {
		if d.ID != id {
			actual = append(actual, d)
		}
	}
	if len(actual) == len(lista) {
		return nil
	}
	data, err := json.Marshal(actual)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, ClaveBorradores+operadorID, string(data))
}

func (s *Store) leer(ctx context.Context, operadorID string) []model.Borrador {
	raw, err := s.kv.Get(ctx, ClaveBorradores+operadorID)
	if err != nil {
		if !errors.Is(err, ErrNoExiste) {
			log.Warn().Err(err).Str("operador_id", operadorID).Msg("borradores: lectura fallida")
		}
		return nil
	}
	var lista []model.Borrador
	if err := json.Unmarshal([]byte(raw), &lista); err != nil {
		log.Warn().Err(err).Str("operador_id", operadorID).Msg("borradores: almacenamiento corrupto, se descarta")
		return nil
	}
	return lista
}
