//go:build integration

package e2e

// e2e_test.go
// End-to-end tests for the Plipshop terminal using real Postgres + Redis via
// testcontainers. The Postgres container plays the role of the remote
// backend: the bootstrap script below installs minimal versions of the
// stored procedures the gateways call.
//
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"

	"github.com/venezolean/POSPLIPSHOP/internal/config"
	"github.com/venezolean/POSPLIPSHOP/internal/infra"
	"github.com/venezolean/POSPLIPSHOP/internal/router"
	"github.com/venezolean/POSPLIPSHOP/internal/worker"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Backend bootstrap ────────────────────────────────────────────────────────

// bootstrapSQL installs the stand-in backend: the tables and stored
// procedures the gateways expect, reduced to what the flows under test need.
const bootstrapSQL = `
CREATE TABLE operadores (
    id            text PRIMARY KEY,
    username      text UNIQUE NOT NULL,
    nombre        text NOT NULL,
    rol           text NOT NULL,
    password_hash text NOT NULL,
    activo        boolean NOT NULL DEFAULT true
);

CREATE TABLE productos (
    id            bigserial PRIMARY KEY,
    sku           text UNIQUE NOT NULL,
    codigo_barras text NOT NULL,
    nombre        text NOT NULL,
    precio        numeric NOT NULL,
    editable      boolean NOT NULL DEFAULT false
);

CREATE TABLE clientes (
    id           bigserial PRIMARY KEY,
    tipo         text NOT NULL DEFAULT 'natural',
    nombre       text NOT NULL DEFAULT '',
    apellido     text NOT NULL DEFAULT '',
    razon_social text NOT NULL DEFAULT '',
    documento    text UNIQUE NOT NULL,
    telefono     text NOT NULL DEFAULT '',
    email        text NOT NULL DEFAULT '',
    direccion    text NOT NULL DEFAULT ''
);

CREATE TABLE cajas (
    id             bigserial PRIMARY KEY,
    operador_id    text NOT NULL,
    monto_apertura numeric NOT NULL,
    monto_cierre   numeric,
    abierta_en     timestamptz NOT NULL DEFAULT now(),
    cerrada_en     timestamptz
);

CREATE TABLE ventas (
    id              bigserial PRIMARY KEY,
    cliente_id      bigint NOT NULL,
    origen          text NOT NULL,
    tipo_consumidor text NOT NULL,
    tipo_iva        text NOT NULL,
    estado          text NOT NULL,
    observaciones   text NOT NULL DEFAULT '',
    detalles        jsonb NOT NULL,
    pagos           jsonb NOT NULL DEFAULT '[]'::jsonb,
    operador_id     text NOT NULL,
    created_at      timestamptz NOT NULL DEFAULT now()
);

CREATE FUNCTION buscar_operador(p_username text) RETURNS jsonb AS $$
    SELECT to_jsonb(o) FROM operadores o WHERE o.username = p_username;
$$ LANGUAGE sql;

CREATE FUNCTION buscar_productos(p_term text) RETURNS SETOF productos AS $$
    SELECT * FROM productos
    WHERE codigo_barras = p_term
       OR sku ILIKE '%' || p_term || '%'
       OR nombre ILIKE '%' || p_term || '%';
$$ LANGUAGE sql;

CREATE FUNCTION buscar_cliente_documento(p_documento text) RETURNS jsonb AS $$
    SELECT to_jsonb(c) FROM clientes c WHERE c.documento = p_documento;
$$ LANGUAGE sql;

CREATE FUNCTION obtener_caja_abierta(p_operador_id text) RETURNS jsonb AS $$
    SELECT to_jsonb(c) - 'monto_cierre' - 'cerrada_en'
    FROM cajas c
    WHERE c.operador_id = p_operador_id AND c.cerrada_en IS NULL
    ORDER BY c.id DESC LIMIT 1;
$$ LANGUAGE sql;

CREATE FUNCTION registrar_apertura_caja(p_operador_id text, p_monto numeric) RETURNS jsonb AS $$
    INSERT INTO cajas (operador_id, monto_apertura)
    VALUES (p_operador_id, p_monto)
    RETURNING to_jsonb(cajas) - 'monto_cierre' - 'cerrada_en';
$$ LANGUAGE sql;

CREATE FUNCTION resumen_cierre_caja(p_caja_id bigint) RETURNS jsonb AS $$
    SELECT jsonb_build_object(
        'inicio', c.abierta_en,
        'fin', now(),
        'monto_apertura', c.monto_apertura,
        'ventas_origen', '{}'::jsonb,
        'ventas_consumidor', '{}'::jsonb,
        'ventas_estado', '{}'::jsonb,
        'pagos_metodo', COALESCE((
            SELECT jsonb_object_agg(s.metodo, jsonb_build_object('cantidad', s.cnt, 'monto', s.monto))
            FROM (
                SELECT p->>'metodo' AS metodo, count(*) AS cnt, sum((p->>'monto')::numeric) AS monto
                FROM ventas v, jsonb_array_elements(v.pagos) p
                WHERE v.operador_id = c.operador_id AND v.created_at >= c.abierta_en
                GROUP BY 1
            ) s
        ), '{}'::jsonb)
    )
    FROM cajas c WHERE c.id = p_caja_id;
$$ LANGUAGE sql;

CREATE FUNCTION registrar_cierre_caja(p_caja_id bigint, p_monto numeric, p_operador_id text) RETURNS boolean AS $$
    WITH upd AS (
        UPDATE cajas SET cerrada_en = now(), monto_cierre = p_monto
        WHERE id = p_caja_id AND cerrada_en IS NULL
        RETURNING 1
    )
    SELECT EXISTS (SELECT 1 FROM upd);
$$ LANGUAGE sql;

CREATE FUNCTION registrar_venta(
    p_cliente_id bigint, p_origen text, p_tipo_consumidor text, p_tipo_iva text,
    p_observaciones text, p_detalles jsonb, p_pagos jsonb, p_operador_id text
) RETURNS bigint AS $$
    INSERT INTO ventas (cliente_id, origen, tipo_consumidor, tipo_iva, estado, observaciones, detalles, pagos, operador_id)
    VALUES (
        p_cliente_id, p_origen, p_tipo_consumidor, p_tipo_iva,
        CASE WHEN p_observaciones IN ('presupuesto', 'consigna') THEN p_observaciones ELSE 'entregado' END,
        p_observaciones, p_detalles, p_pagos, p_operador_id
    )
    RETURNING id;
$$ LANGUAGE sql;

CREATE FUNCTION buscar_presupuestos(p_term text) RETURNS TABLE(
    id bigint, cliente_id bigint, cliente_nombre text, cliente_apellido text,
    origen text, tipo_consumidor text, estado text, total numeric,
    observaciones text, tipo_iva text, created_at timestamptz,
    detalles jsonb, pagos jsonb
) AS $$
    SELECT v.id, v.cliente_id,
           COALESCE(c.nombre, 'Consumidor'), COALESCE(c.apellido, 'Final'),
           v.origen, v.tipo_consumidor, v.estado,
           COALESCE((SELECT sum((d->>'cantidad')::numeric * (d->>'precio_unitario')::numeric)
                     FROM jsonb_array_elements(v.detalles) d), 0),
           v.observaciones, v.tipo_iva, v.created_at,
           COALESCE((SELECT jsonb_agg(jsonb_build_object(
                         'sku', d->>'sku',
                         'nombre', COALESCE(pr.nombre, d->>'sku'),
                         'codigo_barras', COALESCE(pr.codigo_barras, ''),
                         'cantidad', (d->>'cantidad')::int,
                         'precio_unitario', (d->>'precio_unitario')::numeric))
                     FROM jsonb_array_elements(v.detalles) d
                     LEFT JOIN productos pr ON pr.sku = d->>'sku'), '[]'::jsonb),
           COALESCE(v.pagos, '[]'::jsonb)
    FROM ventas v
    LEFT JOIN clientes c ON c.id = v.cliente_id
    WHERE v.estado = 'presupuesto' AND (p_term = '' OR v.id::text = p_term);
$$ LANGUAGE sql;

CREATE FUNCTION convertir_presupuesto(p_id bigint, p_pagos jsonb) RETURNS boolean AS $$
    WITH upd AS (
        UPDATE ventas SET estado = 'entregado', pagos = p_pagos, observaciones = ''
        WHERE id = p_id AND estado = 'presupuesto'
        RETURNING 1
    )
    SELECT EXISTS (SELECT 1 FROM upd);
$$ LANGUAGE sql;
`

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // cajero JWT
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("plipshop_test"),
		tcPostgres.WithUsername("plipshop"),
		tcPostgres.WithPassword("plipshop"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		CajaCodigoCierre:   "4321",
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	require.NoError(t, db.Exec(bootstrapSQL).Error)

	// Seed the cajero and the catalog the flows use
	hash, err := bcrypt.GenerateFromPassword([]byte("plipshop2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(
		`INSERT INTO operadores (id, username, nombre, rol, password_hash, activo)
		 VALUES ('op-e2e', 'carla', 'Carla E2E', 'cajero', ?, true)`, string(hash)).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO productos (sku, codigo_barras, nombre, precio, editable) VALUES
		 ('TAZ-01', '7791234567890', 'Taza ceramica', 100, false),
		 ('VEL-02', '7790987654321', 'Velador', 500, true)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO clientes (id, tipo, nombre, apellido, documento)
		 VALUES (1, 'natural', 'Consumidor', 'Final', '00000000'),
		        (42, 'natural', 'Marta', 'Gomez', '30111222')`).Error)

	dispatcher := worker.NewDispatcher(rdb)
	r := router.New(cfg, db, rdb, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "carla", "password": "plipshop2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken, engine: r}
}

func abrirCaja(t *testing.T, env *testEnv, monto float64) {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/caja/abrir",
		jsonBody(t, map[string]any{"monto_apertura": monto}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func crearSesion(t *testing.T, env *testEnv) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/sesiones", jsonBody(t, map[string]any{}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sesion struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &sesion)
	require.NotEmpty(t, sesion.ID)
	return sesion.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full sale cycle: login → abrir caja → sesión → items → pago → entregado → cierre.
func TestE2E_CicloDeVentaCompleto(t *testing.T) {
	env := setupTestEnv(t)

	// sin caja abierta la sesión se rechaza
	resp := do(t, env.server, "POST", "/v1/sesiones", jsonBody(t, map[string]any{}), env.token)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	abrirCaja(t, env, 1000)
	sesionID := crearSesion(t, env)

	// 2 tazas de $100
	resp = do(t, env.server, "POST", "/v1/sesiones/"+sesionID+"/items",
		jsonBody(t, map[string]any{"codigo_barras": "7791234567890", "cantidad": 2}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var estado struct {
		Fase    string `json:"fase"`
		Totales struct {
			Total json.Number `json:"total"`
		} `json:"totales"`
	}
	decodeJSON(t, resp, &estado)
	assert.Equal(t, "armando", estado.Fase)
	assert.Equal(t, "200", estado.Totales.Total.String())

	// alternar efectivo toma el total
	resp = do(t, env.server, "POST", "/v1/sesiones/"+sesionID+"/pagos",
		jsonBody(t, map[string]any{"metodo": "efectivo"}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/sesiones/"+sesionID+"/guardar",
		jsonBody(t, map[string]any{"estado": "entregado"}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var guardado struct {
		VentaID    int64  `json:"venta_id"`
		Convertida bool   `json:"convertida"`
		Estado     string `json:"estado"`
	}
	decodeJSON(t, resp, &guardado)
	assert.False(t, guardado.Convertida)
	assert.Equal(t, "entregado", guardado.Estado)
	assert.Greater(t, guardado.VentaID, int64(0))

	// la sesión quedó lista para la próxima venta
	resp = do(t, env.server, "GET", "/v1/sesiones/"+sesionID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &estado)
	assert.Equal(t, "vacia", estado.Fase)

	// resumen de cierre: apertura 1000 + efectivo 200
	resp = do(t, env.server, "GET", "/v1/caja/resumen", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var resumen struct {
		CajaFinal json.Number `json:"caja_final"`
	}
	decodeJSON(t, resp, &resumen)
	assert.Equal(t, "1200", resumen.CajaFinal.String())

	// código incorrecto rechaza el cierre
	resp = do(t, env.server, "POST", "/v1/caja/cerrar",
		jsonBody(t, map[string]any{"codigo": "0000"}), env.token)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/caja/cerrar",
		jsonBody(t, map[string]any{"codigo": "4321"}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// la caja quedó cerrada
	resp = do(t, env.server, "GET", "/v1/caja", nil, env.token)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// Presupuesto: registro sin pagos y conversión posterior con pago.
func TestE2E_PresupuestoYConversion(t *testing.T) {
	env := setupTestEnv(t)
	abrirCaja(t, env, 500)
	sesionID := crearSesion(t, env)

	resp := do(t, env.server, "POST", "/v1/sesiones/"+sesionID+"/items",
		jsonBody(t, map[string]any{"codigo_barras": "7790987654321"}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/sesiones/"+sesionID+"/guardar",
		jsonBody(t, map[string]any{"estado": "presupuesto"}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var guardado struct {
		VentaID int64  `json:"venta_id"`
		Estado  string `json:"estado"`
	}
	decodeJSON(t, resp, &guardado)
	require.Equal(t, "presupuesto", guardado.Estado)

	// aparece en la búsqueda de presupuestos
	resp = do(t, env.server, "GET", fmt.Sprintf("/v1/presupuestos?term=%d", guardado.VentaID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var presupuestos []struct {
		ID     int64  `json:"id"`
		Estado string `json:"estado"`
	}
	decodeJSON(t, resp, &presupuestos)
	require.Len(t, presupuestos, 1)
	assert.Equal(t, guardado.VentaID, presupuestos[0].ID)

	// cargarlo a la sesión habilita la conversión
	resp = do(t, env.server, "POST", "/v1/sesiones/"+sesionID+"/presupuesto",
		jsonBody(t, map[string]any{"presupuesto_id": guardado.VentaID}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cargada struct {
		PresupuestoID *int64 `json:"presupuesto_id"`
		Totales       struct {
			Total json.Number `json:"total"`
		} `json:"totales"`
	}
	decodeJSON(t, resp, &cargada)
	require.NotNil(t, cargada.PresupuestoID)
	assert.Equal(t, "500", cargada.Totales.Total.String())

	// sin pago positivo la conversión se rechaza
	resp = do(t, env.server, "POST", "/v1/sesiones/"+sesionID+"/guardar",
		jsonBody(t, map[string]any{"estado": "entregado"}), env.token)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/sesiones/"+sesionID+"/pagos",
		jsonBody(t, map[string]any{"metodo": "efectivo"}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/sesiones/"+sesionID+"/guardar",
		jsonBody(t, map[string]any{"estado": "entregado"}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var conversion struct {
		VentaID    int64 `json:"venta_id"`
		Convertida bool  `json:"convertida"`
	}
	decodeJSON(t, resp, &conversion)
	assert.True(t, conversion.Convertida)
	assert.Equal(t, guardado.VentaID, conversion.VentaID)

	// el presupuesto convertido ya no aparece
	resp = do(t, env.server, "GET", fmt.Sprintf("/v1/presupuestos?term=%d", guardado.VentaID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	presupuestos = nil
	decodeJSON(t, resp, &presupuestos)
	assert.Empty(t, presupuestos)
}

// Cliente por documento y asignación a la sesión.
func TestE2E_ClienteAsignado(t *testing.T) {
	env := setupTestEnv(t)
	abrirCaja(t, env, 500)
	sesionID := crearSesion(t, env)

	// documento desconocido: 404, el operador pasa a registrar
	resp := do(t, env.server, "GET", "/v1/clientes/99999999", nil, env.token)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "PUT", "/v1/sesiones/"+sesionID+"/cliente",
		jsonBody(t, map[string]any{"documento": "30111222"}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var estado struct {
		Cliente *struct {
			ID     int64  `json:"id"`
			Nombre string `json:"nombre"`
		} `json:"cliente"`
	}
	decodeJSON(t, resp, &estado)
	require.NotNil(t, estado.Cliente)
	assert.Equal(t, int64(42), estado.Cliente.ID)
}

// Consulta pública de precio, sin token.
func TestE2E_PrecioPublico(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/precio/7791234567890", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var precio struct {
		Nombre string      `json:"nombre"`
		Precio json.Number `json:"precio"`
	}
	decodeJSON(t, resp, &precio)
	assert.Equal(t, "100", precio.Precio.String())

	resp = do(t, env.server, "GET", "/v1/precio/0000000000000", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// Endpoints protegidos sin token.
func TestE2E_SinToken(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/caja", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/sesiones", jsonBody(t, map[string]any{}), "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
