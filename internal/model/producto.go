package model

import (
	"github.com/shopspring/decimal"
)

// Producto is the reference data returned by the backend's product search.
// It is immutable from the terminal's point of view: the cart copies what it
// needs and never writes back.
type Producto struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	CodigoBarras string          `json:"codigo_barras"`
	Nombre       string          `json:"nombre"`
	Precio       decimal.Decimal `json:"precio"`
	// Editable: the operator may override the unit price at sale time.
	Editable bool `json:"editable"`
}

// InventarioItem is one row of the advanced inventory search.
type InventarioItem struct {
	ID              int64           `json:"id"`
	ProductoID      int64           `json:"producto_id"`
	SKU             string          `json:"sku"`
	Nombre          string          `json:"nombre"`
	CodVarBar       string          `json:"cod_var_bar"`
	Caracteristicas Caracteristicas `json:"caracteristicas"`
	Stock           int             `json:"stock"`
	Precio          decimal.Decimal `json:"precio"`
	Editable        bool            `json:"editable"`
	Link            *string         `json:"link"`
	Rubro           string          `json:"rubro"`
	Categoria       string          `json:"categoria"`
	Subcategoria    string          `json:"subcategoria"`
	TemporadaVenta  string          `json:"temporada_venta"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// OpcionesFiltros holds the classification tiers available for inventory
// filtering (rubro > categoria > subcategoria, plus temporada).
type OpcionesFiltros struct {
	Rubros        []string `json:"rubros"`
	Categorias    []string `json:"categorias"`
	Subcategorias []string `json:"subcategorias"`
	Temporadas    []string `json:"temporadas"`
}

// ProductoRegistro is the full attribute set sent to registrar_producto.
type ProductoRegistro struct {
	NombrePrincipal    string          `json:"p_nombre_principal"`
	ProveedorID        *int64          `json:"p_proveedor_id"`
	Caracteristicas    Caracteristicas `json:"p_caracteristicas"`
	NombreProveedor    string          `json:"p_nombre_proveedor"`
	NombreML           string          `json:"p_nombre_ml"`
	NombreExportador   string          `json:"p_nombre_exportador"`
	Garantia           bool            `json:"p_garantia"`
	UnidadesPorPaquete int             `json:"p_unidades_por_paquete"`
	PaquetesPorCaja    int             `json:"p_paquetes_por_caja"`
	CajasPorPallet     int             `json:"p_cajas_por_pallet"`
	FotoURL            string          `json:"p_foto_url"`
	Rubro              string          `json:"p_rubro"`
	Categoria          string          `json:"p_categoria"`
	Subcategoria       string          `json:"p_subcategoria"`
	Perecedero         bool            `json:"p_perecedero"`
	TiempoVencimiento  int             `json:"p_tiempo_vencimiento"`
	TemporadaVenta     string          `json:"p_temporada_venta"`
	CodigoBarras       string          `json:"p_codigo_barras"`
}
