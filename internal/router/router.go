package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/venezolean/POSPLIPSHOP/internal/borrador"
	"github.com/venezolean/POSPLIPSHOP/internal/config"
	"github.com/venezolean/POSPLIPSHOP/internal/gateway"
	"github.com/venezolean/POSPLIPSHOP/internal/handler"
	"github.com/venezolean/POSPLIPSHOP/internal/middleware"
	"github.com/venezolean/POSPLIPSHOP/internal/service"
	"github.com/venezolean/POSPLIPSHOP/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Gateway ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Gateways ─────────────────────────────────────────────────────────────
	operadorGW := gateway.NewOperadorGateway(db)
	productoGW := gateway.NewProductoGateway(db)
	ventaGW := gateway.NewVentaGateway(db)
	clienteGW := gateway.NewClienteGateway(db)
	inventarioGW := gateway.NewInventarioGateway(db)
	cajaGW := gateway.NewCajaGateway(db)
	sugerenciaGW := gateway.NewSugerenciaGateway(db)

	borradores := borrador.NewStore(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(operadorGW, cfg)
	cajaSvc := service.NewCajaService(cajaGW, cfg)
	productoSvc := service.NewProductoService(productoGW)
	inventarioSvc := service.NewInventarioService(inventarioGW)
	clienteSvc := service.NewClienteService(clienteGW)
	sugerenciaSvc := service.NewSugerenciaService(sugerenciaGW)
	sesionSvc := service.NewSesionService(productoGW, ventaGW, clienteGW, borradores, cajaSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	productosH := handler.NewProductosHandler(productoSvc, rdb)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	sugerenciasH := handler.NewSugerenciasHandler(sugerenciaSvc)
	sesionesH := handler.NewSesionesHandler(sesionSvc)
	comprobantesH := handler.NewComprobantesHandler(cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required, read-only
	r.GET("/v1/precio/:barcode", productosH.Precio)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	operar := middleware.RequireRole("cajero", "supervisor", "administrador")
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/productos", operar, productosH.Buscar)
		v1.POST("/productos", middleware.RequireRole("supervisor", "administrador"), productosH.Registrar)

		inv := v1.Group("/inventario", operar)
		{
			inv.GET("", inventarioH.Buscar)
			inv.GET("/filtros", inventarioH.OpcionesFiltros)
			inv.PATCH("/:id", middleware.RequireRole("supervisor", "administrador"), inventarioH.Actualizar)
		}

		v1.GET("/clientes/:documento", operar, clientesH.Buscar)
		v1.POST("/clientes", operar, clientesH.Registrar)

		caja := v1.Group("/caja", operar)
		{
			caja.GET("", cajaH.Estado)
			caja.POST("/abrir", cajaH.Abrir)
			caja.GET("/resumen", cajaH.ResumenCierre)
			caja.POST("/cerrar", cajaH.Cerrar)
		}

		ses := v1.Group("/sesiones", operar)
		{
			ses.POST("", sesionesH.Crear)
			ses.GET("/:id", sesionesH.Obtener)
			ses.PATCH("/:id", sesionesH.Actualizar)
			ses.POST("/:id/items", sesionesH.AgregarItem)
			ses.PATCH("/:id/items/:sku", sesionesH.ActualizarItem)
			ses.DELETE("/:id/items/:sku", sesionesH.QuitarItem)
			ses.PUT("/:id/cliente", sesionesH.AsignarCliente)
			ses.DELETE("/:id/cliente", sesionesH.QuitarCliente)
			ses.POST("/:id/pagos", sesionesH.AlternarPago)
			ses.PUT("/:id/pagos", sesionesH.FijarPago)
			ses.POST("/:id/mercado-libre", sesionesH.MercadoLibre)
			ses.POST("/:id/guardar", sesionesH.Guardar)
			ses.POST("/:id/reiniciar", sesionesH.Reiniciar)
			ses.POST("/:id/borrador", sesionesH.GuardarBorrador)
			ses.POST("/:id/borrador/:borrador_id", sesionesH.CargarBorrador)
			ses.POST("/:id/presupuesto", sesionesH.CargarPresupuesto)
		}

		v1.GET("/borradores", operar, sesionesH.ListarBorradores)
		v1.DELETE("/borradores/:id", operar, sesionesH.EliminarBorrador)

		v1.GET("/presupuestos", operar, sesionesH.BuscarPresupuestos)

		v1.POST("/sugerencias", operar, sugerenciasH.Registrar)

		v1.GET("/comprobantes/:venta_id/pdf", operar, comprobantesH.Descargar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
