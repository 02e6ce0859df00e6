package router

import (
	"time"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/config"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/handler"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/infra"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/middleware"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/repository"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	fotoStorage := infra.NewFotoStorage(cfg.FotoStoragePath, cfg.Domain)

	// ── Repositories ─────────────────────────────────────────────────────────
	cierreRepo := repository.NewCierreRepository(db)
	cdeRepo := repository.NewCdeRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	ingresoRepo := repository.NewIngresoRepository(db)
	maestrosRepo := repository.NewMaestrosRepository(db)
	// Payment rules change rarely: cached with a short TTL. Sums never are.
	reglaRepo := repository.NewReglaPagoCache(repository.NewReglaPagoRepository(db), rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	cierreSvc := service.NewCierreService(cierreRepo, pagoRepo, reglaRepo, gastoRepo, ingresoRepo, fotoStorage)
	cdeSvc := service.NewCdeService(cdeRepo, pagoRepo, reglaRepo)
	gastoSvc := service.NewGastoService(gastoRepo, cierreRepo, maestrosRepo)
	ingresoSvc := service.NewIngresoService(ingresoRepo, cierreRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cierresH := handler.NewCierresHandler(cierreSvc, cfg.PDFStoragePath)
	cdeH := handler.NewCdeHandler(cdeSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	ingresosH := handler.NewIngresosHandler(ingresoSvc)
	catalogosH := handler.NewCatalogosHandler(maestrosRepo, reglaRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, fotoStorage.BasePath()))
	r.Static("/fotos", fotoStorage.BasePath())

	todos := middleware.RequireRole(service.RolCajero, service.RolSupervisor, service.RolAdministrador)
	supervisores := middleware.RequireRole(service.RolSupervisor, service.RolAdministrador)
	admin := middleware.RequireRole(service.RolAdministrador)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		cierres := v1.Group("/cierres")
		{
			cierres.POST("", todos, cierresH.Abrir)
			cierres.GET("/activo", todos, cierresH.Activo)
			cierres.GET("/historial", supervisores, cierresH.Historial)
			cierres.GET("/:id", todos, cierresH.Obtener)
			cierres.PUT("/:id/conteo-final", todos, cierresH.GuardarConteoFinal)
			cierres.POST("/:id/verificacion", todos, cierresH.Verificar)
			cierres.POST("/:id/fotos/:metodo", todos, cierresH.AdjuntarFoto)
			cierres.POST("/:id/cerrar", todos, cierresH.Cerrar)
			cierres.POST("/:id/reabrir", admin, cierresH.Reabrir)
			cierres.GET("/:id/comprobante", supervisores, cierresH.Comprobante)
			cierres.GET("/:id/gastos", todos, gastosH.ListarPorCierre)
			cierres.PUT("/:id/ingresos", todos, ingresosH.Guardar)
			cierres.GET("/:id/ingresos", todos, ingresosH.ListarPorCierre)
		}

		v1.POST("/gastos", todos, gastosH.Registrar)
		v1.DELETE("/gastos/:id", admin, gastosH.Eliminar)

		cde := v1.Group("/cde")
		{
			cde.POST("", supervisores, cdeH.Abrir)
			cde.GET("/activo", todos, cdeH.Activo)
			cde.POST("/:id/verificacion", supervisores, cdeH.Verificar)
			cde.POST("/:id/cerrar", supervisores, cdeH.Cerrar)
			cde.POST("/:id/reabrir", admin, cdeH.Reabrir)
		}

		catalogos := v1.Group("/catalogos", todos)
		{
			catalogos.GET("/denominaciones", catalogosH.Denominaciones)
			catalogos.GET("/socios", catalogosH.Socios)
			catalogos.GET("/categorias-gasto", catalogosH.Categorias)
			catalogos.GET("/reglas-pago", catalogosH.ReglasPago)
		}
	}

	return r
}
