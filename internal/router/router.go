package router

import (
	"time"

	"parcelas/internal/config"
	"parcelas/internal/handler"
	"parcelas/internal/middleware"
	"parcelas/internal/repository"
	"parcelas/internal/service"
	"parcelas/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
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

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	emitenteRepo := repository.NewEmitenteRepository(db)
	parcelaRepo := repository.NewParcelaRepository(db)
	reciboRepo := repository.NewReciboRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(clienteRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	produtoSvc := service.NewProdutoService(produtoRepo)
	emitenteSvc := service.NewEmitenteService(emitenteRepo)
	parcelaSvc := service.NewParcelaService(parcelaRepo, clienteRepo, produtoRepo, emitenteRepo, reciboRepo, dispatcher)
	reciboSvc := service.NewReciboService(reciboRepo, parcelaRepo, dispatcher, cfg)
	relatorioSvc := service.NewRelatorioService(parcelaRepo, rdb, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	emitentesH := handler.NewEmitentesHandler(emitenteSvc)
	parcelasH := handler.NewParcelasHandler(parcelaSvc)
	recibosH := handler.NewRecibosHandler(reciboSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	api := r.Group("/api")

	// Public
	api.GET("/health", handler.Health)
	api.POST("/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected
	protected := api.Group("", middleware.JWTAuth(cfg.JWTSecret))
	{
		protected.PUT("/alterar-senha", authH.AlterarSenha)

		protected.GET("/clientes", clientesH.Listar)
		protected.GET("/clientes/por-nome", clientesH.BuscarPorNome)
		protected.GET("/clientes/:id", clientesH.Buscar)
		protected.POST("/clientes", clientesH.Criar)
		protected.PATCH("/clientes/:id", clientesH.Atualizar)
		protected.DELETE("/clientes/:id", clientesH.Excluir)

		protected.GET("/produtos", produtosH.Listar)
		protected.GET("/produtos/:id", produtosH.Buscar)
		protected.POST("/produtos", produtosH.Criar)
		protected.PATCH("/produtos/:id", produtosH.Atualizar)
		protected.DELETE("/produtos/:id", produtosH.Excluir)

		// Singular path kept for compatibility with the existing front-end
		protected.GET("/emitente", emitentesH.Listar)
		protected.GET("/emitente/:id", emitentesH.Buscar)
		protected.POST("/emitente", emitentesH.Criar)
		protected.PATCH("/emitente/:id", emitentesH.Atualizar)
		protected.DELETE("/emitente/:id", emitentesH.Excluir)

		protected.GET("/parcelas", parcelasH.Listar)
		protected.GET("/parcelas/:id", parcelasH.Buscar)
		protected.POST("/parcelas", parcelasH.Criar)
		protected.PATCH("/parcelas/:id", parcelasH.Atualizar)
		protected.PATCH("/parcelas/:id/pagar", parcelasH.Pagar)
		protected.PATCH("/parcelas/:id/escolha", parcelasH.Escolha)
		protected.PATCH("/parcelas/:id/desfazer", parcelasH.Desfazer)
		protected.PATCH("/parcelas/:id/renegociar", parcelasH.Renegociar)
		protected.DELETE("/parcelas/:id", parcelasH.Excluir)

		protected.GET("/recibos", recibosH.Listar)
		protected.POST("/recibos", recibosH.Criar)
		protected.DELETE("/recibos/:id", recibosH.Excluir)
		protected.GET("/recibos/:id/pdf", recibosH.BaixarPDF)
		protected.POST("/recibos/:id/enviar", recibosH.Enviar)

		protected.GET("/relatorios/lista", relatoriosH.ListarTipos)
		protected.POST("/relatorios/parcelas", relatoriosH.GerarParcelas)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
