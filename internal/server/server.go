package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/account"
	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	"github.com/pourhouse/pourhouse/internal/auth"
	authdomain "github.com/pourhouse/pourhouse/internal/auth/domain"
	"github.com/pourhouse/pourhouse/internal/auth/session"
	"github.com/pourhouse/pourhouse/internal/bottle"
	bottledomain "github.com/pourhouse/pourhouse/internal/bottle/domain"
	"github.com/pourhouse/pourhouse/internal/config"
	"github.com/pourhouse/pourhouse/internal/ingredient"
	ingredientdomain "github.com/pourhouse/pourhouse/internal/ingredient/domain"
	"github.com/pourhouse/pourhouse/internal/machine"
	machinedomain "github.com/pourhouse/pourhouse/internal/machine/domain"
	"github.com/pourhouse/pourhouse/internal/observability"
	obsmiddleware "github.com/pourhouse/pourhouse/internal/observability/logger"
	obsmetrics "github.com/pourhouse/pourhouse/internal/observability/metrics"
	obstracing "github.com/pourhouse/pourhouse/internal/observability/tracing"
	"github.com/pourhouse/pourhouse/internal/owner"
	ownerdomain "github.com/pourhouse/pourhouse/internal/owner/domain"
	"github.com/pourhouse/pourhouse/internal/purchase"
	purchasedomain "github.com/pourhouse/pourhouse/internal/purchase/domain"
	"github.com/pourhouse/pourhouse/internal/ratelimit"
	"github.com/pourhouse/pourhouse/internal/recipe"
	recipedomain "github.com/pourhouse/pourhouse/internal/recipe/domain"
	"github.com/pourhouse/pourhouse/internal/sale"
	saledomain "github.com/pourhouse/pourhouse/internal/sale/domain"
	"github.com/pourhouse/pourhouse/internal/slot"
	slotdomain "github.com/pourhouse/pourhouse/internal/slot/domain"
	"github.com/pourhouse/pourhouse/internal/telemetry"
	telemetrydomain "github.com/pourhouse/pourhouse/internal/telemetry/domain"
	"github.com/pourhouse/pourhouse/internal/wallet"
	walletdomain "github.com/pourhouse/pourhouse/internal/wallet/domain"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	auth.Module,
	account.Module,
	owner.Module,
	machine.Module,
	slot.Module,
	ingredient.Module,
	recipe.Module,
	bottle.Module,
	sale.Module,
	purchase.Module,
	wallet.Module,
	telemetry.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine           *gin.Engine
	cfg              config.Config
	db               *gorm.DB
	genID            *snowflake.Node
	authsvc          authdomain.Service
	sessions         *session.Manager
	accountSvc       accountdomain.Service
	ownerSvc         ownerdomain.Service
	machineSvc       machinedomain.Service
	slotSvc          slotdomain.Service
	ingredientSvc    ingredientdomain.Service
	recipeSvc        recipedomain.Service
	bottleSvc        bottledomain.Service
	saleSvc          saledomain.Service
	purchaseSvc      purchasedomain.Service
	walletSvc        walletdomain.Service
	telemetrySvc     telemetrydomain.Service
	dispenserLimiter *ratelimit.DispenserLimiter
	obsMetrics       *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin              *gin.Engine
	Cfg              config.Config
	DB               *gorm.DB
	GenID            *snowflake.Node
	Authsvc          authdomain.Service
	Sessions         *session.Manager
	AccountSvc       accountdomain.Service
	OwnerSvc         ownerdomain.Service
	MachineSvc       machinedomain.Service
	SlotSvc          slotdomain.Service
	IngredientSvc    ingredientdomain.Service
	RecipeSvc        recipedomain.Service
	BottleSvc        bottledomain.Service
	SaleSvc          saledomain.Service
	PurchaseSvc      purchasedomain.Service
	WalletSvc        walletdomain.Service
	TelemetrySvc     telemetrydomain.Service
	DispenserLimiter *ratelimit.DispenserLimiter `optional:"true"`
	ObsMetrics       *obsmetrics.Metrics         `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:           p.Gin,
		cfg:              p.Cfg,
		db:               p.DB,
		genID:            p.GenID,
		authsvc:          p.Authsvc,
		sessions:         p.Sessions,
		accountSvc:       p.AccountSvc,
		ownerSvc:         p.OwnerSvc,
		machineSvc:       p.MachineSvc,
		slotSvc:          p.SlotSvc,
		ingredientSvc:    p.IngredientSvc,
		recipeSvc:        p.RecipeSvc,
		bottleSvc:        p.BottleSvc,
		saleSvc:          p.SaleSvc,
		purchaseSvc:      p.PurchaseSvc,
		walletSvc:        p.WalletSvc,
		telemetrySvc:     p.TelemetrySvc,
		dispenserLimiter: p.DispenserLimiter,
		obsMetrics:       p.ObsMetrics,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Owners --------
	api.GET("/owners", s.ListOwners)
	api.POST("/owners", s.CreateOwner)
	api.GET("/owners/:id", s.GetOwnerByID)
	api.PATCH("/owners/:id", s.UpdateOwner)
	api.DELETE("/owners/:id", s.DeleteOwner)

	// -------- Machines --------
	api.GET("/machines", s.ListMachines)
	api.POST("/machines", s.CreateMachine)
	api.GET("/machines/:id", s.GetMachineByID)
	api.PATCH("/machines/:id", s.UpdateMachine)
	api.DELETE("/machines/:id", s.DeleteMachine)

	// -------- Bottle slots --------
	api.GET("/slots", s.ListSlots)
	api.POST("/slots", s.CreateSlot)
	api.GET("/slots/:id", s.GetSlotByID)
	api.PATCH("/slots/:id", s.UpdateSlot)
	api.DELETE("/slots/:id", s.DeleteSlot)
	api.POST("/slots/:id/refill", s.RefillSlot)

	// -------- Ingredients --------
	api.GET("/ingredients", s.ListIngredients)
	api.POST("/ingredients", s.CreateIngredient)
	api.GET("/ingredients/:id", s.GetIngredientByID)
	api.PATCH("/ingredients/:id", s.UpdateIngredient)
	api.DELETE("/ingredients/:id", s.DeleteIngredient)

	// -------- Recipes --------
	api.GET("/recipes", s.ListRecipes)
	api.GET("/recipes/:name", s.GetRecipeByName)
	api.PATCH("/recipes/:name", s.UpdateRecipe)
	api.DELETE("/recipes/:name", s.DeleteRecipe)
	api.POST("/recipes/sync", s.SyncRecipe)
	api.GET("/recipe-ingredients", s.ListRecipeIngredients)

	// -------- Legacy bottles --------
	api.GET("/bottles", s.ListBottles)
	api.POST("/bottles", s.CreateBottle)
	api.GET("/bottles/:id", s.GetBottleByID)
	api.PATCH("/bottles/:id", s.UpdateBottle)
	api.DELETE("/bottles/:id", s.DeleteBottle)

	// -------- Sales --------
	api.POST("/sales/record", s.DispenserRateLimit(), s.RecordSale)
	api.GET("/sales", s.ListSales)
	api.GET("/sales/daily", s.GetDailySales)

	// -------- Purchases --------
	api.GET("/purchases", s.AuthRequired(), s.ListPurchases)
	api.POST("/purchases", s.AuthOptional(), s.CreatePurchase)
	api.GET("/purchases/:id", s.AuthRequired(), s.GetPurchaseByID)

	// -------- Wallet --------
	api.GET("/wallet", s.AuthRequired(), s.GetWallet)
	api.POST("/wallet/topup", s.AuthRequired(), s.TopupWallet)

	// -------- Users --------
	api.GET("/users", s.ListUsers)
	api.POST("/users", s.CreateUser)
	api.GET("/users/:id", s.GetUserByID)
	api.PATCH("/users/:id", s.UpdateUser)
	api.DELETE("/users/:id", s.DeleteUser)

	// -------- Telemetry --------
	api.POST("/telemetry", s.DispenserRateLimit(), s.IngestTelemetry)
	api.GET("/telemetry", s.ListTelemetry)

	// -------- Dispense --------
	api.POST("/mix", s.DispenserRateLimit(), s.Mix)
}
