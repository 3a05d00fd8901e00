package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Cartera-api/internal/application/auth"
	"github.com/jhoicas/Cartera-api/internal/application/collections"
	"github.com/jhoicas/Cartera-api/internal/application/usecase"
	domaincoll "github.com/jhoicas/Cartera-api/internal/domain/collections"
	"github.com/jhoicas/Cartera-api/internal/infrastructure/csvstore"
	"github.com/jhoicas/Cartera-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Cartera-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cartera-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Cartera-api/internal/interfaces/http"
	"github.com/jhoicas/Cartera-api/internal/observer"
	"github.com/jhoicas/Cartera-api/pkg/config"
	"github.com/jhoicas/Cartera-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_dir", cfg.Data.Dir).
		Msg("iniciando aplicación")

	observer.SetEnabled(cfg.Metrics.Enabled)

	// Clientes y facturas son dependencia dura: sin ellos no se sirve tráfico.
	store := csvstore.New(cfg.Data.Dir, log.Named("csvstore"))
	if err := store.Load(); err != nil {
		log.Fatal().Err(err).Msg("carga inicial de datos de cartera")
	}

	window, err := domaincoll.NewCallWindow(cfg.Collections.CallWindowStart, cfg.Collections.CallWindowEnd, cfg.Collections.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("ventana de llamadas")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Named("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración de esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clock := collections.SystemClock
	gateway := notify.New(cfg.Mail, log.Named("notify"))
	interactions := collections.NewInteractionLogger(store, clock, log.Named("interactions"))
	dashboardUC := collections.NewDashboardUseCase(store, collections.FixedDSO(cfg.Collections.PlaceholderDSO), clock)
	activityUC := collections.NewActivityUseCase(interactions, window, clock, log.Named("activity"))

	reminderCfg := collections.DefaultReminderConfig()
	reminderCfg.LagDays = cfg.Collections.ReminderLagDays
	reminderCfg.CooldownDays = cfg.Collections.CooldownDays
	reminderCfg.Currency = cfg.Collections.ReminderCurrency
	remindersUC := collections.NewReminderUseCase(store, gateway, interactions, clock, reminderCfg, log.Named("reminders"))

	settingsUC := usecase.NewSettingsUseCase(settingsRepo, auditRepo, txRunner, log, cfg.App.Name, cfg.Collections.ReminderCurrency)
	reportPDFUC := collections.NewReportPDFUseCase(dashboardUC, settingsUC, infrapdf.NewMarotoPDFGenerator(), clock)
	datasetUC := usecase.NewDatasetUseCase(store)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Data.Watch {
		watcher := csvstore.NewWatcher(cfg.Data.Dir, func() error {
			err := store.Load()
			observer.IncStoreReload(err)
			return err
		}, log.Named("watcher"), csvstore.DefaultDebounce)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Error().Err(err).Msg("watcher de datos finalizado")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    "Cartera API",
			}))
		} else {
			log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger no encontrado, /docs deshabilitado")
		}
	}

	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		customers, invoices, interactionCount, loaded := store.Counts()
		return c.JSON(fiber.Map{
			"status":       "ok",
			"service":      cfg.App.Name,
			"data_loaded":  loaded,
			"customers":    customers,
			"invoices":     invoices,
			"interactions": interactionCount,
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		DashboardUC:  dashboardUC,
		ActivityUC:   activityUC,
		Interactions: interactions,
		RemindersUC:  remindersUC,
		ReportPDFUC:  reportPDFUC,
		SettingsUC:   settingsUC,
		DatasetUC:    datasetUC,
		Store:        store,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
