package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventorypro-api/internal/application/alerts"
	"github.com/jhoicas/inventorypro-api/internal/application/auth"
	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
	"github.com/jhoicas/inventorypro-api/internal/application/notification"
	"github.com/jhoicas/inventorypro-api/internal/application/report"
	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/kafka"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/memory"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/metrics"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/inventorypro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/inventorypro-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/inventorypro-api/internal/interfaces/http"
	"github.com/jhoicas/inventorypro-api/pkg/config"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// eventPublisher lo cumplen kafka.Publisher y kafka.LogPublisher.
type eventPublisher interface {
	ledger.EventPublisher
	Close() error
}

// storage repos del ledger y de alertas según STORAGE_DRIVER.
type storage struct {
	tx     ledger.TxRunner
	repos  ledger.Repos
	alerts repository.AlertRepository
	close  func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("prefs", cfg.Storage.PrefsDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento del ledger")
	}
	defer store.close()

	prefs, closePrefs, err := openPreferences(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("preference store")
	}
	defer closePrefs()

	publisher, err := openPublisher(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("publicador de eventos")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar publicador de eventos")
		}
	}()

	m := metrics.New(cfg.Metrics.Prefix)

	// Canales de notificación
	browser := notify.NewBrowserChannel(cfg.Notify.PermissionTimeout, notify.DefaultFeedSize, log)
	defer browser.Close()
	var mailSender notify.MailSender
	if cfg.SMTP.Enabled() {
		mailSender = notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)
	}
	channels := []notification.Channel{
		browser,
		notify.NewEmailChannel(cfg.Notify.EmailFrom, mailSender, log),
		notify.NewSlackChannel(cfg.Notify.SlackChannel, log),
	}

	settingsUC := notification.NewSettingsUseCase(prefs, browser, log)
	dispatcher := notification.NewDispatcher(settingsUC, channels, browser, m, log)
	alertSvc := alerts.NewService(store.alerts, dispatcher, publisher, m, log)
	ledgerUC := ledger.NewLedgerUseCase(store.tx, store.repos, alertSvc, publisher, m, log)
	reportUC := report.NewUseCase(ledgerUC, infrapdf.NewMarotoPDFGenerator(), m, log)

	authUC, err := auth.NewAuthUseCase(prefs, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.DemoCredentials, log)
	if err != nil {
		log.Fatal().Err(err).Msg("auth")
	}

	// El seed corre el deriver una vez: las alertas iniciales salen de ahí.
	if cfg.App.SeedDemo {
		if err := ledgerUC.Seed(ctx, ledger.DemoData(time.Now())); err != nil {
			log.Fatal().Err(err).Msg("cargar datos de demo")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestMetrics(m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "InventoryPro API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:       ledgerUC,
		AlertSvc:       alertSvc,
		AuthUC:         authUC,
		SettingsUC:     settingsUC,
		Dispatcher:     dispatcher,
		Browser:        browser,
		ReportUC:       reportUC,
		MetricsHandler: m.Handler(),
		JWTSecret:      cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver != config.DriverPostgres {
		s := memory.NewStore()
		return &storage{
			tx:     memory.NewTxRunner(s),
			repos:  s.Repos(),
			alerts: memory.NewAlertRepository(),
			close:  func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.Storage.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		tx:     postgres.NewTxRunner(pool),
		repos:  postgres.NewRepos(pool),
		alerts: postgres.NewAlertRepository(pool),
		close:  pool.Close,
	}, nil
}

func openPreferences(ctx context.Context, cfg *config.Config) (repository.PreferenceStore, func(), error) {
	if cfg.Storage.PrefsDriver != config.DriverRedis {
		return memory.NewPreferenceStore(), func() {}, nil
	}
	client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	return infraredis.NewPreferenceStore(client, cfg.App.Name+":"), func() { _ = client.Close() }, nil
}

func openPublisher(cfg *config.Config, log *logger.Logger) (eventPublisher, error) {
	if !cfg.Kafka.Enabled() {
		return kafka.NewLogPublisher(log), nil
	}
	return kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
}
