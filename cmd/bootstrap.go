package cmd

import (
	"fmt"
	"time"

	"lunar-assistant/core/config"
	"lunar-assistant/core/database"
	"lunar-assistant/core/guildconfig"
	"lunar-assistant/core/holdings"
	"lunar-assistant/core/holdings/sources"
	"lunar-assistant/core/logger"
	"lunar-assistant/core/platform/discord"
	"lunar-assistant/core/reconcile"
	"lunar-assistant/core/storage"
	"lunar-assistant/feature/wallet"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps holds everything the commands are built from.
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	storage  storage.Client
	configs  guildconfig.Store
	platform *discord.Client
	sources  []holdings.Source
	wallets  *wallet.Repository
	// engine is nil without a database, since wallet links live there.
	engine *reconcile.Engine
}

func (d *deps) sourceTimeout() time.Duration {
	return time.Duration(d.cfg.Sources.TimeoutSeconds) * time.Second
}

// bootstrap loads configuration and wires the application. The database is
// optional unless the rules backend needs it.
func bootstrap() (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	d := &deps{cfg: cfg, logger: logg}

	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		d.db = conn
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(conn, &wallet.Link{}, &guildconfig.Record{}); err != nil {
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		d.wallets = wallet.NewRepository(conn)
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	d.storage = client

	d.configs, err = guildconfig.New(cfg.Rules, client, cfg.Storage.Bucket, d.db)
	if err != nil {
		return nil, err
	}

	if cfg.Platform.BotToken == "" {
		logg.Warn("Platform bot token is empty; role reads and mutations will be rejected")
	}
	d.platform = discord.New(cfg.Platform, logg.Named("discord"))

	d.sources = sources.Build(cfg.Sources, logg)

	if d.wallets != nil {
		agg := holdings.NewAggregator(logg.Named("holdings"), d.sourceTimeout(), d.sources...)
		d.engine = reconcile.NewEngine(cfg.Reconcile, d.wallets, agg, d.configs, d.platform, logg.Named("reconcile"))
	}

	return d, nil
}

// requireEngine fails commands that need wallet links.
func (d *deps) requireEngine() (*reconcile.Engine, error) {
	if d.engine == nil {
		return nil, fmt.Errorf("database connection required for reconciliation")
	}
	return d.engine, nil
}
