package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lunar-assistant/core/loader"
	"lunar-assistant/core/logger"
	"lunar-assistant/core/middleware/auth"
	"lunar-assistant/core/middleware/rayid"
	"lunar-assistant/feature/integrity"
	"lunar-assistant/feature/roles"
	"lunar-assistant/feature/rules"
	"lunar-assistant/feature/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "lunar-assistant/docs/swagger"
)

// @title Lunar Assistant API
// @version 1.0
// @description Token-gated role reconciliation for community platforms.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Lunar Assistant server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		logg := d.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           d.cfg.Server.ReadTimeout(),
			WriteTimeout:          d.cfg.Server.WriteTimeout(),
		})

		mgr := loader.NewManager(logg)

		var reconciler roles.Reconciler
		if d.engine != nil {
			reconciler = d.engine
		}
		mgr.Register(roles.NewFeature(reconciler, logg))
		mgr.Register(rules.NewFeature(d.configs, d.platform, logg))
		mgr.Register(wallet.NewFeature(d.db, logg))
		mgr.Register(integrity.NewFeature(integrity.NewService(
			d.storage, d.cfg.Storage.Bucket, d.cfg.Rules.Prefix, d.db, d.sources, d.sourceTimeout(), logg,
		)))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: d.cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", d.cfg.Server.Address()))
			errCh <- app.Listen(d.cfg.Server.Address())
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
