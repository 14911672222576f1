package rules

import (
	"lunar-assistant/core/guildconfig"
	"lunar-assistant/core/platform"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the rules feature. It is disabled when either the
// store or the platform is missing.
func NewFeature(store guildconfig.Store, p platform.Platform, logger *zap.Logger) *Feature {
	f := &Feature{}
	if store != nil && p != nil {
		f.service = NewService(store, p, logger)
		f.handler = NewHandler(f.service)
	}
	return f
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "rules"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
