package roles

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the roles feature. A nil engine disables it.
func NewFeature(engine Reconciler, logger *zap.Logger) *Feature {
	f := &Feature{}
	if engine != nil {
		f.handler = NewHandler(engine, logger)
	}
	return f
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "roles"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.handler != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
