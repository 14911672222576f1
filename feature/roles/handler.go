package roles

import (
	"context"
	"errors"

	"lunar-assistant/core/logger"
	"lunar-assistant/core/reconcile"
	"lunar-assistant/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Reconciler runs a reconciliation for one user.
type Reconciler interface {
	Reconcile(ctx context.Context, userID string, opts reconcile.Options) (*reconcile.Report, error)
}

// Handler handles HTTP requests for role views.
type Handler struct {
	engine Reconciler
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(engine Reconciler, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes registers the roles routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/users/:user/roles", h.HandleViewRoles)
}

// HandleViewRoles reconciles the user's roles and lists the result.
// @Summary View Roles
// @Description Updates the user's roles in every community from their wallet holdings and lists the roles they hold.
// @Tags roles
// @Produce json
// @Param user path string true "Platform user id"
// @Param private query boolean false "Reply privately"
// @Param dry_run query boolean false "Plan without applying"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Wallet not linked"
// @Failure 503 {object} map[string]interface{} "Holdings unavailable"
// @Router /users/{user}/roles [get]
func (h *Handler) HandleViewRoles(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	private := utils.ToBool(c.Query("private"))
	opts := reconcile.Options{DryRun: utils.ToBool(c.Query("dry_run"))}

	report, err := h.engine.Reconcile(c.UserContext(), c.Params("user"), opts)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"message": GrantedMessage(report.ActiveRoles),
			"private": private,
			"report":  report,
		})
	case errors.Is(err, reconcile.ErrWalletNotLinked):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": walletMissingMessage, "private": private})
	case errors.Is(err, reconcile.ErrHoldingsUnavailable):
		l.Warn("Holdings unavailable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": unavailableMessage, "private": private})
	default:
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "There was an unknown error while executing this command!",
			"error":   err.Error(),
			"private": private,
		})
	}
}
