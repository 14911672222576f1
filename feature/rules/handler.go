package rules

import (
	"errors"
	"strconv"

	"lunar-assistant/core/logger"
	corerules "lunar-assistant/core/rules"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const noRulesMessage = "You haven't created any rules yet. Please add a rule and try again"

// Handler handles HTTP requests for rule administration.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the rule routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/guilds/:guild/rules")
	group.Post("/", h.HandleAdd)
	group.Get("/", h.HandleList)
	group.Delete("/:index", h.HandleRemove)
}

// HandleAdd adds a rule.
// @Summary Add Rule
// @Description Adds an ownership rule granting a role. The bot's role must sit above the target role.
// @Tags rules
// @Accept json
// @Produce json
// @Param guild path string true "Community id"
// @Param body body corerules.RuleInput true "Rule"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid rule"
// @Failure 409 {object} map[string]string "Role hierarchy violation"
// @Router /guilds/{guild}/rules [post]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input corerules.RuleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	index, rule, err := h.service.AddRule(c.UserContext(), c.Params("guild"), input)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Rule added successfully!",
			"index":   index,
			"rule":    rule,
		})
	case errors.Is(err, corerules.ErrParse), errors.Is(err, corerules.ErrRoleNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, corerules.ErrHierarchyViolation):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Add rule failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// HandleList lists the rules.
// @Summary List Rules
// @Tags rules
// @Produce json
// @Param guild path string true "Community id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "No rules"
// @Router /guilds/{guild}/rules [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	summaries, err := h.service.ListRules(c.UserContext(), c.Params("guild"))
	if errors.Is(err, corerules.ErrNoRules) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": noRulesMessage})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("List rules failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	lines := make([]string, len(summaries))
	for i, s := range summaries {
		lines[i] = s.String()
	}
	return c.JSON(fiber.Map{
		"rules": summaries,
		"lines": lines,
	})
}

// HandleRemove removes a rule by index.
// @Summary Remove Rule
// @Tags rules
// @Produce json
// @Param guild path string true "Community id"
// @Param index path int true "Rule number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Index out of bounds"
// @Failure 404 {object} map[string]string "No rules"
// @Router /guilds/{guild}/rules/{index} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please specify a rule number and try again"})
	}

	removed, err := h.service.RemoveRule(c.UserContext(), c.Params("guild"), index)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "Rule removed successfully!", "rule": removed})
	case errors.Is(err, corerules.ErrNoRules):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": noRulesMessage})
	case errors.Is(err, corerules.ErrIndexOutOfBounds):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Remove rule failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
