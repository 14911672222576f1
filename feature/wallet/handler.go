package wallet

import (
	"errors"

	"lunar-assistant/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for wallet links.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// RegisterRoutes registers the wallet routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/users/:user/wallet")
	group.Put("/", h.HandleLink)
	group.Get("/", h.HandleGet)
}

type linkRequest struct {
	Address string `json:"address"`
}

// HandleLink links a wallet to the user.
// @Summary Link Wallet
// @Description Links (or relinks) a wallet address to a platform user.
// @Tags wallet
// @Accept json
// @Produce json
// @Param user path string true "Platform user id"
// @Param body body linkRequest true "Wallet address"
// @Success 200 {object} Link
// @Failure 400 {object} map[string]string "Invalid address"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /users/{user}/wallet [put]
func (h *Handler) HandleLink(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req linkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	link, err := h.repo.Link(c.UserContext(), c.Params("user"), req.Address)
	if errors.Is(err, ErrInvalidAddress) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Wallet link failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Wallet linked", zap.String("user", link.UserID), zap.String("address", link.Address))
	return c.JSON(link)
}

// HandleGet returns the user's linked wallet.
// @Summary Get Wallet
// @Tags wallet
// @Produce json
// @Param user path string true "Platform user id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not linked"
// @Router /users/{user}/wallet [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	address, ok, err := h.repo.GetLinkedWallet(c.UserContext(), c.Params("user"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no wallet linked"})
	}
	return c.JSON(fiber.Map{"user_id": c.Params("user"), "address": address})
}
