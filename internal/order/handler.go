package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vzeeee/Qkart-Backend2/internal/apperr"
	"github.com/vzeeee/Qkart-Backend2/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/cart/checkout", h.checkout)
	app.Get("/api/v1/orders", h.getOrders)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, err := h.service.Checkout(userID)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"message": apperr.Message(err)})
	}
	return c.JSON(ord)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.Orders(userID)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"message": apperr.Message(err)})
	}
	return c.JSON(orders)
}
