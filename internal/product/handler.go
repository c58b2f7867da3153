package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/vzeeee/Qkart-Backend2/internal/apperr"
)

// Handler exposes the read-only catalog. All routes are public.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.list)
	app.Get("/api/v1/products/search", h.search)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getByID)
}

func (h *Handler) list(c *fiber.Ctx) error {
	products, err := h.service.List()
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"message": apperr.Message(err)})
	}
	return c.JSON(products)
}

func (h *Handler) search(c *fiber.Ctx) error {
	products, err := h.service.Search(c.Query("value"))
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"message": apperr.Message(err)})
	}
	return c.JSON(products)
}

func (h *Handler) getByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"message": apperr.Message(err)})
	}
	return c.JSON(p)
}
