package cart

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/vzeeee/Qkart-Backend2/internal/apperr"
	"github.com/vzeeee/Qkart-Backend2/internal/product"
	"github.com/vzeeee/Qkart-Backend2/internal/user"
)

type catalogLister interface {
	ListByIDs(ids []int) ([]product.Product, error)
}

// Handler delegates cart operations to the cart service. GET responses are
// enriched with current catalog details (image, rating, category); the
// stored cost snapshot stays authoritative for pricing.
type Handler struct {
	service *Service
	catalog catalogLister
}

func NewHandler(s *Service, catalog catalogLister) *Handler {
	return &Handler{service: s, catalog: catalog}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addItem)
	app.Put("/api/v1/cart", h.updateItem)
	app.Delete("/api/v1/cart/:productID<[0-9]+>", h.removeItem)
}

type cartRequest struct {
	ProductID int `json:"productID"`
	Quantity  int `json:"quantity"`
}

type itemView struct {
	CartItem
	Category string `json:"category,omitempty"`
	Rating   int    `json:"rating,omitempty"`
	Image    string `json:"image,omitempty"`
}

type cartView struct {
	Cart
	Items []itemView `json:"cartItems"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.GetCart(userID)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"message": apperr.Message(err)})
	}
	return c.JSON(h.enrich(crt))
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.AddItem(userID, payload.ProductID, payload.Quantity)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"message": apperr.Message(err)})
	}
	return c.JSON(crt)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.UpdateItem(userID, payload.ProductID, payload.Quantity)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"message": apperr.Message(err)})
	}
	return c.JSON(crt)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.RemoveItem(userID, productID); err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"message": apperr.Message(err)})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) enrich(crt Cart) cartView {
	view := cartView{Cart: crt, Items: make([]itemView, 0, len(crt.Items))}
	for _, it := range crt.Items {
		view.Items = append(view.Items, itemView{CartItem: it})
	}

	ids := make([]int, 0, len(crt.Items))
	for _, it := range crt.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := h.catalog.ListByIDs(ids)
	if err != nil {
		// enrichment is cosmetic, the snapshot is already complete
		slog.Warn("cart enrichment failed", "error", err)
		return view
	}

	byID := make(map[int]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range view.Items {
		if p, ok := byID[view.Items[i].ProductID]; ok {
			view.Items[i].Category = p.Category
			view.Items[i].Rating = p.Rating
			view.Items[i].Image = p.Image
		}
	}
	return view
}
