package handler

import (
	"oaks-mart-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// GetProducts lists the full catalog, name-ordered
// GET /api/products
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// UpsertProduct creates or updates a product by barcode
// POST /api/products
func (h *CatalogHandler) UpsertProduct(c *fiber.Ctx) error {
	var req service.UpsertProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "Invalid JSON"})
	}

	if req.Barcode == "" {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "barcode required"})
	}

	product, err := h.service.UpsertProduct(&req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"ok": true, "product": product})
}
