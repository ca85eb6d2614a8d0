package handler

import (
	"errors"

	"oaks-mart-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SuggestHandler struct {
	service service.SuggestService
}

func NewSuggestHandler(s service.SuggestService) *SuggestHandler {
	return &SuggestHandler{service: s}
}

// SuggestRequest asks for reorder advice on one barcode
type SuggestRequest struct {
	Barcode      string `json:"barcode"`
	LookbackDays int    `json:"lookback_days"`
}

// Suggest runs the reorder heuristic for a product
// POST /api/ai/suggest
func (h *SuggestHandler) Suggest(c *fiber.Ctx) error {
	var req SuggestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "Invalid JSON"})
	}

	if req.Barcode == "" {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "barcode required"})
	}
	if req.LookbackDays == 0 {
		req.LookbackDays = 14
	}

	resp, err := h.service.Suggest(req.Barcode, req.LookbackDays)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"ok": false, "error": "product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"ok":          true,
		"product":     resp.Product,
		"metrics":     resp.Metrics,
		"suggestions": resp.Suggestions,
		"research":    resp.Research,
	})
}
