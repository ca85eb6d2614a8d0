package handler

import (
	"encoding/json"

	"oaks-mart-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	service service.SyncService
}

func NewSyncHandler(s service.SyncService) *SyncHandler {
	return &SyncHandler{service: s}
}

// SyncRequest is the batch envelope pushed by a client after being offline
type SyncRequest struct {
	Transactions []service.ClientTransaction `json:"transactions"`
}

// Sync reconciles a batch of client-recorded transactions.
// POST /api/sync
//
// Always answers 200 when the batch itself parses; individual failures are
// reported per-item in ack, so the caller must inspect each entry.
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	var req SyncRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "Invalid JSON"})
	}

	acks, updated := h.service.Reconcile(req.Transactions)

	return c.JSON(fiber.Map{
		"ok":               true,
		"ack":              acks,
		"updated_products": updated,
	})
}
