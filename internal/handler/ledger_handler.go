package handler

import (
	"strconv"

	"oaks-mart-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// LedgerHandler exposes read access to committed transactions and their lines.
type LedgerHandler struct {
	transactionRepo repository.TransactionRepository
}

func NewLedgerHandler(tRepo repository.TransactionRepository) *LedgerHandler {
	return &LedgerHandler{transactionRepo: tRepo}
}

// GetTransactions lists committed transactions, newest first
// GET /api/transactions
func (h *LedgerHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.transactionRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}

// GetTransaction fetches one transaction with its lines
// GET /api/transactions/:id
func (h *LedgerHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.transactionRepo.FindByID(uint(id))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(transaction)
}
