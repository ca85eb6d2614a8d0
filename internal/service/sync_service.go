package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"oaks-mart-backend/internal/model"
	"oaks-mart-backend/internal/repository"
	"oaks-mart-backend/internal/ws"

	"gorm.io/gorm"
)

// ClientLine is one sold item as recorded on the device. Numeric fields are
// kept raw so a bad value fails only its own transaction, not the whole batch.
type ClientLine struct {
	Barcode string          `json:"barcode"`
	Name    string          `json:"name"`
	Qty     json.RawMessage `json:"qty"`
	Price   json.RawMessage `json:"price"`
	Cost    json.RawMessage `json:"cost"`
}

// ClientTransaction is one locally-recorded sale pushed up during sync.
// LocalID is opaque and only echoed back for correlation.
type ClientTransaction struct {
	LocalID     json.RawMessage `json:"local_id"`
	CreatedAt   string          `json:"createdAt"`
	Total       json.RawMessage `json:"total"`
	PaymentType string          `json:"payment_type"`
	Lines       []ClientLine    `json:"lines"`
}

// SyncAck is the per-transaction result. Exactly one ack is produced per
// input transaction, in input order.
type SyncAck struct {
	LocalID  json.RawMessage `json:"local_id"`
	Status   string          `json:"status"`
	ServerID uint            `json:"server_id,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// SyncService reconciles client-recorded transaction batches against the
// authoritative catalog.
//
// There is no idempotency key: re-submitting a batch creates duplicate ledger
// rows and decrements stock again. Clients must not retry a batch whose
// response they received.
type SyncService interface {
	Reconcile(batch []ClientTransaction) ([]SyncAck, []model.Product)
}

type syncService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewSyncService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub) SyncService {
	return &syncService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		wsHub:           hub,
	}
}

// Reconcile commits each transaction in its own database transaction.
// A failure rolls back only that item; the loop continues with the next one.
// The returned product slice holds the final post-batch snapshot of every
// barcode whose stock changed, one entry per barcode.
func (s *syncService) Reconcile(batch []ClientTransaction) ([]SyncAck, []model.Product) {
	acks := make([]SyncAck, 0, len(batch))
	updated := make(map[string]model.Product)

	for i := range batch {
		ct := &batch[i]
		ack := SyncAck{LocalID: ct.LocalID}

		touched := make(map[string]model.Product)
		serverID, err := s.commitOne(ct, touched)
		if err != nil {
			ack.Status = "error"
			ack.Error = err.Error()
		} else {
			ack.Status = "ok"
			ack.ServerID = serverID
			// Snapshots of a rolled-back transaction must never leak into
			// the batch aggregate, so merging happens only after commit.
			for barcode, product := range touched {
				updated[barcode] = product
			}
		}
		acks = append(acks, ack)
	}

	products := make([]model.Product, 0, len(updated))
	for _, p := range updated {
		products = append(products, p)
	}

	if len(products) > 0 {
		s.wsHub.BroadcastJSON(map[string]interface{}{
			"type":     "stock_update",
			"action":   "sync_batch",
			"products": products,
		})
	}

	return acks, products
}

// commitOne persists one transaction, its lines, and the stock adjustments of
// every matching product as a single atomic unit.
func (s *syncService) commitOne(ct *ClientTransaction, touched map[string]model.Product) (uint, error) {
	total, err := parseFloat(ct.Total)
	if err != nil {
		return 0, fmt.Errorf("invalid total: %w", err)
	}

	paymentType := ct.PaymentType
	if paymentType == "" {
		paymentType = "cash"
	}

	transaction := model.Transaction{
		CreatedAt:   parseTimestamp(ct.CreatedAt),
		Total:       total,
		PaymentType: paymentType,
		Synced:      true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactionRepo.CreateTx(tx, &transaction); err != nil {
			return err
		}

		for _, line := range ct.Lines {
			qty, err := parseInt(line.Qty)
			if err != nil {
				return fmt.Errorf("invalid line qty: %w", err)
			}
			price, err := parseFloat(line.Price)
			if err != nil {
				return fmt.Errorf("invalid line price: %w", err)
			}
			cost, err := parseFloat(line.Cost)
			if err != nil {
				return fmt.Errorf("invalid line cost: %w", err)
			}

			if err := s.transactionRepo.CreateLineTx(tx, &model.TransactionLine{
				TransactionID: transaction.ID,
				Barcode:       line.Barcode,
				Name:          line.Name,
				Qty:           qty,
				Price:         price,
				Cost:          cost,
			}); err != nil {
				return err
			}

			// Unknown barcodes get no stock adjustment; the line itself is
			// still part of the ledger entry.
			product, err := s.productRepo.FindByBarcodeTx(tx, line.Barcode)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			if err := s.productRepo.DecrementStock(tx, product.Barcode, qty); err != nil {
				return err
			}
			after, err := s.productRepo.FindByBarcodeTx(tx, product.Barcode)
			if err != nil {
				return err
			}
			touched[after.Barcode] = *after
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return transaction.ID, nil
}

// parseFloat accepts a JSON number or a numeric string. An absent field
// counts as zero, matching what the clients have always sent; an explicit
// null is a validation error, like any other non-numeric value.
func parseFloat(raw json.RawMessage) (float64, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return 0, nil
	}
	if trimmed != "null" {
		// json.Unmarshal treats null as a no-op success, so it must be
		// screened out before this attempt
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return f, nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return f, nil
			}
		}
	}
	return 0, fmt.Errorf("could not convert %s to number", trimmed)
}

// parseInt follows the same rules as parseFloat; a fractional JSON number
// truncates toward zero, but a fractional string does not convert.
func parseInt(raw json.RawMessage) (int, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return 0, nil
	}
	if trimmed != "null" {
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return int(f), nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return n, nil
			}
		}
	}
	return 0, fmt.Errorf("could not convert %s to integer", trimmed)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp never fails; a malformed client clock is not a reason to
// reject a sale, so anything unparsable becomes server time.
func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value != "" {
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t
			}
		}
	}
	return time.Now().UTC()
}
