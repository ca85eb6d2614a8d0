package service

import (
	"encoding/json"
	"testing"

	"oaks-mart-backend/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.Transaction{}, &model.TransactionLine{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, barcode, name string, price, cost float64, qty int) *model.Product {
	t.Helper()
	product := &model.Product{
		Barcode: barcode,
		Name:    name,
		Price:   price,
		Cost:    cost,
		Qty:     qty,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// clientBatch decodes a raw sync payload the way the handler does, so the
// tests exercise the same tolerant field parsing clients hit in production.
func clientBatch(t *testing.T, payload string) []ClientTransaction {
	t.Helper()
	var req struct {
		Transactions []ClientTransaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	return req.Transactions
}
