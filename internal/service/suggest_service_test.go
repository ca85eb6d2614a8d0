package service

import (
	"testing"

	"oaks-mart-backend/internal/model"
	"oaks-mart-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSuggestService(t *testing.T) (SuggestService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewSuggestService(repository.NewProductRepo(db), repository.NewTransactionRepo(db)), db
}

func seedSale(t *testing.T, db *gorm.DB, barcode string, qty int) {
	t.Helper()
	transaction := &model.Transaction{Total: 100, PaymentType: "cash", Synced: true}
	require.NoError(t, db.Create(transaction).Error)
	require.NoError(t, db.Create(&model.TransactionLine{
		TransactionID: transaction.ID,
		Barcode:       barcode,
		Qty:           qty,
	}).Error)
}

func TestSuggestUnknownBarcode(t *testing.T) {
	svc, _ := newSuggestService(t)

	_, err := svc.Suggest("missing", 14)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSuggestWithoutSalesHistory(t *testing.T) {
	svc, db := newSuggestService(t)
	seedProduct(t, db, "111", "Soda", 100, 60, 12)

	resp, err := svc.Suggest("111", 14)
	require.NoError(t, err)

	assert.Zero(t, resp.Metrics.TotalSoldInHistory)
	assert.Zero(t, resp.Metrics.AvgDailyEstimate)
	assert.Nil(t, resp.Metrics.DaysOfCover)
	assert.Zero(t, resp.Suggestions.SuggestedReorderQty)
}

func TestSuggestComputesReorder(t *testing.T) {
	svc, db := newSuggestService(t)
	seedProduct(t, db, "111", "Soda", 100, 60, 2)
	seedSale(t, db, "111", 20)
	seedSale(t, db, "111", 8)
	seedSale(t, db, "999", 3) // other barcode, must not count

	resp, err := svc.Suggest("111", 14)
	require.NoError(t, err)

	assert.Equal(t, 28, resp.Metrics.TotalSoldInHistory)
	assert.InDelta(t, 2.0, resp.Metrics.AvgDailyEstimate, 1e-9)
	require.NotNil(t, resp.Metrics.DaysOfCover)
	assert.InDelta(t, 1.0, *resp.Metrics.DaysOfCover, 1e-9)

	// target = avg_daily*14 = 28, reorder = 28 - qty(2)
	assert.Equal(t, 26, resp.Suggestions.SuggestedReorderQty)
	assert.Equal(t, 14, resp.Suggestions.SafetyTargetDays)
	assert.InDelta(t, 40.0, resp.Suggestions.MarginKes, 1e-9)
	assert.InDelta(t, 40.0, resp.Suggestions.MarginPct, 1e-9)
}

func TestSuggestEnforcesMinimumTarget(t *testing.T) {
	svc, db := newSuggestService(t)
	seedProduct(t, db, "111", "Soda", 100, 60, 0)
	seedSale(t, db, "111", 1)

	resp, err := svc.Suggest("111", 14)
	require.NoError(t, err)

	// avg*14 = 1, below the 5-unit floor
	assert.Equal(t, 5, resp.Suggestions.SuggestedReorderQty)
}

func TestSuggestGuardsZeroPrice(t *testing.T) {
	svc, db := newSuggestService(t)
	seedProduct(t, db, "111", "Freebie", 0, 10, 1)

	resp, err := svc.Suggest("111", 14)
	require.NoError(t, err)

	assert.InDelta(t, -10.0, resp.Suggestions.MarginKes, 1e-9)
	assert.Zero(t, resp.Suggestions.MarginPct)
}

func TestSuggestClampsLookback(t *testing.T) {
	svc, db := newSuggestService(t)
	seedProduct(t, db, "111", "Soda", 100, 60, 0)
	seedSale(t, db, "111", 7)

	resp, err := svc.Suggest("111", 0)
	require.NoError(t, err)

	// lookback floors at one day
	assert.InDelta(t, 7.0, resp.Metrics.AvgDailyEstimate, 1e-9)
}
