package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"oaks-mart-backend/internal/model"
	"oaks-mart-backend/internal/repository"
	"oaks-mart-backend/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSyncApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Transaction{}, &model.TransactionLine{}))

	svc := service.NewSyncService(repository.NewProductRepo(db), repository.NewTransactionRepo(db), db, nil)
	app := fiber.New()
	app.Post("/api/sync", NewSyncHandler(svc).Sync)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestSyncEndpointReturns200WithMixedResults(t *testing.T) {
	app, db := setupSyncApp(t)
	require.NoError(t, db.Create(&model.Product{Barcode: "111", Name: "Soda", Price: 50, Cost: 30, Qty: 10}).Error)

	status, body := postJSON(t, app, "/api/sync", `{
		"transactions": [
			{"local_id": "good", "total": 150, "lines": [{"barcode": "111", "qty": 3, "price": 50, "cost": 30}]},
			{"local_id": "bad", "total": "oops", "lines": []}
		]
	}`)

	// batch-level success even though one item failed
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])

	acks := body["ack"].([]interface{})
	require.Len(t, acks, 2)

	first := acks[0].(map[string]interface{})
	assert.Equal(t, "good", first["local_id"])
	assert.Equal(t, "ok", first["status"])
	assert.NotNil(t, first["server_id"])

	second := acks[1].(map[string]interface{})
	assert.Equal(t, "bad", second["local_id"])
	assert.Equal(t, "error", second["status"])
	assert.NotEmpty(t, second["error"])

	updated := body["updated_products"].([]interface{})
	require.Len(t, updated, 1)
	product := updated[0].(map[string]interface{})
	assert.Equal(t, "111", product["barcode"])
	assert.Equal(t, float64(7), product["qty"])
}

func TestSyncEndpointRejectsMalformedBody(t *testing.T) {
	app, _ := setupSyncApp(t)

	status, body := postJSON(t, app, "/api/sync", `{"transactions": `)
	assert.Equal(t, 400, status)
	assert.Equal(t, false, body["ok"])
}

func TestSyncEndpointEmptyBatch(t *testing.T) {
	app, _ := setupSyncApp(t)

	status, body := postJSON(t, app, "/api/sync", `{"transactions": []}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])
	assert.Empty(t, body["ack"])
	assert.Empty(t, body["updated_products"])
}
