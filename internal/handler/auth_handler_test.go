package handler

import (
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

func setupAuthApp(t *testing.T) (*fiber.App, service.AuthService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	authService := service.NewAuthService(repository.NewUserRepo(db))
	require.NoError(t, authService.SeedDefaultAdmin("1234"))

	h := NewAuthHandler(authService)
	app := fiber.New()
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/create_user", h.CreateUser)
	app.Post("/api/auth/change_pin", h.ChangePIN)
	return app, authService
}

func TestLoginTrimsPaddedCredentials(t *testing.T) {
	app, _ := setupAuthApp(t)

	status, body := postJSON(t, app, "/api/auth/login", `{"name": " admin ", "pin": " 1234 "}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["name"])
	assert.NotEmpty(t, body["token"])
}

func TestLoginRejectsWrongPIN(t *testing.T) {
	app, _ := setupAuthApp(t)

	status, body := postJSON(t, app, "/api/auth/login", `{"name": "admin", "pin": "0000"}`)
	assert.Equal(t, 401, status)
	assert.Equal(t, false, body["ok"])
}

func TestCreateUserTrimsNameAndPIN(t *testing.T) {
	app, svc := setupAuthApp(t)

	status, body := postJSON(t, app, "/api/auth/create_user", `{
		"name": " jane ", "pin": " 5678 ",
		"admin_name": "admin", "admin_pin": "1234"
	}`)
	require.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])

	// the stored credentials are the trimmed ones
	resp, err := svc.Login("jane", "5678")
	require.NoError(t, err)
	assert.Equal(t, "jane", resp.User.Name)
}

func TestCreateUserRequiresAdminCapability(t *testing.T) {
	app, _ := setupAuthApp(t)

	status, _ := postJSON(t, app, "/api/auth/create_user", `{"name": "jane", "pin": "5678"}`)
	assert.Equal(t, 403, status)

	status, _ = postJSON(t, app, "/api/auth/create_user", `{
		"name": "jane", "pin": "5678",
		"admin_name": "admin", "admin_pin": "wrong"
	}`)
	assert.Equal(t, 403, status)
}

func TestChangePINTrimsTargetFields(t *testing.T) {
	app, svc := setupAuthApp(t)

	status, body := postJSON(t, app, "/api/auth/change_pin", `{
		"target_name": " admin ", "new_pin": " 4321 ",
		"admin_name": "admin", "admin_pin": "1234"
	}`)
	require.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])

	_, err := svc.Login("admin", "4321")
	assert.NoError(t, err)
}
