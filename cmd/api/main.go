package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"oaks-mart-backend/internal/handler"
	"oaks-mart-backend/internal/middleware"
	"oaks-mart-backend/internal/model"
	"oaks-mart-backend/internal/repository"
	"oaks-mart-backend/internal/service"
	"oaks-mart-backend/internal/ws"
	"oaks-mart-backend/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{}, &model.Product{}, &model.Transaction{}, &model.TransactionLine{})

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo)
	syncService := service.NewSyncService(productRepo, txRepo, db, wsHub)
	suggestService := service.NewSuggestService(productRepo, txRepo)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	syncHandler := handler.NewSyncHandler(syncService)
	suggestHandler := handler.NewSuggestHandler(suggestService)
	ledgerHandler := handler.NewLedgerHandler(txRepo)

	// 5. Seed default admin (ADMIN_PIN env for initial bootstrapping)
	adminPIN := os.Getenv("ADMIN_PIN")
	if adminPIN == "" {
		adminPIN = "1234"
	}
	if err := authService.SeedDefaultAdmin(adminPIN); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	} else {
		log.Println("Admin user ready (name \"admin\"). Change the default PIN immediately!")
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Oaks Mart POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "app": "oaks-mart-backend"})
	})

	// Auth Routes (admin capability is checked per-request inside the handlers)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/create_user", authHandler.CreateUser)
	auth.Post("/change_pin", authHandler.ChangePIN)
	api.Get("/users", authHandler.ListUsers)

	// Catalog Routes
	api.Get("/products", catalogHandler.GetProducts)
	api.Post("/products", catalogHandler.UpsertProduct)

	// Sync Route (devices may be headless; no token required)
	api.Post("/sync", syncHandler.Sync)

	// Reorder suggestion
	api.Post("/ai/suggest", suggestHandler.Suggest)

	// Ledger reads require a logged-in admin
	ledger := api.Group("/transactions", middleware.RequireAuth(userRepo), middleware.RequireAdminToken())
	ledger.Get("/", ledgerHandler.GetTransactions)
	ledger.Get("/:id", ledgerHandler.GetTransaction)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// Static frontend (SPA): unknown GET paths fall back to index.html so the
	// client-side router can handle them
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./static"
	}
	app.Static("/", staticDir)
	app.Use(func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			index := filepath.Join(staticDir, "index.html")
			if _, err := os.Stat(index); err == nil {
				return c.SendFile(index)
			}
		}
		return c.Status(404).JSON(fiber.Map{"error": "not found"})
	})

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "5000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
