package handler

import (
	"errors"
	"strings"

	"oaks-mart-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

// CreateUserRequest carries the new user plus the admin capability fields
type CreateUserRequest struct {
	Name     string `json:"name"`
	PIN      string `json:"pin"`
	IsAdmin  bool   `json:"is_admin"`
	AdminN   string `json:"admin_name"`
	AdminPIN string `json:"admin_pin"`
}

// ChangePINRequest represents the PIN change request body
type ChangePINRequest struct {
	TargetName string `json:"target_name"`
	NewPIN     string `json:"new_pin"`
	AdminN     string `json:"admin_name"`
	AdminPIN   string `json:"admin_pin"`
}

// Login handles PIN authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "Invalid JSON"})
	}

	// POS keypads tend to pad input; credentials are compared trimmed
	req.Name = strings.TrimSpace(req.Name)
	req.PIN = strings.TrimSpace(req.PIN)

	if req.Name == "" || req.PIN == "" {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "name and pin required"})
	}

	response, err := h.authService.Login(req.Name, req.PIN)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"ok": false, "error": "invalid credentials"})
	}

	return c.JSON(fiber.Map{"ok": true, "user": response.User, "token": response.Token})
}

// CreateUser creates a user on the server; requires admin name+PIN in the body
// POST /api/auth/create_user
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "Invalid JSON"})
	}

	if req.AdminN == "" || req.AdminPIN == "" {
		return c.Status(403).JSON(fiber.Map{"ok": false, "error": "admin_name and admin_pin required to create user on server"})
	}
	if _, err := h.authService.RequireAdmin(req.AdminN, req.AdminPIN); err != nil {
		return c.Status(403).JSON(fiber.Map{"ok": false, "error": "admin auth failed"})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.PIN = strings.TrimSpace(req.PIN)
	if req.Name == "" || req.PIN == "" {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "name and pin required"})
	}

	user, err := h.authService.CreateUser(&service.CreateUserRequest{
		Name:    req.Name,
		PIN:     req.PIN,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"ok": true, "user": user.ToResponse()})
}

// ChangePIN updates a user's PIN; requires admin name+PIN in the body
// POST /api/auth/change_pin
func (h *AuthHandler) ChangePIN(c *fiber.Ctx) error {
	var req ChangePINRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "Invalid JSON"})
	}

	req.TargetName = strings.TrimSpace(req.TargetName)
	req.NewPIN = strings.TrimSpace(req.NewPIN)
	if req.TargetName == "" || req.NewPIN == "" || req.AdminN == "" || req.AdminPIN == "" {
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": "target_name, new_pin, admin_name, admin_pin required"})
	}

	if _, err := h.authService.RequireAdmin(req.AdminN, req.AdminPIN); err != nil {
		return c.Status(403).JSON(fiber.Map{"ok": false, "error": "admin auth failed"})
	}

	user, err := h.authService.ChangePIN(req.TargetName, req.NewPIN)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"ok": false, "error": "target user not found"})
		}
		return c.Status(400).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"ok": true, "user": user.ToResponse()})
}

// ListUsers lists all users; admin name+PIN in query params
// GET /api/users
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	adminName := c.Query("admin_name")
	adminPIN := c.Query("admin_pin")

	if _, err := h.authService.RequireAdmin(adminName, adminPIN); err != nil {
		return c.Status(403).JSON(fiber.Map{"ok": false, "error": "admin auth required"})
	}

	users, err := h.authService.ListUsers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"ok": false, "error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"ok": true, "users": users})
}
