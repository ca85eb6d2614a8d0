package main

import (
	"log"
	"os"

	"oaks-mart-backend/internal/model"
	"oaks-mart-backend/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find Admin
	name := "admin"
	var user model.User
	if err := db.Where("name = ?", name).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", name, err)
	}

	// 4. Hash new PIN
	newPIN := os.Getenv("ADMIN_PIN")
	if newPIN == "" {
		newPIN = "1234"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash PIN: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("pin_hash", string(hashed)).Error; err != nil {
		log.Fatalf("Failed to update PIN in DB: %v", err)
	}

	log.Printf("Success! PIN for %s has been reset to: %s", name, newPIN)
}
