package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a PIN-authenticated cashier or admin
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"name" validate:"required"`
	PinHash   string    `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`

	// For single session enforcement on token-based routes
	TokenVersion string `gorm:"type:varchar(255);default:''" json:"-"`
}

// SetPIN hashes and sets the user's PIN
func (u *User) SetPIN(pin string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PinHash = string(hashed)
	return nil
}

// CheckPIN verifies if the provided PIN matches the stored hash
func (u *User) CheckPIN(pin string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PinHash), []byte(pin))
	return err == nil
}

// UserResponse is used for API responses (without credentials)
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
