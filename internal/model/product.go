package model

import "time"

// Product is the catalog entry for one barcode.
// Qty must never go below zero; the sync reconciler floors decrements at zero.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Barcode   string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"barcode" validate:"required"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Price     float64   `json:"price"`
	Cost      float64   `json:"cost"`
	Qty       int       `gorm:"default:0" json:"qty"`
	IsNew     bool      `gorm:"default:true" json:"is_new"`
	CreatedAt time.Time `json:"created_at"`
}
