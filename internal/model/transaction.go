package model

import "time"

// Transaction is a committed sale pushed up by a client device.
// Total is client-reported and stored as-is, never recomputed from the lines.
// Synced is always true once the row exists; there is no pending state
// server-side.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Total       float64   `json:"total"`
	PaymentType string    `gorm:"type:varchar(50)" json:"payment_type"`
	Synced      bool      `gorm:"default:false" json:"synced"`

	Lines []TransactionLine `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"lines"`
}

// TransactionLine is a denormalized snapshot of the product at sale time.
// Name, Price and Cost are copies, not live references, so history stays
// accurate if the catalog entry changes later. Immutable after creation.
type TransactionLine struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	TransactionID uint    `gorm:"not null;index" json:"transaction_id"`
	Barcode       string  `gorm:"type:varchar(120)" json:"barcode"`
	Name          string  `gorm:"type:varchar(255)" json:"name"`
	Qty           int     `json:"qty"`
	Price         float64 `json:"price"`
	Cost          float64 `json:"cost"`
}
