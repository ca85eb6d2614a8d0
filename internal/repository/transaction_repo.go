package repository

import (
	"oaks-mart-backend/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	CreateTx(tx *gorm.DB, transaction *model.Transaction) error
	CreateLineTx(tx *gorm.DB, line *model.TransactionLine) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uint) (*model.Transaction, error)
	TotalSoldByBarcode(barcode string) (int, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// CreateTx menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi
func (r *transactionRepo) CreateTx(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) CreateLineTx(tx *gorm.DB, line *model.TransactionLine) error {
	return tx.Create(line).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Lines").Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uint) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Lines").First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// TotalSoldByBarcode sums line quantities for a barcode across all history,
// not a window. The reorder heuristic divides by the lookback itself.
func (r *transactionRepo) TotalSoldByBarcode(barcode string) (int, error) {
	var total int
	err := r.db.Model(&model.TransactionLine{}).
		Where("barcode = ?", barcode).
		Select("COALESCE(SUM(qty), 0)").
		Scan(&total).Error
	return total, err
}
