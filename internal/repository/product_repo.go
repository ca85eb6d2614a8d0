package repository

import (
	"oaks-mart-backend/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	FindAll() ([]model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	FindByBarcodeTx(tx *gorm.DB, barcode string) (*model.Product, error)
	Create(product *model.Product) error
	Save(product *model.Product) error
	DecrementStock(tx *gorm.DB, barcode string, qty int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	return r.FindByBarcodeTx(r.db, barcode)
}

// FindByBarcodeTx menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi
func (r *productRepo) FindByBarcodeTx(tx *gorm.DB, barcode string) (*model.Product, error) {
	var product model.Product
	if err := tx.First(&product, "barcode = ?", barcode).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) Save(product *model.Product) error {
	return r.db.Save(product).Error
}

// DecrementStock subtracts qty from stock in a single conditional UPDATE,
// floored at zero. Doing the clamp in SQL keeps concurrent batches from
// driving qty negative without needing a row lock.
func (r *productRepo) DecrementStock(tx *gorm.DB, barcode string, qty int) error {
	return tx.Model(&model.Product{}).
		Where("barcode = ?", barcode).
		Update("qty", gorm.Expr("CASE WHEN qty >= ? THEN qty - ? ELSE 0 END", qty, qty)).Error
}
