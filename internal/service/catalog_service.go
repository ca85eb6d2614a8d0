package service

import (
	"errors"
	"fmt"

	"oaks-mart-backend/internal/model"
	"oaks-mart-backend/internal/repository"
	"oaks-mart-backend/pkg/validator"

	"gorm.io/gorm"
)

// UpsertProductRequest creates or updates a catalog entry by barcode.
// Pointer fields distinguish "absent" from "zero": absent fields leave the
// stored value untouched.
type UpsertProductRequest struct {
	Barcode string   `json:"barcode" validate:"required"`
	Name    *string  `json:"name"`
	Price   *float64 `json:"price"`
	Cost    *float64 `json:"cost"`
	Qty     *int     `json:"qty"`
	IsNew   *bool    `json:"is_new"`
}

type CatalogService interface {
	ListProducts() ([]model.Product, error)
	UpsertProduct(req *UpsertProductRequest) (*model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(pRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: pRepo}
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) UpsertProduct(req *UpsertProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByBarcode(req.Barcode)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		product = &model.Product{Barcode: req.Barcode, IsNew: true}
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Cost != nil {
		product.Cost = *req.Cost
	}
	if req.Qty != nil {
		product.Qty = *req.Qty
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}

	if product.ID == 0 {
		err = s.productRepo.Create(product)
	} else {
		err = s.productRepo.Save(product)
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}
