package service

import (
	"context"
	"fmt"

	"milk-ledger/internal/models"
	"milk-ledger/internal/store"
	"milk-ledger/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogService handles the product catalog.
type CatalogService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// ProductUpdate carries optional partial-update fields for a product.
type ProductUpdate struct {
	Name  *string          `json:"name,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// AddProduct validates and creates a product.
func (s *CatalogService) AddProduct(ctx context.Context, name string, price decimal.Decimal) (*models.Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: product price must not be negative", ErrInvalidInput)
	}

	product := &models.Product{Name: name, Price: price}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product added",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))
	return product, nil
}

// UpdateProduct applies a partial update. A price change only affects
// future orders; existing order lines keep their snapshot.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, upd ProductUpdate) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
		}
		product.Name = *upd.Name
	}
	if upd.Price != nil {
		if upd.Price.IsNegative() {
			return nil, fmt.Errorf("%w: product price must not be negative", ErrInvalidInput)
		}
		product.Price = *upd.Price
	}

	if err := s.store.UpdateProduct(ctx, *product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.DeleteProduct(ctx, id)
}

// ListProducts returns the full catalog.
func (s *CatalogService) ListProducts(ctx context.Context) []models.Product {
	return s.store.ListProducts(ctx)
}
