package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxPrice is the largest value a decimal(10,2) column holds.
var maxPrice = decimal.RequireFromString("99999999.99")

type ProductInput struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Slug     string          `json:"slug" validate:"omitempty,max=200"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock" validate:"gte=0,lte=1000000000"`
	IsActive *bool           `json:"is_active"`
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	} else {
		in.Slug = slug.Make(in.Slug)
	}
}

type CatalogService struct {
	productRepo repositories.ProductRepositoryImpl
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewCatalogService(productRepo repositories.ProductRepositoryImpl, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		validate:    validate,
		logger:      logger,
	}
}

func (s *CatalogService) ListActive(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return product, nil
}

// GetBySlug only resolves products that are on sale.
func (s *CatalogService) GetBySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || !product.IsActive {
		return nil, fmt.Errorf("product %s: %w", productSlug, ErrNotFound)
	}
	return product, nil
}

func (s *CatalogService) validateInput(in *ProductInput) error {
	in.normalize()
	if err := validateStruct(s.validate, in); err != nil {
		return err
	}
	if in.Slug == "" {
		return invalidField("slug", "required")
	}
	if in.Price.IsNegative() {
		return invalidField("price", "gte")
	}
	if in.Price.GreaterThan(maxPrice) {
		return invalidField("price", "lte")
	}
	if !in.Price.Equal(in.Price.Round(2)) {
		return invalidField("price", "decimal_places")
	}
	return nil
}

func (s *CatalogService) slugTaken(ctx context.Context, productSlug, exceptID string) (bool, error) {
	existing, err := s.productRepo.GetBySlug(ctx, productSlug)
	if err != nil {
		return false, err
	}
	return existing != nil && existing.ID != exceptID, nil
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}

	taken, err := s.slugTaken(ctx, in.Slug, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, invalidField("slug", "unique")
	}

	product := &models.Product{
		Name:     in.Name,
		Slug:     in.Slug,
		Price:    in.Price,
		Stock:    in.Stock,
		IsActive: in.IsActive == nil || *in.IsActive,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, invalidField("slug", "unique")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("slug", product.Slug))
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}

	taken, err := s.slugTaken(ctx, in.Slug, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, invalidField("slug", "unique")
	}

	product.Name = in.Name
	product.Slug = in.Slug
	product.Price = in.Price
	product.Stock = in.Stock
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, invalidField("slug", "unique")
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) Deactivate(ctx context.Context, id string) error {
	found, err := s.productRepo.SetActive(ctx, id, false)
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	if !found {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
	}
	s.logger.Info("product deactivated", zap.String("product_id", id))
	return nil
}

// Delete refuses products still referenced by any cart or order line;
// deactivate those instead.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.productRepo.IsReferenced(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check product references: %w", err)
	}
	if inUse {
		return ErrProductInUse
	}

	// A line added after the reference check still trips the foreign key.
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return ErrProductInUse
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}
