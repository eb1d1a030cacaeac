package service

import (
	"context"
	"fmt"

	"ebook-checkout/internal/config"
	"ebook-checkout/internal/dto"
	"ebook-checkout/internal/model"
	"ebook-checkout/internal/money"
	"ebook-checkout/internal/repository"

	"github.com/shopspring/decimal"
)

type CatalogService interface {
	Seed(ctx context.Context) error
	Product(ctx context.Context) (*model.Product, error)
	GetProduct(ctx context.Context) (*dto.ProductResponse, error)
	ListPaymentMethods(ctx context.Context) ([]*dto.PaymentMethodResponse, error)
	ValidateAmount(ctx context.Context, amount decimal.Decimal) (bool, error)
}

type catalogServiceImpl struct {
	productCfg        config.Product
	productRepo       repository.ProductRepository
	paymentMethodRepo repository.PaymentMethodRepository
}

func NewCatalogService(
	productCfg config.Product,
	productRepo repository.ProductRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
) CatalogService {
	return &catalogServiceImpl{
		productCfg:        productCfg,
		productRepo:       productRepo,
		paymentMethodRepo: paymentMethodRepo,
	}
}

// Seed writes the configured product and the default payment methods.
func (s *catalogServiceImpl) Seed(ctx context.Context) error {
	err := s.productRepo.Upsert(ctx, &model.Product{
		ID:            s.productCfg.ID,
		Name:          s.productCfg.Name,
		Description:   s.productCfg.Description,
		Price:         s.productCfg.Price,
		OriginalPrice: s.productCfg.OriginalPrice,
		Currency:      model.CurrencyINR,
		BonusValue:    s.productCfg.BonusValue,
	})
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}

	if err := s.paymentMethodRepo.Seed(ctx); err != nil {
		return fmt.Errorf("seed payment methods: %w", err)
	}
	return nil
}

func (s *catalogServiceImpl) Product(ctx context.Context) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, s.productCfg.ID)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", s.productCfg.ID, err)
	}
	return product, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context) (*dto.ProductResponse, error) {
	product, err := s.Product(ctx)
	if err != nil {
		return nil, err
	}

	savings := product.Savings()
	return &dto.ProductResponse{
		ID:                     product.ID,
		Name:                   product.Name,
		Description:            product.Description,
		Currency:               product.Currency,
		Price:                  product.Price.String(),
		OriginalPrice:          product.OriginalPrice.String(),
		Savings:                savings.String(),
		DiscountPercent:        product.DiscountPercent(),
		BonusValue:             product.BonusValue.String(),
		PriceFormatted:         money.FormatINR(product.Price),
		OriginalPriceFormatted: money.FormatINR(product.OriginalPrice),
		SavingsFormatted:       money.FormatINR(savings),
		BonusValueFormatted:    money.FormatINR(product.BonusValue),
	}, nil
}

func (s *catalogServiceImpl) ListPaymentMethods(ctx context.Context) ([]*dto.PaymentMethodResponse, error) {
	methods, err := s.paymentMethodRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}

	out := make([]*dto.PaymentMethodResponse, len(methods))
	for i, m := range methods {
		out[i] = &dto.PaymentMethodResponse{
			ID:          m.ID,
			Name:        m.Name,
			Icon:        m.Icon,
			Description: m.Description,
			Modes:       m.Modes(),
		}
	}
	return out, nil
}

// ValidateAmount reports whether amount is exactly the current, positive product price.
func (s *catalogServiceImpl) ValidateAmount(ctx context.Context, amount decimal.Decimal) (bool, error) {
	product, err := s.Product(ctx)
	if err != nil {
		return false, err
	}
	return amount.IsPositive() && amount.Equal(product.Price), nil
}
