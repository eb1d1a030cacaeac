package repository

import (
	"context"

	"ebook-checkout/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentMethodRepository interface {
	Seed(ctx context.Context) error
	List(ctx context.Context) ([]*model.PaymentMethod, error)
}

type paymentMethodRepoImpl struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepoImpl{
		db: db,
	}
}

func (r *paymentMethodRepoImpl) Seed(ctx context.Context) error {
	methods := []model.PaymentMethod{
		{ID: "upi", Name: "UPI", Icon: "Smartphone", Description: "PhonePe, Google Pay, Paytm", GatewayModes: "upi", Position: 1},
		{ID: "cards", Name: "Cards", Icon: "CreditCard", Description: "Credit/Debit Cards", GatewayModes: "cc,dc", Position: 2},
		{ID: "netbanking", Name: "Net Banking", Icon: "Building", Description: "All major banks", GatewayModes: "nb", Position: 3},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&methods).Error
}

func (r *paymentMethodRepoImpl) List(ctx context.Context) ([]*model.PaymentMethod, error) {
	var methods []*model.PaymentMethod
	err := r.db.WithContext(ctx).
		Order("position").
		Find(&methods).
		Error

	if err != nil {
		return nil, err
	}

	return methods, nil
}
