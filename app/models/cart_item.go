package models

import (
	"time"

	"github.com/Rakhulsr/go-shop/app/utils/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID    string          `gorm:"size:36;not null;uniqueIndex:idx_cart_items_cart_product" json:"-"`
	ProductID string          `gorm:"size:36;not null;uniqueIndex:idx_cart_items_cart_product;index" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Qty       int             `gorm:"not null;default:1" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}

// Subtotal is always derived from the price snapshot and quantity.
func (ci CartItem) Subtotal() decimal.Decimal {
	return calc.LineSubtotal(ci.UnitPrice, ci.Qty)
}
