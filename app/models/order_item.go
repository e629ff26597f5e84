package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is a frozen copy of a cart line. It keeps a reference to the
// product for audit, but never reads price or name from it again.
type OrderItem struct {
	ID          string          `gorm:"size:36;primaryKey;not null;uniqueIndex" json:"id"`
	OrderID     string          `gorm:"size:36;not null;index" json:"-"`
	ProductID   string          `gorm:"size:36;not null;index" json:"product_id"`
	Product     *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
	ProductName string          `gorm:"size:200;not null" json:"product_name"`
	Qty         int             `gorm:"not null" json:"qty"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
