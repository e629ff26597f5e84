package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID     string  `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID *string `gorm:"size:36;index" json:"user_id,omitempty"`
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Number string  `gorm:"size:20;not null;uniqueIndex" json:"number"`

	Email    string `gorm:"size:254;not null" json:"email"`
	FullName string `gorm:"size:200;not null" json:"full_name"`
	Phone    string `gorm:"size:30" json:"phone"`
	Address  string `gorm:"size:255;not null" json:"address"`
	City     string `gorm:"size:100;not null" json:"city"`
	Region   string `gorm:"size:100" json:"region"`
	Notes    string `gorm:"type:text" json:"notes"`

	Subtotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Shipping decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"shipping"`
	Total    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	Status     string      `gorm:"size:20;not null;default:pending;index" json:"status"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
