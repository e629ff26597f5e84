package handlers

import (
	"time"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/utils/format"
	"github.com/shopspring/decimal"
)

// Money goes over the wire as fixed two-place strings; the *_display
// fields are for people.

type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Price        string `json:"price"`
	PriceDisplay string `json:"price_display"`
	Stock        int    `json:"stock"`
	IsActive     bool   `json:"is_active"`
}

func NewProductResponse(p models.Product, symbol string) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Price:        format.Amount(p.Price),
		PriceDisplay: format.Money(p.Price, symbol),
		Stock:        p.Stock,
		IsActive:     p.IsActive,
	}
}

func NewProductResponses(products []models.Product, symbol string) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p, symbol))
	}
	return out
}

type CartItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Qty         int    `json:"qty"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

func NewCartItemResponse(item models.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Qty:       item.Qty,
		UnitPrice: format.Amount(item.UnitPrice),
		Subtotal:  format.Amount(item.Subtotal()),
	}
	if item.Product != nil {
		resp.ProductName = item.Product.Name
	}
	return resp
}

func newCartItemResponses(items []models.CartItem) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewCartItemResponse(item))
	}
	return out
}

type CartResponse struct {
	ID           string             `json:"id"`
	Items        []CartItemResponse `json:"items"`
	ItemCount    int                `json:"item_count"`
	Total        string             `json:"total"`
	TotalDisplay string             `json:"total_display"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func NewCartResponse(cart *models.Cart, total decimal.Decimal, symbol string) CartResponse {
	count := 0
	for _, item := range cart.CartItems {
		count += item.Qty
	}
	return CartResponse{
		ID:           cart.ID,
		Items:        newCartItemResponses(cart.CartItems),
		ItemCount:    count,
		Total:        format.Amount(total),
		TotalDisplay: format.Money(total, symbol),
		UpdatedAt:    cart.UpdatedAt,
	}
}

type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Qty         int    `json:"qty"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Status       string              `json:"status"`
	Email        string              `json:"email"`
	FullName     string              `json:"full_name"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	City         string              `json:"city"`
	Region       string              `json:"region"`
	Notes        string              `json:"notes"`
	Subtotal     string              `json:"subtotal"`
	Shipping     string              `json:"shipping"`
	Total        string              `json:"total"`
	TotalDisplay string              `json:"total_display"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
}

func NewOrderResponse(o models.Order, symbol string) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Qty:         item.Qty,
			UnitPrice:   format.Amount(item.UnitPrice),
			Subtotal:    format.Amount(item.Subtotal),
		})
	}
	return OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		Status:       o.Status,
		Email:        o.Email,
		FullName:     o.FullName,
		Phone:        o.Phone,
		Address:      o.Address,
		City:         o.City,
		Region:       o.Region,
		Notes:        o.Notes,
		Subtotal:     format.Amount(o.Subtotal),
		Shipping:     format.Amount(o.Shipping),
		Total:        format.Amount(o.Total),
		TotalDisplay: format.Money(o.Total, symbol),
		Items:        items,
		CreatedAt:    o.CreatedAt,
	}
}

func NewOrderResponses(orders []models.Order, symbol string) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o, symbol))
	}
	return out
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
