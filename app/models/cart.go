package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart belongs to exactly one of an authenticated user or an anonymous
// session. Both columns are nullable so the unique indexes only bind the
// side that is set; the check constraint rejects rows with both or neither.
// user_id carries no foreign key: MySQL refuses referential actions on
// columns that appear in a CHECK constraint.
type Cart struct {
	ID         string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID     *string    `gorm:"size:36;uniqueIndex;check:chk_carts_owner,(user_id IS NULL) <> (session_key IS NULL)" json:"user_id,omitempty"`
	SessionKey *string    `gorm:"size:40;uniqueIndex" json:"-"`
	CartItems  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// Owner reports which identity the cart is keyed by.
func (c *Cart) Owner() CartOwner {
	if c.UserID != nil {
		return UserOwner(*c.UserID)
	}
	if c.SessionKey != nil {
		return GuestOwner(*c.SessionKey)
	}
	return CartOwner{}
}

type ownerKind uint8

const (
	ownerNone ownerKind = iota
	ownerUser
	ownerGuest
)

// CartOwner is the identity a cart is looked up by: a user id or a guest
// session key, never both.
type CartOwner struct {
	kind ownerKind
	key  string
}

func UserOwner(userID string) CartOwner {
	return CartOwner{kind: ownerUser, key: userID}
}

func GuestOwner(sessionKey string) CartOwner {
	return CartOwner{kind: ownerGuest, key: sessionKey}
}

func (o CartOwner) IsUser() bool  { return o.kind == ownerUser }
func (o CartOwner) IsGuest() bool { return o.kind == ownerGuest }

// Valid is false for the zero value and for an empty key.
func (o CartOwner) Valid() bool {
	return o.kind != ownerNone && o.key != ""
}

func (o CartOwner) Key() string { return o.key }

func (o CartOwner) String() string {
	switch o.kind {
	case ownerUser:
		return fmt.Sprintf("user:%s", o.key)
	case ownerGuest:
		return fmt.Sprintf("guest:%s", o.key)
	default:
		return "none"
	}
}

// NewCart builds an empty cart row for the owner.
func NewCart(owner CartOwner) *Cart {
	key := owner.key
	cart := &Cart{}
	switch owner.kind {
	case ownerUser:
		cart.UserID = &key
	case ownerGuest:
		cart.SessionKey = &key
	}
	return cart
}
