// Package domain defines the persistence models for users, products,
// basket items, orders, and news. These types are mapped with GORM and
// form the core data layer of the storefront application.
package domain

import (
	"encoding/json"
	"time"
)

// OrderStatusCreated is the initial (and currently only) order status.
const OrderStatusCreated = "created"

// User represents a storefront customer. The primary key is the numeric
// identifier assigned by the Telegram front door, so the same person maps
// to the same row whether they arrive via the bot or the web app.
//
// Address, DeliveryMethod, and PaymentMethod start empty and are overwritten
// with the values of the most recent order. Users are never deleted in the
// normal flow.
type User struct {
	UserID         int64     `json:"user_id"         gorm:"primaryKey;autoIncrement:false"`
	FirstName      string    `json:"first_name"      gorm:"type:varchar(255);not null"`
	LastName       string    `json:"last_name,omitempty"  gorm:"type:varchar(255)"`
	Username       string    `json:"username,omitempty"   gorm:"type:varchar(255)"`
	Address        string    `json:"address,omitempty"    gorm:"type:text"`
	DeliveryMethod string    `json:"delivery_method,omitempty" gorm:"type:varchar(64)"`
	PaymentMethod  string    `json:"payment_method,omitempty"  gorm:"type:varchar(64)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Product is a catalog entry. Products are read-only from the API's point
// of view; an external catalog-maintenance process manages the rows.
type Product struct {
	ID           uint    `json:"id"           gorm:"primaryKey"`
	Category     string  `json:"category"     gorm:"type:varchar(128);not null;index:idx_product_category"`
	Postcategory string  `json:"postcategory" gorm:"type:varchar(128)"`
	Name         string  `json:"name"         gorm:"type:varchar(255);not null"`
	Price        float64 `json:"price"        gorm:"not null"`
	NewPrice     float64 `json:"new_price"`
	Description  string  `json:"description"  gorm:"type:text"`
	Image        string  `json:"image"        gorm:"type:text"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }

// ProductSnapshot is the product data captured at the moment an item is
// added to the basket. It is stored serialized inside BasketItem rows, so
// later price or name changes never rewrite basket history.
type ProductSnapshot struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	AddedAt   string  `json:"added_at"`
}

// BasketItem is one row in a user's basket. Repeated adds of the same
// product create separate rows; there is no merging by product.
//
// ProductData holds the JSON-serialized ProductSnapshot.
type BasketItem struct {
	ID          uint      `json:"id"           gorm:"primaryKey;autoIncrement"`
	UserID      int64     `json:"user_id"      gorm:"not null;index:idx_basket_user"`
	ProductData string    `json:"product_data" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for BasketItem.
func (BasketItem) TableName() string { return "basket_items" }

// Snapshot deserializes the stored product snapshot.
func (b *BasketItem) Snapshot() (ProductSnapshot, error) {
	var s ProductSnapshot
	err := json.Unmarshal([]byte(b.ProductData), &s)
	return s, err
}

// OrderItem is one line of an order's serialized item list. Price and name
// are the values at order-creation time.
type OrderItem struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Order is an immutable record of a completed purchase intent.
//
// Fields:
//   - ID: random UUID primary key; deliberately non-sequential so order
//     identifiers cannot be guessed from one another.
//   - Items: JSON-serialized []OrderItem.
//   - TotalAmount: sum of price*quantity over Items, computed server-side.
//   - Status: "created" on insert; no later transitions exist in this scope.
type Order struct {
	ID             string    `json:"order_id"        gorm:"type:char(36);primaryKey"`
	UserID         int64     `json:"user_id"         gorm:"not null;index:idx_order_user"`
	Items          string    `json:"-"               gorm:"type:text;not null"`
	TotalAmount    float64   `json:"total_amount"    gorm:"not null"`
	Address        string    `json:"address"         gorm:"type:text;not null"`
	DeliveryMethod string    `json:"delivery_method" gorm:"type:varchar(64);not null"`
	PaymentMethod  string    `json:"payment_method"  gorm:"type:varchar(64);not null"`
	Status         string    `json:"status"          gorm:"type:varchar(32);not null;default:'created'"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name for Order.
func (Order) TableName() string { return "orders" }

// ItemList deserializes the stored order items.
func (o *Order) ItemList() ([]OrderItem, error) {
	var items []OrderItem
	err := json.Unmarshal([]byte(o.Items), &items)
	return items, err
}

// News is a storefront news entry, served newest-first.
type News struct {
	ID        uint      `json:"id"    gorm:"primaryKey"`
	Text      string    `json:"text"  gorm:"type:text;not null"`
	Image     string    `json:"image,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for News.
func (News) TableName() string { return "news" }
