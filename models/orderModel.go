package models

import "gorm.io/gorm"

// Order statuses. Orders are created as StatusPending and only move through
// the admin dashboard afterwards.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ValidOrderStatus reports whether status is one of OrderStatuses.
func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CustomerInfo holds the shipping and contact fields collected at checkout.
type CustomerInfo struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	Notes   string `json:"notes"`
}

// OrderDraft is the fully computed order as it exists between cart
// materialization and persistence. It is never stored; the Order row is.
type OrderDraft struct {
	OrderNumber  string
	Customer     CustomerInfo
	Items        []CartLineItem
	Subtotal     float64
	ShippingCost float64
	GrandTotal   float64
}

type Order struct {
	gorm.Model
	OrderNumber  string      `json:"orderNumber" gorm:"size:64;index"`
	CustomerName string      `json:"customerName"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Notes        string      `json:"notes"`
	Subtotal     float64     `json:"subtotal"`
	ShippingCost float64     `json:"shippingCost"`
	Total        float64     `json:"total"`
	Status       string      `json:"status"`
	OrderItems   []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID   int     `json:"orderId"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
}
