package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CartLineItem is one product entry in a cart. A cart holds at most one
// line item per product id.
type CartLineItem struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unitPrice" binding:"gte=0"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

// Cart is the session-scoped collection of selected products. Total is
// always sum(unitPrice * quantity) over items.
type Cart struct {
	Items []CartLineItem `json:"items"`
	Total float64        `json:"total"`
}

// CartRecord is the persisted form of a cart: one row per session holding
// the serialized Cart payload.
type CartRecord struct {
	gorm.Model
	SessionID string         `json:"sessionId" gorm:"size:64;uniqueIndex"`
	Payload   datatypes.JSON `json:"payload"`
}
