package models

import "gorm.io/gorm"

// Review is a customer review for a product. Seeded marks fixture rows
// injected at startup so they can be told apart from real submissions.
type Review struct {
	gorm.Model
	ProductID int    `json:"productId"`
	Name      string `json:"name" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
	Seeded    bool   `json:"-"`
}

// ReviewStats is the aggregate shown on product pages.
type ReviewStats struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}
