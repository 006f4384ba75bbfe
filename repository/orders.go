package repository

import (
	"fmt"

	"github.com/orientalessence/essence-api/models"
	"gorm.io/gorm"
)

// Store is the gorm-backed order repository.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateOrder persists the draft as an order row plus its item rows in one
// transaction and returns the repository-assigned id.
func (s *Store) CreateOrder(draft models.OrderDraft) (uint, error) {
	order := models.Order{
		OrderNumber:  draft.OrderNumber,
		CustomerName: draft.Customer.Name,
		Email:        draft.Customer.Email,
		Phone:        draft.Customer.Phone,
		Address:      draft.Customer.Address,
		Notes:        draft.Customer.Notes,
		Subtotal:     draft.Subtotal,
		ShippingCost: draft.ShippingCost,
		Total:        draft.GrandTotal,
		Status:       models.StatusPending,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range draft.Items {
		orderItem := models.OrderItem{
			OrderID:   int(order.ID),
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, fmt.Errorf("failed to save order: %w", err)
	}

	return order.ID, nil
}

// UpdateOrderStatus moves an order to one of the statuses in
// models.OrderStatuses. Used by the admin dashboard only.
func (s *Store) UpdateOrderStatus(orderID uint, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status %q", status)
	}

	result := s.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	return mapUpdateResult(result)
}

// mapUpdateResult converts an update that matched no rows into
// gorm.ErrRecordNotFound so callers can distinguish a missing order from a
// database failure.
func mapUpdateResult(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListOrders returns a page of orders, newest first by default, optionally
// filtered by order number.
func (s *Store) ListOrders(page, limit int, search, sortOrder string) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	offset := (page - 1) * limit

	query := s.db.Preload("OrderItems")
	if search != "" {
		query = query.Where("order_number LIKE ?", "%"+search+"%")
	}

	var orders []models.Order
	result := query.Order("created_at " + sortOrder).Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	var count int64
	countQuery := s.db.Model(&models.Order{})
	if search != "" {
		countQuery = countQuery.Where("order_number LIKE ?", "%"+search+"%")
	}
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

// DeleteOrder removes an order and, through the foreign key constraint,
// its items.
func (s *Store) DeleteOrder(orderID uint) error {
	return s.db.Delete(&models.Order{}, orderID).Error
}

// CountUndelivered counts orders that still need fulfillment.
func (s *Store) CountUndelivered() (int64, error) {
	var count int64
	result := s.db.Model(&models.Order{}).
		Where("status NOT IN ?", []string{models.StatusDelivered, models.StatusCancelled}).
		Count(&count)
	return count, result.Error
}

// GetOrder fetches one order with its items.
func (s *Store) GetOrder(orderID uint) (models.Order, error) {
	var order models.Order
	result := s.db.Preload("OrderItems").First(&order, orderID)
	return order, result.Error
}
