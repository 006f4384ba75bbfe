package initializers

import (
	"log"

	"github.com/orientalessence/essence-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartRecord{},
	)
	log.Println("Database synced successfully.")
}
