package cart

import (
	"errors"

	"github.com/orientalessence/essence-api/models"
	"gorm.io/gorm"
)

// GormStorage persists carts as one CartRecord row per session.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (g *GormStorage) Load(sessionID string) ([]byte, error) {
	var record models.CartRecord
	result := g.db.Where("session_id = ?", sessionID).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return record.Payload, nil
}

func (g *GormStorage) Save(sessionID string, payload []byte) error {
	var record models.CartRecord
	result := g.db.Where("session_id = ?", sessionID).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			record = models.CartRecord{SessionID: sessionID, Payload: payload}
			return g.db.Create(&record).Error
		}
		return result.Error
	}
	record.Payload = payload
	return g.db.Save(&record).Error
}

func (g *GormStorage) Delete(sessionID string) error {
	return g.db.Where("session_id = ?", sessionID).Delete(&models.CartRecord{}).Error
}
