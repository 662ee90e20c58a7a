package repository

import (
	"errors"

	"github.com/pikamon/PikaShop/app/models"
	"gorm.io/gorm"
)

// gradingRepository implements GradingRepository using GORM
type gradingRepository struct {
	db *gorm.DB
}

// NewGradingRepository creates a new grading entry repository instance
func NewGradingRepository(db *gorm.DB) GradingRepository {
	return &gradingRepository{db: db}
}

func (r *gradingRepository) Create(entry *models.GradingEntry) error {
	return r.db.Create(entry).Error
}

func (r *gradingRepository) GetByUUID(uuid string) (*models.GradingEntry, error) {
	var entry models.GradingEntry
	err := r.db.Where("uuid = ?", uuid).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *gradingRepository) GetByUserID(userID uint) ([]models.GradingEntry, error) {
	var entries []models.GradingEntry
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *gradingRepository) Update(entry *models.GradingEntry) error {
	return r.db.Save(entry).Error
}
