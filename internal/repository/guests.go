package repository

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"fete/internal/models"
)

// GuestRepository persists guests. Name lookups are case-insensitive, so
// the unique index on name enforces case-insensitive uniqueness in
// practice.
type GuestRepository struct {
	db *gorm.DB
}

// NewGuestRepository creates a guest repository on the given connection.
func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// Add stores a new guest; a guest with the same name (any case) is
// rejected.
func (r *GuestRepository) Add(guest models.Guest) error {
	if _, err := r.GetByName(guest.Name); err == nil {
		return fmt.Errorf("a guest named %q already exists", guest.Name)
	}
	record := guestRecordFrom(guest)
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store guest %q: %w", guest.Name, err)
	}
	return nil
}

// GetByName fetches one guest by case-insensitive name.
func (r *GuestRepository) GetByName(name string) (models.Guest, error) {
	var record GuestRecord
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&record).Error; err != nil {
		return models.Guest{}, fmt.Errorf("guest %q not found", name)
	}
	return record.toDomain(), nil
}

// GetAll returns every stored guest in insertion order.
func (r *GuestRepository) GetAll() ([]models.Guest, error) {
	var records []GuestRecord
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load guests: %w", err)
	}
	guests := make([]models.Guest, len(records))
	for i := range records {
		guests[i] = records[i].toDomain()
	}
	return guests, nil
}

// Update replaces the stored guest matching the given guest's name.
func (r *GuestRepository) Update(guest models.Guest) error {
	var record GuestRecord
	if err := r.db.Where("LOWER(name) = LOWER(?)", guest.Name).First(&record).Error; err != nil {
		return fmt.Errorf("guest %q not found", guest.Name)
	}
	record.Intimacy = guest.Intimacy
	record.Preferences = RatingMap(guest.Preferences)
	record.DietaryTags = StringSlice(guest.DietaryTags)
	if err := r.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to update guest %q: %w", guest.Name, err)
	}
	return nil
}

// Delete removes a guest by name; returns false when no such guest exists.
func (r *GuestRepository) Delete(name string) (bool, error) {
	result := r.db.Where("LOWER(name) = LOWER(?)", name).Delete(&GuestRecord{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete guest %q: %w", name, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Count returns the number of stored guests.
func (r *GuestRepository) Count() (int, error) {
	var count int
	if err := r.db.Model(&GuestRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ClearAll removes every stored guest and returns how many were removed.
func (r *GuestRepository) ClearAll() (int, error) {
	count, err := r.Count()
	if err != nil {
		return 0, err
	}
	if err := r.db.Delete(&GuestRecord{}).Error; err != nil {
		return 0, err
	}
	return count, nil
}
