package repository

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"fete/internal/models"
)

// ItemRepository persists the menu item catalog.
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates an item repository on the given connection.
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Add stores a new menu item; an item with the same name (any case) is
// rejected.
func (r *ItemRepository) Add(item models.MenuItem) error {
	if _, err := r.GetByName(item.Name); err == nil {
		return fmt.Errorf("a menu item named %q already exists", item.Name)
	}
	record := itemRecordFrom(item)
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store menu item %q: %w", item.Name, err)
	}
	return nil
}

// GetByName fetches one item by case-insensitive name.
func (r *ItemRepository) GetByName(name string) (models.MenuItem, error) {
	var record MenuItemRecord
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&record).Error; err != nil {
		return models.MenuItem{}, fmt.Errorf("menu item %q not found", name)
	}
	return record.toDomain(), nil
}

// GetAll returns the whole catalog in insertion order.
func (r *ItemRepository) GetAll() ([]models.MenuItem, error) {
	var records []MenuItemRecord
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	items := make([]models.MenuItem, len(records))
	for i := range records {
		items[i] = records[i].toDomain()
	}
	return items, nil
}

// GetByCategory returns every item in one category, in insertion order.
func (r *ItemRepository) GetByCategory(category models.Category) ([]models.MenuItem, error) {
	var records []MenuItemRecord
	if err := r.db.Where("category = ?", string(category)).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s items: %w", category, err)
	}
	items := make([]models.MenuItem, len(records))
	for i := range records {
		items[i] = records[i].toDomain()
	}
	return items, nil
}

// Update replaces the stored item matching the given item's name.
func (r *ItemRepository) Update(item models.MenuItem) error {
	var record MenuItemRecord
	if err := r.db.Where("LOWER(name) = LOWER(?)", item.Name).First(&record).Error; err != nil {
		return fmt.Errorf("menu item %q not found", item.Name)
	}
	record.UnitCost = item.UnitCost
	record.Category = string(item.Category)
	record.Tags = StringSlice(item.Tags)
	if err := r.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to update menu item %q: %w", item.Name, err)
	}
	return nil
}

// Delete removes an item by name; returns false when no such item exists.
func (r *ItemRepository) Delete(name string) (bool, error) {
	result := r.db.Where("LOWER(name) = LOWER(?)", name).Delete(&MenuItemRecord{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete menu item %q: %w", name, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Count returns the number of stored items.
func (r *ItemRepository) Count() (int, error) {
	var count int
	if err := r.db.Model(&MenuItemRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
