package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/jinzhu/gorm"

	"fete/internal/models"
)

// StringSlice stores a slice of strings as a JSON text column.
type StringSlice []string

// Value converts the slice to a JSON string for storage.
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan converts the database value back to a slice.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// RatingMap stores a preference map (item name -> rating) as a JSON text
// column.
type RatingMap map[string]int

// Value converts the map to a JSON string for storage.
func (m RatingMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan converts the database value back to a map.
func (m *RatingMap) Scan(value interface{}) error {
	if value == nil {
		*m = RatingMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for RatingMap")
	}
}

// GuestRecord is the stored form of a models.Guest.
type GuestRecord struct {
	gorm.Model
	Name        string      `gorm:"unique_index"`
	Intimacy    int
	Preferences RatingMap   `gorm:"type:text"`
	DietaryTags StringSlice `gorm:"type:text"`
}

// TableName sets the table name for GuestRecord.
func (GuestRecord) TableName() string {
	return "guests"
}

func (r *GuestRecord) toDomain() models.Guest {
	return models.Guest{
		Name:        r.Name,
		Preferences: map[string]int(r.Preferences),
		Intimacy:    r.Intimacy,
		DietaryTags: []string(r.DietaryTags),
	}
}

func guestRecordFrom(g models.Guest) GuestRecord {
	return GuestRecord{
		Name:        g.Name,
		Intimacy:    g.Intimacy,
		Preferences: RatingMap(g.Preferences),
		DietaryTags: StringSlice(g.DietaryTags),
	}
}

// MenuItemRecord is the stored form of a models.MenuItem.
type MenuItemRecord struct {
	gorm.Model
	Name     string `gorm:"unique_index"`
	UnitCost float64
	Category string
	Tags     StringSlice `gorm:"type:text"`
}

// TableName sets the table name for MenuItemRecord.
func (MenuItemRecord) TableName() string {
	return "menu_items"
}

func (r *MenuItemRecord) toDomain() models.MenuItem {
	return models.MenuItem{
		Name:     r.Name,
		UnitCost: r.UnitCost,
		Category: models.Category(r.Category),
		Tags:     []string(r.Tags),
	}
}

func itemRecordFrom(m models.MenuItem) MenuItemRecord {
	return MenuItemRecord{
		Name:     m.Name,
		UnitCost: m.UnitCost,
		Category: string(m.Category),
		Tags:     StringSlice(m.Tags),
	}
}
