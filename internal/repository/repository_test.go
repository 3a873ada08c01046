package repository

import (
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fete/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")
	db.AutoMigrate(&GuestRecord{}, &MenuItemRecord{})
	t.Cleanup(func() { db.Close() })
	return db
}

func testGuest(t *testing.T, name string, intimacy int) models.Guest {
	t.Helper()
	guest, err := models.NewGuest(name, map[string]int{"Chicken": 4, "Soda": 2}, intimacy, []string{"vegetarian"})
	require.NoError(t, err)
	return guest
}

func TestGuestRepositoryRoundTrip(t *testing.T) {
	repo := NewGuestRepository(setupTestDB(t))

	original := testGuest(t, "Tom", 7)
	require.NoError(t, repo.Add(original))

	stored, err := repo.GetByName("Tom")
	require.NoError(t, err)
	assert.Equal(t, original.Name, stored.Name)
	assert.Equal(t, original.Intimacy, stored.Intimacy)
	assert.Equal(t, original.Preferences, stored.Preferences)
	assert.Equal(t, original.DietaryTags, stored.DietaryTags)
}

func TestGuestRepositoryCaseInsensitiveLookup(t *testing.T) {
	repo := NewGuestRepository(setupTestDB(t))
	require.NoError(t, repo.Add(testGuest(t, "Tom Hanks", 7)))

	stored, err := repo.GetByName("tom hanks")
	require.NoError(t, err)
	assert.Equal(t, "Tom Hanks", stored.Name)
}

func TestGuestRepositoryRejectsDuplicates(t *testing.T) {
	repo := NewGuestRepository(setupTestDB(t))
	require.NoError(t, repo.Add(testGuest(t, "Tom", 7)))

	err := repo.Add(testGuest(t, "TOM", 3))
	assert.Error(t, err, "duplicate names must be rejected regardless of case")
}

func TestGuestRepositoryUpdate(t *testing.T) {
	repo := NewGuestRepository(setupTestDB(t))
	require.NoError(t, repo.Add(testGuest(t, "Tom", 7)))

	updated, err := models.NewGuest("Tom", map[string]int{"Tea": 5}, 2, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Update(updated))

	stored, err := repo.GetByName("Tom")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Intimacy)
	assert.Equal(t, map[string]int{"Tea": 5}, stored.Preferences)

	missing, err := models.NewGuest("Nobody", nil, 5, nil)
	require.NoError(t, err)
	assert.Error(t, repo.Update(missing))
}

func TestGuestRepositoryDelete(t *testing.T) {
	repo := NewGuestRepository(setupTestDB(t))
	require.NoError(t, repo.Add(testGuest(t, "Tom", 7)))

	deleted, err := repo.Delete("tom")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete("tom")
	require.NoError(t, err)
	assert.False(t, deleted, "second delete should report nothing removed")
}

func TestGuestRepositoryGetAllOrder(t *testing.T) {
	repo := NewGuestRepository(setupTestDB(t))
	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		require.NoError(t, repo.Add(testGuest(t, name, 5)))
	}

	guests, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, guests, 3)
	assert.Equal(t, "Charlie", guests[0].Name, "GetAll must preserve insertion order")

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestGuestRepositoryClearAll(t *testing.T) {
	repo := NewGuestRepository(setupTestDB(t))
	require.NoError(t, repo.Add(testGuest(t, "Tom", 7)))
	require.NoError(t, repo.Add(testGuest(t, "Ariel", 6)))

	removed, err := repo.ClearAll()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestItemRepository(t *testing.T) {
	repo := NewItemRepository(setupTestDB(t))

	chicken, err := models.NewMenuItem("Fried Chicken", 5.70, models.CategoryMain, []string{"contains-gluten"})
	require.NoError(t, err)
	soda, err := models.NewMenuItem("Soda", 2.49, models.CategoryDrink, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Add(chicken))
	require.NoError(t, repo.Add(soda))

	stored, err := repo.GetByName("fried chicken")
	require.NoError(t, err)
	assert.Equal(t, 5.70, stored.UnitCost)
	assert.Equal(t, models.CategoryMain, stored.Category)
	assert.Equal(t, []string{"contains-gluten"}, stored.Tags)

	assert.Error(t, repo.Add(chicken), "duplicate item must be rejected")

	drinks, err := repo.GetByCategory(models.CategoryDrink)
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "Soda", drinks[0].Name)
}

func TestSeedDefaultCatalog(t *testing.T) {
	repo := NewItemRepository(setupTestDB(t))

	require.NoError(t, SeedDefaultCatalog(repo))
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, len(defaultCatalog), count)

	// Seeding again must not duplicate the catalog.
	require.NoError(t, SeedDefaultCatalog(repo))
	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, len(defaultCatalog), count)
}

func TestRatingMapScanValue(t *testing.T) {
	m := RatingMap{"Chicken": 4}
	value, err := m.Value()
	require.NoError(t, err)

	var restored RatingMap
	require.NoError(t, restored.Scan(value))
	assert.Equal(t, m, restored)

	var empty RatingMap
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}
