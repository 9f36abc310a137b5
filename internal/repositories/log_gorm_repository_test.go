package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"plantlog/internal/models"
	"plantlog/internal/repositories"
	"plantlog/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a named in-memory SQLite database scoped to the test and
// migrates the schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.PlantLog{}))
	return db
}

// setupUsers inserts two users and returns their IDs.
func setupUsers(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()

	userRepo := repositories.NewGORMUserRepository(db)
	alice := &models.User{Email: "alice@example.com", PasswordHash: security.HashPassword("Abcdef1!")}
	bob := &models.User{Email: "bob@example.com", PasswordHash: security.HashPassword("Abcdef1!")}
	require.NoError(t, userRepo.Create(alice))
	require.NoError(t, userRepo.Create(bob))
	return alice.ID, bob.ID
}

func newLog(userID uint, name string, planted time.Time) *models.PlantLog {
	return &models.PlantLog{
		UserID:       userID,
		PlantName:    name,
		PlantingDate: planted,
		Season:       models.SeasonSummer,
		Status:       models.StatusGrowing,
		Location:     models.LocationPot,
	}
}

func TestGORMUserRepository(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)

	user := &models.User{Email: "a@example.com", PasswordHash: security.HashPassword("Abcdef1!")}
	require.NoError(t, userRepo.Create(user))
	assert.NotZero(t, user.ID)

	found, err := userRepo.GetByEmail("a@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := userRepo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)

	_, err = userRepo.GetByEmail("missing@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// The unique index rejects a second user with the same email
	dup := &models.User{Email: "a@example.com", PasswordHash: security.HashPassword("Other1!x")}
	assert.Error(t, userRepo.Create(dup))
}

func TestGORMLogRepository_OwnerIsolation(t *testing.T) {
	db := setupDB(t)
	alice, bob := setupUsers(t, db)
	repo := repositories.NewGORMLogRepository(db)

	basil := newLog(alice, "Basil", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	basil.Photo = []byte{0xFF, 0xD8}
	basil.PhotoMime = "image/jpeg"
	require.NoError(t, repo.Create(basil))

	// Bob never sees Alice's log, even with a known valid id
	logs, err := repo.List(bob, "", repositories.SortByName, repositories.SortDesc)
	assert.NoError(t, err)
	assert.Empty(t, logs)

	_, _, err = repo.FetchPhoto(bob, basil.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Bob's update is a no-op on Alice's row
	hijack := newLog(bob, "Hijacked", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, repo.Update(bob, basil.ID, hijack, false))

	logs, err = repo.List(alice, "", repositories.SortByName, repositories.SortDesc)
	assert.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Basil", logs[0].PlantName)

	// Bob's delete is a no-op on Alice's row
	assert.NoError(t, repo.Delete(bob, basil.ID))
	logs, err = repo.List(alice, "", repositories.SortByName, repositories.SortDesc)
	assert.NoError(t, err)
	assert.Len(t, logs, 1)

	// Alice can still fetch her photo
	photo, mime, err := repo.FetchPhoto(alice, basil.ID)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, photo)
	assert.Equal(t, "image/jpeg", mime)
}

func TestGORMLogRepository_ListSearchAndSort(t *testing.T) {
	db := setupDB(t)
	alice, _ := setupUsers(t, db)
	repo := repositories.NewGORMLogRepository(db)

	require.NoError(t, repo.Create(newLog(alice, "Basil", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Create(newLog(alice, "Aloe", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Create(newLog(alice, "Carrot", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))))

	names := func(logs []models.PlantLog) []string {
		out := make([]string, len(logs))
		for i, l := range logs {
			out[i] = l.PlantName
		}
		return out
	}

	// Default sort: plant name descending
	logs, err := repo.List(alice, "", repositories.SortByName, repositories.SortDesc)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Carrot", "Basil", "Aloe"}, names(logs))

	// Ascending by planting date
	logs, err = repo.List(alice, "", repositories.SortByDate, repositories.SortAsc)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Basil", "Carrot", "Aloe"}, names(logs))

	// Substring search matches case-insensitively
	logs, err = repo.List(alice, "bas", repositories.SortByName, repositories.SortDesc)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Basil"}, names(logs))

	// List omits the photo blob
	for _, l := range logs {
		assert.Nil(t, l.Photo)
	}

	// An out-of-allow-list sort field behaves exactly like plant_name,
	// and an unknown direction falls back to descending
	injected, err := repo.List(alice, "", "id; DROP TABLE users", "sideways")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Carrot", "Basil", "Aloe"}, names(injected))

	// The users table survived
	var count int64
	assert.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestGORMLogRepository_UpdatePhotoSemantics(t *testing.T) {
	db := setupDB(t)
	alice, _ := setupUsers(t, db)
	repo := repositories.NewGORMLogRepository(db)

	basil := newLog(alice, "Basil", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	basil.Photo = []byte{0x89, 0x50}
	basil.PhotoMime = "image/png"
	require.NoError(t, repo.Create(basil))

	// replacePhoto=false leaves the stored photo untouched
	edit := newLog(alice, "Basil (renamed)", time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Update(alice, basil.ID, edit, false))

	photo, mime, err := repo.FetchPhoto(alice, basil.ID)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, photo)
	assert.Equal(t, "image/png", mime)

	logs, err := repo.List(alice, "", repositories.SortByName, repositories.SortDesc)
	assert.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Basil (renamed)", logs[0].PlantName)

	// replacePhoto=true with a new photo overwrites both columns
	edit = newLog(alice, "Basil", time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC))
	edit.Photo = []byte{0xFF, 0xD8}
	edit.PhotoMime = "image/jpeg"
	require.NoError(t, repo.Update(alice, basil.ID, edit, true))

	photo, mime, err = repo.FetchPhoto(alice, basil.ID)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, photo)
	assert.Equal(t, "image/jpeg", mime)

	// replacePhoto=true with no payload clears the stored photo
	edit = newLog(alice, "Basil", time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Update(alice, basil.ID, edit, true))

	photo, mime, err = repo.FetchPhoto(alice, basil.ID)
	assert.NoError(t, err)
	assert.Empty(t, photo)
	assert.Empty(t, mime)
}

func TestGORMLogRepository_DeleteIsIdempotent(t *testing.T) {
	db := setupDB(t)
	alice, _ := setupUsers(t, db)
	repo := repositories.NewGORMLogRepository(db)

	basil := newLog(alice, "Basil", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(basil))

	assert.NoError(t, repo.Delete(alice, basil.ID))

	logs, err := repo.List(alice, "", repositories.SortByName, repositories.SortDesc)
	assert.NoError(t, err)
	assert.Empty(t, logs)

	// Deleting again is a no-op, not an error
	assert.NoError(t, repo.Delete(alice, basil.ID))
}
