package repositories

import "plantlog/internal/models"

// Sort parameters accepted by List. Anything outside these sets falls back
// to the defaults instead of reaching the query text.
const (
	SortByName = "plant_name"
	SortByDate = "planting_date"

	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// LogRepository defines the interface for plant log data access. Every
// operation is scoped by the owning user ID in the same query as the record
// ID, so a log belonging to another user behaves exactly like a missing one.
type LogRepository interface {
	Create(log *models.PlantLog) error
	List(userID uint, search, sortField, sortDir string) ([]models.PlantLog, error)
	FetchPhoto(userID, logID uint) ([]byte, string, error)
	Update(userID, logID uint, log *models.PlantLog, replacePhoto bool) error
	Delete(userID, logID uint) error
}
