package repositories

import (
	"fmt"

	"plantlog/internal/models"

	"gorm.io/gorm"
)

// listColumns are the columns returned by List. The photo blob itself is
// deliberately excluded; it is only loaded through FetchPhoto.
var listColumns = []string{
	"id", "user_id", "plant_name", "planting_date", "season", "status",
	"location", "notes", "photo_mime", "created_at", "updated_at",
}

// sortColumns is the allow-list for the ORDER BY column. Only values from
// this map are ever interpolated into the query text; everything else falls
// back to plant_name.
var sortColumns = map[string]string{
	SortByName: "plant_name",
	SortByDate: "planting_date",
}

// GORMLogRepository is a GORM implementation of LogRepository.
type GORMLogRepository struct {
	db *gorm.DB
}

// NewGORMLogRepository creates a new instance of GORMLogRepository.
func NewGORMLogRepository(db *gorm.DB) *GORMLogRepository {
	return &GORMLogRepository{
		db: db,
	}
}

// Create inserts a new plant log for its owning user.
func (r *GORMLogRepository) Create(log *models.PlantLog) error {
	if err := r.db.Omit("User").Create(log).Error; err != nil {
		return fmt.Errorf("failed to create plant log: %w", err)
	}
	return nil
}

// List returns all logs owned by userID, optionally filtered by a substring
// match on the plant name and ordered by the requested field and direction.
func (r *GORMLogRepository) List(userID uint, search, sortField, sortDir string) ([]models.PlantLog, error) {
	column, ok := sortColumns[sortField]
	if !ok {
		column = "plant_name"
	}
	direction := SortDesc
	if sortDir == SortAsc {
		direction = SortAsc
	}

	query := r.db.Select(listColumns).Where("user_id = ?", userID)
	if search != "" {
		query = query.Where("plant_name LIKE ?", "%"+search+"%")
	}

	var logs []models.PlantLog
	if err := query.Order(column + " " + direction).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list plant logs: %w", err)
	}
	return logs, nil
}

// FetchPhoto returns the stored photo and its MIME type for a log owned by
// userID. A log owned by someone else is indistinguishable from a missing one.
func (r *GORMLogRepository) FetchPhoto(userID, logID uint) ([]byte, string, error) {
	var log models.PlantLog
	err := r.db.Select("photo", "photo_mime").
		Where("id = ? AND user_id = ?", logID, userID).
		First(&log).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", fmt.Errorf("plant log %d: %w", logID, ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to fetch photo for log %d: %w", logID, err)
	}
	return log.Photo, log.PhotoMime, nil
}

// Update replaces all editable fields of a log owned by userID. When
// replacePhoto is true the photo columns are overwritten with whatever log
// carries, including nil, which clears the stored photo. When false they are
// left untouched. Updating a row that does not exist for this owner is a
// no-op, matching Delete.
func (r *GORMLogRepository) Update(userID, logID uint, log *models.PlantLog, replacePhoto bool) error {
	updates := map[string]interface{}{
		"plant_name":    log.PlantName,
		"planting_date": log.PlantingDate,
		"season":        log.Season,
		"status":        log.Status,
		"location":      log.Location,
		"notes":         log.Notes,
	}
	if replacePhoto {
		updates["photo"] = log.Photo
		updates["photo_mime"] = log.PhotoMime
	}

	res := r.db.Model(&models.PlantLog{}).
		Where("id = ? AND user_id = ?", logID, userID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update plant log %d: %w", logID, res.Error)
	}
	return nil
}

// Delete removes a log owned by userID. Deleting a row that does not exist
// for this owner is a no-op, not an error.
func (r *GORMLogRepository) Delete(userID, logID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", logID, userID).Delete(&models.PlantLog{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete plant log %d: %w", logID, res.Error)
	}
	return nil
}
