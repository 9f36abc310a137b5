package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"plantlog/internal/models"
)

// MockLogRepository is an in-memory implementation of LogRepository. It
// mirrors the store semantics the GORM implementation relies on: owner
// scoping, case-insensitive substring search and the sort allow-list.
type MockLogRepository struct {
	logs   map[uint]models.PlantLog
	nextID uint
	mu     sync.RWMutex
}

// NewMockLogRepository creates a new instance of MockLogRepository.
func NewMockLogRepository() *MockLogRepository {
	return &MockLogRepository{
		logs:   make(map[uint]models.PlantLog),
		nextID: 1,
	}
}

// Create adds a new plant log, assigning the next numeric ID.
func (r *MockLogRepository) Create(log *models.PlantLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.ID = r.nextID
	r.nextID++
	log.CreatedAt = time.Now()
	log.UpdatedAt = log.CreatedAt
	r.logs[log.ID] = *log
	return nil
}

// List returns the logs owned by userID, filtered and ordered like the
// store-backed implementation. Photo bytes are stripped from the results.
func (r *MockLogRepository) List(userID uint, search, sortField, sortDir string) ([]models.PlantLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(search)
	logs := make([]models.PlantLog, 0, len(r.logs))
	for _, l := range r.logs {
		if l.UserID != userID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(l.PlantName), needle) {
			continue
		}
		l.Photo = nil
		logs = append(logs, l)
	}

	byDate := sortField == SortByDate
	asc := sortDir == SortAsc
	sort.Slice(logs, func(i, j int) bool {
		a, b := logs[i], logs[j]
		if !asc {
			a, b = b, a
		}
		if byDate {
			return a.PlantingDate.Before(b.PlantingDate)
		}
		return a.PlantName < b.PlantName
	})
	return logs, nil
}

// FetchPhoto returns the photo and MIME type of a log owned by userID.
func (r *MockLogRepository) FetchPhoto(userID, logID uint) ([]byte, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, ok := r.logs[logID]
	if !ok || log.UserID != userID {
		return nil, "", fmt.Errorf("plant log %d: %w", logID, ErrNotFound)
	}
	return log.Photo, log.PhotoMime, nil
}

// Update replaces the editable fields of a log owned by userID. Missing or
// foreign rows are a no-op.
func (r *MockLogRepository) Update(userID, logID uint, log *models.PlantLog, replacePhoto bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.logs[logID]
	if !ok || existing.UserID != userID {
		return nil
	}

	existing.PlantName = log.PlantName
	existing.PlantingDate = log.PlantingDate
	existing.Season = log.Season
	existing.Status = log.Status
	existing.Location = log.Location
	existing.Notes = log.Notes
	if replacePhoto {
		existing.Photo = log.Photo
		existing.PhotoMime = log.PhotoMime
	}
	existing.UpdatedAt = time.Now()
	r.logs[logID] = existing
	return nil
}

// Delete removes a log owned by userID; missing or foreign rows are a no-op.
func (r *MockLogRepository) Delete(userID, logID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, ok := r.logs[logID]
	if !ok || log.UserID != userID {
		return nil
	}
	delete(r.logs, log.ID)
	return nil
}
