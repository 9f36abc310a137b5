package services

import (
	"encoding/json"
	"log"
	"strings"

	"plantlog/internal/models"
	"plantlog/internal/repositories"
	"plantlog/pkg/events"
)

// LogService handles business logic for plant logs. It validates the closed
// enumerations and the plant name before anything reaches the store, and
// publishes change events when an events client is configured.
type LogService struct {
	repo     repositories.LogRepository
	mqClient *events.Client
}

// NewLogService creates a new LogService. mqClient may be nil, which
// disables change events.
func NewLogService(repo repositories.LogRepository, mqClient *events.Client) *LogService {
	return &LogService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// validate rejects values outside the closed enumerations and empty plant
// names before persistence. The name is trimmed in place.
func validate(plantLog *models.PlantLog) error {
	plantLog.PlantName = strings.TrimSpace(plantLog.PlantName)
	if plantLog.PlantName == "" {
		return ErrEmptyPlantName
	}
	if !plantLog.Season.Valid() {
		return ErrInvalidSeason
	}
	if !plantLog.Status.Valid() {
		return ErrInvalidStatus
	}
	if !plantLog.Location.Valid() {
		return ErrInvalidLocation
	}
	return nil
}

// Create validates and inserts a new plant log owned by the session's user.
func (s *LogService) Create(session *Session, plantLog *models.PlantLog) error {
	if err := validate(plantLog); err != nil {
		return err
	}
	plantLog.UserID = session.UserID

	if err := s.repo.Create(plantLog); err != nil {
		return err
	}

	s.publish(events.LogCreated, plantLog.ID, session.UserID)
	return nil
}

// List returns the session user's logs, optionally filtered by a substring
// of the plant name and ordered by an allow-listed field and direction.
func (s *LogService) List(session *Session, search, sortField, sortDir string) ([]models.PlantLog, error) {
	return s.repo.List(session.UserID, search, sortField, sortDir)
}

// FetchPhoto returns the photo and MIME type of one of the session user's
// logs.
func (s *LogService) FetchPhoto(session *Session, logID uint) ([]byte, string, error) {
	return s.repo.FetchPhoto(session.UserID, logID)
}

// Update validates and replaces all editable fields of one of the session
// user's logs. When replacePhoto is true the stored photo and MIME type are
// overwritten with whatever plantLog carries, including nothing, which
// clears them; when false they are left untouched.
func (s *LogService) Update(session *Session, logID uint, plantLog *models.PlantLog, replacePhoto bool) error {
	if err := validate(plantLog); err != nil {
		return err
	}

	if err := s.repo.Update(session.UserID, logID, plantLog, replacePhoto); err != nil {
		return err
	}

	s.publish(events.LogUpdated, logID, session.UserID)
	return nil
}

// Delete removes one of the session user's logs; deleting a log that does
// not exist (or belongs to someone else) is a no-op.
func (s *LogService) Delete(session *Session, logID uint) error {
	if err := s.repo.Delete(session.UserID, logID); err != nil {
		return err
	}

	s.publish(events.LogDeleted, logID, session.UserID)
	return nil
}

// publish sends a change event; failures are logged and never fail the
// operation that produced them.
func (s *LogService) publish(routingKey string, logID, userID uint) {
	if s.mqClient == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"log_id":  logID,
		"user_id": userID,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}

	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for log %d: %v", routingKey, logID, err)
	}
}
