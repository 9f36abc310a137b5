package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"plantlog/internal/models"
	"plantlog/internal/repositories"
)

// Summary holds the dashboard metrics for one user's collection.
type Summary struct {
	Total            int `json:"total"`
	PlantedThisMonth int `json:"planted_this_month"`
	UniqueSeasons    int `json:"unique_seasons"`
}

// ReportService derives summary metrics, chart counts and CSV exports from
// a user's plant logs.
type ReportService struct {
	repo repositories.LogRepository
}

// NewReportService creates a new ReportService.
func NewReportService(repo repositories.LogRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

// Summary computes the dashboard metrics over all of the session user's
// logs. "Planted this month" matches on the calendar month number alone.
func (s *ReportService) Summary(session *Session) (*Summary, error) {
	logs, err := s.repo.List(session.UserID, "", repositories.SortByName, repositories.SortDesc)
	if err != nil {
		return nil, err
	}

	month := time.Now().Month()
	seasons := make(map[models.Season]struct{})
	summary := &Summary{Total: len(logs)}
	for _, l := range logs {
		if l.PlantingDate.Month() == month {
			summary.PlantedThisMonth++
		}
		seasons[l.Season] = struct{}{}
	}
	summary.UniqueSeasons = len(seasons)
	return summary, nil
}

// SeasonCounts returns the number of logs per season for the session user.
// Seasons with no logs are omitted.
func (s *ReportService) SeasonCounts(session *Session) (map[models.Season]int, error) {
	logs, err := s.repo.List(session.UserID, "", repositories.SortByName, repositories.SortDesc)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Season]int)
	for _, l := range logs {
		counts[l.Season]++
	}
	return counts, nil
}

// StatusCounts returns the number of logs per status for the session user.
// Statuses with no logs are omitted.
func (s *ReportService) StatusCounts(session *Session) (map[models.Status]int, error) {
	logs, err := s.repo.List(session.UserID, "", repositories.SortByName, repositories.SortDesc)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Status]int)
	for _, l := range logs {
		counts[l.Status]++
	}
	return counts, nil
}

// ExportCSV renders the session user's logs as UTF-8 CSV, honoring the same
// search and sort parameters as List. The header matches the visible columns
// minus the MIME field; planting dates are rendered as calendar dates with
// no time component.
func (s *ReportService) ExportCSV(session *Session, search, sortField, sortDir string) ([]byte, error) {
	logs, err := s.repo.List(session.UserID, search, sortField, sortDir)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "plant_name", "planting_date", "season", "status", "location", "notes"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, l := range logs {
		record := []string{
			strconv.FormatUint(uint64(l.ID), 10),
			l.PlantName,
			l.PlantingDate.Format("2006-01-02"),
			string(l.Season),
			string(l.Status),
			string(l.Location),
			l.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
