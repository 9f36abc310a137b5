package services_test

import (
	"testing"
	"time"

	"plantlog/internal/models"
	"plantlog/internal/repositories"
	"plantlog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReportLogs(t *testing.T, repo *repositories.MockLogRepository, userID uint) {
	t.Helper()

	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 10, 0, 0, 0, 0, time.UTC)
	otherMonth := thisMonth.AddDate(0, 5, 0)

	logs := []models.PlantLog{
		{UserID: userID, PlantName: "Basil", PlantingDate: thisMonth, Season: models.SeasonSummer, Status: models.StatusGrowing, Location: models.LocationPot, Notes: "kitchen window"},
		{UserID: userID, PlantName: "Carrot", PlantingDate: otherMonth, Season: models.SeasonSpring, Status: models.StatusSeed, Location: models.LocationGround},
		{UserID: userID, PlantName: "Aloe", PlantingDate: thisMonth, Season: models.SeasonSummer, Status: models.StatusHarvested, Location: models.LocationIndoor},
	}
	for i := range logs {
		require.NoError(t, repo.Create(&logs[i]))
	}
}

func TestReportService_Summary(t *testing.T) {
	repo := repositories.NewMockLogRepository()
	reportService := services.NewReportService(repo)
	session := &services.Session{UserID: 5}

	// Empty collection
	summary, err := reportService.Summary(session)
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.PlantedThisMonth)
	assert.Equal(t, 0, summary.UniqueSeasons)

	seedReportLogs(t, repo, 5)

	summary, err = reportService.Summary(session)
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.PlantedThisMonth)
	assert.Equal(t, 2, summary.UniqueSeasons)

	// Another user's collection stays empty
	other := &services.Session{UserID: 6}
	summary, err = reportService.Summary(other)
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
}

func TestReportService_Counts(t *testing.T) {
	repo := repositories.NewMockLogRepository()
	reportService := services.NewReportService(repo)
	session := &services.Session{UserID: 5}
	seedReportLogs(t, repo, 5)

	seasons, err := reportService.SeasonCounts(session)
	assert.NoError(t, err)
	assert.Equal(t, map[models.Season]int{
		models.SeasonSummer: 2,
		models.SeasonSpring: 1,
	}, seasons)

	statuses, err := reportService.StatusCounts(session)
	assert.NoError(t, err)
	assert.Equal(t, map[models.Status]int{
		models.StatusGrowing:   1,
		models.StatusSeed:      1,
		models.StatusHarvested: 1,
	}, statuses)
}

func TestReportService_ExportCSV(t *testing.T) {
	repo := repositories.NewMockLogRepository()
	reportService := services.NewReportService(repo)
	session := &services.Session{UserID: 5}
	seedReportLogs(t, repo, 5)

	data, err := reportService.ExportCSV(session, "", repositories.SortByName, repositories.SortAsc)
	assert.NoError(t, err)

	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 10, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	otherMonth := time.Date(now.Year(), now.Month(), 10, 0, 0, 0, 0, time.UTC).AddDate(0, 5, 0).Format("2006-01-02")

	want := "id,plant_name,planting_date,season,status,location,notes\n" +
		"3,Aloe," + thisMonth + ",Summer,Harvested,Indoor,\n" +
		"1,Basil," + thisMonth + ",Summer,Growing,Pot,kitchen window\n" +
		"2,Carrot," + otherMonth + ",Spring,Seed,Ground,\n"
	assert.Equal(t, want, string(data))

	// The search filter applies to exports as well
	data, err = reportService.ExportCSV(session, "bas", repositories.SortByName, repositories.SortAsc)
	assert.NoError(t, err)
	assert.Equal(t, "id,plant_name,planting_date,season,status,location,notes\n"+
		"1,Basil,"+thisMonth+",Summer,Growing,Pot,kitchen window\n", string(data))
}
