package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"time"

	"plantlog/internal/middleware"
	"plantlog/internal/models"
	"plantlog/internal/repositories"
	"plantlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LogHandler handles HTTP requests for plant logs. Create and update accept
// multipart forms so a photo can ride along with the fields.
type LogHandler struct {
	service *services.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(service *services.LogService) *LogHandler {
	return &LogHandler{
		service: service,
	}
}

// RegisterRoutes registers the plant log routes with the Fiber app.
func (h *LogHandler) RegisterRoutes(router fiber.Router) {
	logRoutes := router.Group("/logs")
	logRoutes.Get("/", h.HandleList)
	logRoutes.Post("/", h.HandleCreate)
	logRoutes.Get("/:id/photo", h.HandlePhoto)
	logRoutes.Put("/:id", h.HandleUpdate)
	logRoutes.Delete("/:id", h.HandleDelete)
}

// parseLogForm reads the plant log fields shared by create and update from
// a multipart form. Field-level validation happens in the service.
func parseLogForm(c *fiber.Ctx) (*models.PlantLog, error) {
	plantingDate, err := time.Parse("2006-01-02", c.FormValue("planting_date"))
	if err != nil {
		return nil, errors.New("planting_date must be a calendar date (YYYY-MM-DD)")
	}

	plantLog := &models.PlantLog{
		PlantName:    c.FormValue("plant_name"),
		PlantingDate: plantingDate,
		Season:       models.Season(c.FormValue("season")),
		Status:       models.Status(c.FormValue("status")),
		Location:     models.Location(c.FormValue("location")),
		Notes:        c.FormValue("notes"),
	}

	if file, err := c.FormFile("photo"); err == nil {
		photo, mime, err := readPhoto(file)
		if err != nil {
			return nil, err
		}
		plantLog.Photo = photo
		plantLog.PhotoMime = mime
	}

	return plantLog, nil
}

// readPhoto loads an uploaded photo and its declared MIME type.
func readPhoto(file *multipart.FileHeader) ([]byte, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", errors.New("could not open uploaded photo")
	}
	defer src.Close()

	photo, err := io.ReadAll(src)
	if err != nil {
		return nil, "", errors.New("could not read uploaded photo")
	}
	return photo, file.Header.Get("Content-Type"), nil
}

// HandleCreate adds a new plant log for the session user.
func (h *LogHandler) HandleCreate(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	plantLog, err := parseLogForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	if err := h.service.Create(session, plantLog); err != nil {
		if services.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error creating plant log: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save plant log",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(plantLog)
}

// HandleList returns the session user's logs. Query parameters: search
// (plant name substring), sort (plant_name or planting_date) and dir (ASC
// or DESC); anything else falls back to the defaults.
func (h *LogHandler) HandleList(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	logs, err := h.service.List(session,
		c.Query("search"),
		c.Query("sort", repositories.SortByName),
		c.Query("dir", repositories.SortDesc),
	)
	if err != nil {
		log.Printf("Error listing plant logs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve plant logs",
			"error":   err.Error(),
		})
	}
	return c.JSON(logs)
}

// HandlePhoto serves the stored photo with its declared MIME type.
func (h *LogHandler) HandlePhoto(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	logID, err := c.ParamsInt("id")
	if err != nil || logID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid log id",
		})
	}

	photo, mime, err := h.service.FetchPhoto(session, uint(logID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Photo not found",
			})
		}
		log.Printf("Error fetching photo for log %d: %v", logID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch photo",
			"error":   err.Error(),
		})
	}
	if len(photo) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No photo stored.",
		})
	}

	c.Set(fiber.HeaderContentType, mime)
	return c.Send(photo)
}

// HandleUpdate replaces all editable fields of a log. The replace_photo form
// value controls whether the photo columns are overwritten; when it is set
// and no new photo is uploaded, the stored photo is cleared.
func (h *LogHandler) HandleUpdate(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	logID, err := c.ParamsInt("id")
	if err != nil || logID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid log id",
		})
	}

	plantLog, err := parseLogForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	replacePhoto := c.FormValue("replace_photo") == "true"

	if err := h.service.Update(session, uint(logID), plantLog, replacePhoto); err != nil {
		if services.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error updating plant log %d: %v", logID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update plant log",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Updated.",
	})
}

// HandleDelete removes a log. Deleting a log that no longer exists responds
// the same as a successful delete.
func (h *LogHandler) HandleDelete(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	logID, err := c.ParamsInt("id")
	if err != nil || logID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid log id",
		})
	}

	if err := h.service.Delete(session, uint(logID)); err != nil {
		log.Printf("Error deleting plant log %d: %v", logID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete plant log",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Deleted.",
	})
}
