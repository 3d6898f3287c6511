package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fitstream/internal/middleware"
	"fitstream/internal/models"
	"fitstream/internal/repositories"
)

type ClassHandler struct {
	db *gorm.DB
}

func NewClassHandler(db *gorm.DB) *ClassHandler {
	return &ClassHandler{db: db}
}

// UpcomingLiveClasses lists future live classes, soonest first
func (h *ClassHandler) UpcomingLiveClasses(c echo.Context) error {
	count := 10
	if v := c.QueryParam("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}

	uow := repositories.NewUnitOfWork(h.db)
	classes, err := uow.FitnessClasses().GetUpcomingLiveClasses(c.Request().Context(), count)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, classes)
}

// RecordedClasses pages through the on-demand library, newest first
func (h *ClassHandler) RecordedClasses(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	pageSize := 20
	if v := c.QueryParam("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}

	uow := repositories.NewUnitOfWork(h.db)
	classes, err := uow.FitnessClasses().GetRecordedClasses(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) SearchClasses(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "search term required")
	}

	uow := repositories.NewUnitOfWork(h.db)
	classes, err := uow.FitnessClasses().SearchClasses(c.Request().Context(), term)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) ClassesByCategory(c echo.Context) error {
	category := models.ClassCategory(c.Param("category"))

	uow := repositories.NewUnitOfWork(h.db)
	classes, err := uow.FitnessClasses().GetClassesByCategory(c.Request().Context(), category)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) GetClass(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid class id")
	}

	uow := repositories.NewUnitOfWork(h.db)
	class, err := uow.FitnessClasses().GetByID(c.Request().Context(), uint(id))
	if err != nil {
		return err
	}
	if class == nil {
		return echo.NewHTTPError(http.StatusNotFound, "class not found")
	}

	return c.JSON(http.StatusOK, class)
}

// MyClasses lists classes taught by the authenticated instructor
func (h *ClassHandler) MyClasses(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	uow := repositories.NewUnitOfWork(h.db)
	classes, err := uow.FitnessClasses().GetClassesByInstructor(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, classes)
}

// CreateClass registers a new class with the authenticated user as
// its instructor
func (h *ClassHandler) CreateClass(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	var req CreateClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	classType := models.ClassType(req.ClassType)
	if classType != models.ClassTypeLive && classType != models.ClassTypeRecorded {
		return echo.NewHTTPError(http.StatusBadRequest, "class_type must be Live or Recorded")
	}
	if classType == models.ClassTypeLive && req.ScheduledAt == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "live classes need a scheduled_at")
	}

	uow := repositories.NewUnitOfWork(h.db)
	ctx := c.Request().Context()

	instructor, err := uow.Users().GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if instructor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	class := &models.FitnessClass{
		Title:           req.Title,
		Description:     req.Description,
		ClassType:       classType,
		Category:        models.ClassCategory(req.Category),
		Difficulty:      models.DifficultyLevel(req.Difficulty),
		DurationMinutes: req.DurationMinutes,
		MaxParticipants: req.MaxParticipants,
		ScheduledAt:     req.ScheduledAt,
		ThumbnailURL:    req.ThumbnailURL,
		VideoURL:        req.VideoURL,
		StreamURL:       req.StreamURL,
		InstructorID:    &instructor.ID,
		InstructorName:  instructor.FullName(),
		MinimumPlanID:   req.MinimumPlanID,
	}
	uow.FitnessClasses().Add(class)
	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, class)
}
