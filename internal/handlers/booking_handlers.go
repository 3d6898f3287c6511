package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fitstream/internal/middleware"
	"fitstream/internal/models"
	"fitstream/internal/repositories"
)

type BookingHandler struct {
	db *gorm.DB
}

func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{db: db}
}

// BookClass reserves a spot in a class for the authenticated user.
// The booking must clear the plan's access level, the class capacity,
// the one-booking-per-class rule and the plan's monthly cap. The
// unique (user, class) index backs the uniqueness check at write time.
func (h *BookingHandler) BookClass(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	uow := repositories.NewUnitOfWork(h.db)
	ctx := c.Request().Context()

	class, err := uow.FitnessClasses().GetByID(ctx, req.ClassID)
	if err != nil {
		return err
	}
	if class == nil {
		return echo.NewHTTPError(http.StatusNotFound, "class not found")
	}
	if class.ClassType == models.ClassTypeLive && class.ScheduledAt != nil && class.ScheduledAt.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "class has already started")
	}

	sub, err := uow.UserSubscriptions().GetActiveSubscriptionByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if sub == nil {
		return echo.NewHTTPError(http.StatusForbidden, "active subscription required")
	}

	plan := sub.Plan
	if class.ClassType == models.ClassTypeLive && !plan.IncludesLiveClasses {
		return echo.NewHTTPError(http.StatusForbidden, "plan does not include live classes")
	}
	if class.ClassType == models.ClassTypeRecorded && !plan.IncludesRecordedClasses {
		return echo.NewHTTPError(http.StatusForbidden, "plan does not include recorded classes")
	}
	if class.MinimumPlanID != nil && *class.MinimumPlanID != plan.ID {
		minPlan, err := uow.SubscriptionPlans().GetByID(ctx, *class.MinimumPlanID)
		if err != nil {
			return err
		}
		if minPlan != nil && plan.Price < minPlan.Price {
			return echo.NewHTTPError(http.StatusForbidden, "class requires a higher plan tier")
		}
	}

	existing, err := uow.ClassBookings().GetBooking(ctx, userID, class.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "class already booked")
	}

	if class.MaxParticipants > 0 {
		count, err := uow.FitnessClasses().GetBookingCount(ctx, class.ID)
		if err != nil {
			return err
		}
		if count >= int64(class.MaxParticipants) {
			return echo.NewHTTPError(http.StatusConflict, "class is full")
		}
	}

	if plan.MaxClassBookingsPerMonth > 0 {
		now := time.Now().UTC()
		monthCount, err := uow.ClassBookings().GetUserBookingCountForMonth(ctx, userID, now.Month(), now.Year())
		if err != nil {
			return err
		}
		if monthCount >= int64(plan.MaxClassBookingsPerMonth) {
			return echo.NewHTTPError(http.StatusConflict, "monthly booking limit reached")
		}
	}

	booking := &models.ClassBooking{
		UserID:   userID,
		ClassID:  class.ID,
		Status:   models.BookingStatusConfirmed,
		BookedAt: time.Now().UTC(),
	}
	uow.ClassBookings().Add(booking)
	if err := uow.SaveChanges(ctx); err != nil {
		// Unique (user, class) index catches concurrent double bookings
		return echo.NewHTTPError(http.StatusConflict, "class already booked")
	}

	return c.JSON(http.StatusCreated, booking)
}

// CancelBooking flips the booking to cancelled. The slot is not freed
// for rebooking; the (user, class) pair stays taken.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	uow := repositories.NewUnitOfWork(h.db)
	ctx := c.Request().Context()

	booking, err := uow.ClassBookings().GetByID(ctx, uint(id))
	if err != nil {
		return err
	}
	if booking == nil || booking.UserID != userID {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	if booking.Status == models.BookingStatusCancelled {
		return echo.NewHTTPError(http.StatusConflict, "booking already cancelled")
	}

	booking.Status = models.BookingStatusCancelled
	uow.ClassBookings().Update(booking)
	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, booking)
}

// ListBookings returns the user's bookings, most recent first
func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	uow := repositories.NewUnitOfWork(h.db)
	bookings, err := uow.ClassBookings().GetBookingsByUserID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookings)
}

// ClassRoster returns every booking for a class, oldest first
func (h *BookingHandler) ClassRoster(c echo.Context) error {
	classID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid class id")
	}

	uow := repositories.NewUnitOfWork(h.db)
	ctx := c.Request().Context()

	class, err := uow.FitnessClasses().GetByID(ctx, uint(classID))
	if err != nil {
		return err
	}
	if class == nil {
		return echo.NewHTTPError(http.StatusNotFound, "class not found")
	}

	bookings, err := uow.ClassBookings().GetBookingsByClassID(ctx, uint(classID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookings)
}
