package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fitstream/internal/models"
	"fitstream/internal/repositories"
	"fitstream/internal/services"
)

type PlanHandler struct {
	db    *gorm.DB
	cache *services.RedisCache
}

func NewPlanHandler(db *gorm.DB, cache *services.RedisCache) *PlanHandler {
	return &PlanHandler{db: db, cache: cache}
}

// ListPlans returns active plans, cheapest first
func (h *PlanHandler) ListPlans(c echo.Context) error {
	ctx := c.Request().Context()

	plans, err := services.GetOrSet(h.cache, ctx, "plans:active", 5*time.Minute, func() ([]models.SubscriptionPlan, error) {
		uow := repositories.NewUnitOfWork(h.db)
		return uow.SubscriptionPlans().GetActivePlans(ctx)
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) GetPlan(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid plan id")
	}

	uow := repositories.NewUnitOfWork(h.db)
	plan, err := uow.SubscriptionPlans().GetByID(c.Request().Context(), uint(id))
	if err != nil {
		return err
	}
	if plan == nil {
		return echo.NewHTTPError(http.StatusNotFound, "plan not found")
	}

	return c.JSON(http.StatusOK, plan)
}
