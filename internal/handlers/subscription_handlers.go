package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fitstream/internal/middleware"
	"fitstream/internal/repositories"
	"fitstream/internal/services"
)

type SubscriptionHandler struct {
	db       *gorm.DB
	payments *services.PaymentService
}

func NewSubscriptionHandler(db *gorm.DB, payments *services.PaymentService) *SubscriptionHandler {
	return &SubscriptionHandler{db: db, payments: payments}
}

// Checkout opens a hosted checkout session for a plan and returns its URL
func (h *SubscriptionHandler) Checkout(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	url, err := h.payments.CreateCheckoutSession(c.Request().Context(), userID, req.PlanID)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotAvailable) {
			return echo.NewHTTPError(http.StatusBadRequest, "plan not available")
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
		}
		return err
	}

	return c.JSON(http.StatusOK, CheckoutResponse{CheckoutURL: url})
}

// Cancel cancels the user's active subscription at the provider. The
// local row flips to Cancelled when the provider's webhook lands.
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	if err := h.payments.CancelSubscription(c.Request().Context(), userID); err != nil {
		if errors.Is(err, services.ErrNoActiveSubscription) {
			return echo.NewHTTPError(http.StatusNotFound, "no active subscription")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "cancellation requested"})
}

// ActiveSubscription returns the user's current subscription, if any
func (h *SubscriptionHandler) ActiveSubscription(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	uow := repositories.NewUnitOfWork(h.db)
	sub, err := uow.UserSubscriptions().GetActiveSubscriptionByUserID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if sub == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no active subscription")
	}

	return c.JSON(http.StatusOK, sub)
}

// ProviderView returns a subscription row alongside the provider's
// current state of it, for support diagnosis of drift.
func (h *SubscriptionHandler) ProviderView(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subscription id")
	}

	sub, details, err := h.payments.ProviderSubscriptionView(c.Request().Context(), uint(id))
	if err != nil {
		return err
	}
	if sub == nil {
		return echo.NewHTTPError(http.StatusNotFound, "subscription not found")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"subscription": sub,
		"provider":     details,
	})
}

// ListSubscriptions returns the user's subscription history, newest first
func (h *SubscriptionHandler) ListSubscriptions(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	uow := repositories.NewUnitOfWork(h.db)
	subs, err := uow.UserSubscriptions().GetSubscriptionsByUserID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, subs)
}
